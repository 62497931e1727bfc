package filesystem

import (
	"github.com/snapfs/snapfs/process"
)

// ProjectRoot returns the absolute path of the directory that contained the
// application at bundle time, as derived from the current executable's own
// location.
//
// This is exclusively used by the path normalizer (package vpath) to
// translate "real" project paths the embedded program may still carry into
// virtual-root paths; it is never consulted by the archive filesystem
// itself.
//
// The executable's parent directory is re-run through Normalize to resolve
// any symlinks introduced between process startup and this call (e.g. a
// mutable "current" symlink into a versioned install directory); if that
// fails, the unnormalized path is returned rather than treated as fatal,
// since a stale-but-usable project root is preferable to no root at all.
func ProjectRoot() string {
	root := process.Current.ExecutableParentPath
	if normalized, err := Normalize(root); err == nil {
		return normalized
	}
	return root
}
