// Package process exposes information about the currently running process,
// in particular the resolved path to its own executable. The embedded-archive
// virtual filesystem uses this to derive the project root used by the path
// normalizer (see filesystem.ProjectRoot); the archive blob's location comes
// from the layout header, not from this package.
package process

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Current represents the current process.
var Current struct {
	// ExecutablePath is the resolved, absolute path to the current
	// executable, with any symlinks evaluated.
	ExecutablePath string

	// ExecutableParentPath is the directory containing ExecutablePath. This
	// is the basis for the project root used by the path normalizer.
	ExecutableParentPath string
}

func init() {
	path, err := os.Executable()
	if err != nil {
		panic(errors.Wrap(err, "unable to compute current executable's path"))
	}

	// Resolve symlinks so that, e.g., a "tool" symlink into a versioned
	// install directory yields the real executable location.
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}

	Current.ExecutablePath = path
	Current.ExecutableParentPath = filepath.Dir(path)
}
