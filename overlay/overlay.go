// Package overlay unions an in-memory archive filesystem (package archivefs)
// over the real host filesystem, dispatching every path by a single prefix
// rule with no merging across the boundary.
package overlay

import (
	"io/fs"
	"os"
	"strings"

	"github.com/snapfs/snapfs/archivefs"
	"github.com/snapfs/snapfs/vpath"
)

// FS dispatches filesystem operations between an archive backing store and
// the real host filesystem, by path prefix.
type FS struct {
	archive *archivefs.FS
}

// New returns an overlay over archive. Paths under vpath.Root are served
// from archive; every other path is served from the real filesystem.
func New(archive *archivefs.FS) *FS {
	return &FS{archive: archive}
}

// inVirtual reports whether p falls under the virtual root, and if so
// returns the archive-relative path (with the "/snapshot" prefix removed).
func inVirtual(p string) (string, bool) {
	if p == vpath.Root {
		return "", true
	}
	if strings.HasPrefix(p, vpath.Root+"/") {
		return p[len(vpath.Root)+1:], true
	}
	return "", false
}

// Stat returns file metadata for p, delegating to the archive or the real
// filesystem per the prefix rule.
func (o *FS) Stat(p string) (fs.FileInfo, error) {
	if rel, ok := inVirtual(p); ok {
		info, err := o.archive.Stat(rel)
		if err != nil {
			return nil, err
		}
		return info, nil
	}
	return os.Stat(p)
}

// Open opens p for reading, delegating per the prefix rule. The returned
// value implements io.ReadCloser and, where the backing store supports it,
// io.ReaderAt and io.Seeker.
func (o *FS) Open(p string) (File, error) {
	if rel, ok := inVirtual(p); ok {
		return o.archive.Open(rel)
	}
	return os.Open(p)
}

// ReadDir lists the base names of p's children, delegating per the prefix
// rule.
func (o *FS) ReadDir(p string) ([]string, error) {
	if rel, ok := inVirtual(p); ok {
		return o.archive.ReadDir(rel)
	}
	entries, err := os.ReadDir(p)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names, nil
}

// File is the minimal handle surface the overlay guarantees for both
// backing stores.
type File interface {
	Read([]byte) (int, error)
	Close() error
}

// StatFD stats an already-open real-filesystem descriptor, bypassing the
// prefix rule entirely: a descriptor is, by construction, always a real-FS
// handle, since the archive never hands out OS-level descriptors.
//
// This calls through to the platform fstat primitive directly rather than
// via os.NewFile: os.NewFile attaches a finalizer that closes the
// descriptor once its wrapper is garbage-collected, at an unpredictable
// future point, which would silently sever a descriptor the caller still
// owns.
func (o *FS) StatFD(fd uintptr) (fs.FileInfo, error) {
	return statFD(fd)
}
