// Package archivefs presents the contents of an in-memory ZIP-family archive
// as a read-only filesystem, keyed by canonical POSIX-style relative paths.
//
// Entries are decompressed once, eagerly, when the archive is opened; every
// subsequent read reslices the same backing buffer rather than allocating.
// Paths passed to this package never carry the overlay's "/snapshot" prefix
// — that prefix is strictly a concern of package overlay.
package archivefs

import (
	"archive/zip"
	"bytes"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/pkg/errors"
)

// FS is a read-only view over the entries of a single archive.
type FS struct {
	entries map[string]*entry // canonical relative path -> entry, "" is root
}

// New decompresses every entry in buf and builds an FS over the result. buf
// must hold a complete ZIP-family archive, such as the bytes produced by
// archivereader.Read.
func New(buf []byte) (*FS, error) {
	zr, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse archive")
	}
	zr.RegisterDecompressor(zip.Deflate, flate.NewReader)

	fsys := &FS{entries: make(map[string]*entry)}
	fsys.entries[""] = &entry{
		name:     "",
		isDir:    true,
		children: make(map[string]bool),
	}

	for _, f := range zr.File {
		p := canonical(f.Name)
		if p == "" {
			continue
		}
		isDir := strings.HasSuffix(f.Name, "/")

		fsys.ensureParents(p)

		if isDir {
			fsys.ensureDir(p, f.Modified)
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "unable to open archive entry %q", f.Name)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "unable to decompress archive entry %q", f.Name)
		}

		fsys.entries[p] = &entry{
			name:    path.Base(p),
			isDir:   false,
			data:    data,
			modTime: f.Modified,
		}
		fsys.link(p)
	}

	return fsys, nil
}

// canonical clamps an archive-internal name to a clean, slash-separated,
// root-relative path with no leading slash and no ".." traversal.
func canonical(name string) string {
	name = strings.TrimSuffix(name, "/")
	clean := path.Clean("/" + name)
	if clean == "/" {
		return ""
	}
	return strings.TrimPrefix(clean, "/")
}

// ensureParents synthesizes directory entries for every ancestor of p that
// was not explicitly present in the archive.
func (fsys *FS) ensureParents(p string) {
	dir := path.Dir(p)
	if dir == "." {
		dir = ""
	}
	fsys.ensureDir(dir, time.Time{})
	if dir != "" {
		fsys.ensureParents(dir)
	}
	fsys.link(p)
}

func (fsys *FS) ensureDir(p string, modTime time.Time) {
	if e, ok := fsys.entries[p]; ok {
		if e.isDir && modTime.After(e.modTime) {
			e.modTime = modTime
		}
		return
	}
	fsys.entries[p] = &entry{
		name:     path.Base(p),
		isDir:    true,
		modTime:  modTime,
		children: make(map[string]bool),
	}
}

// link registers p's base name as a child of its parent directory entry.
func (fsys *FS) link(p string) {
	dir := path.Dir(p)
	if dir == "." {
		dir = ""
	}
	parent, ok := fsys.entries[dir]
	if !ok || !parent.isDir {
		return
	}
	parent.children[path.Base(p)] = true
}

// Stat returns file metadata for the entry at p.
func (fsys *FS) Stat(p string) (fileInfo, error) {
	e, ok := fsys.entries[canonical(p)]
	if !ok {
		return fileInfo{}, &PathError{Op: "stat", Path: p, Err: ErrNotExist}
	}
	return e.info(), nil
}

// Open returns a handle for reading the regular file at p. It fails with
// ErrIsDir if p names a directory.
func (fsys *FS) Open(p string) (*Handle, error) {
	cp := canonical(p)
	e, ok := fsys.entries[cp]
	if !ok {
		return nil, &PathError{Op: "open", Path: p, Err: ErrNotExist}
	}
	if e.isDir {
		return nil, &PathError{Op: "open", Path: p, Err: ErrIsDir}
	}
	return &Handle{r: bytes.NewReader(e.data), info: e.info()}, nil
}

// ReadDir returns the sorted base names of the directory at p's children. It
// fails with ErrNotDir if p names a regular file.
func (fsys *FS) ReadDir(p string) ([]string, error) {
	cp := canonical(p)
	e, ok := fsys.entries[cp]
	if !ok {
		return nil, &PathError{Op: "readdir", Path: p, Err: ErrNotExist}
	}
	if !e.isDir {
		return nil, &PathError{Op: "readdir", Path: p, Err: ErrNotDir}
	}

	names := make([]string, 0, len(e.children))
	for name := range e.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Handle is an open regular-file view into the archive. It implements
// io.ReaderAt and io.Seeker directly against the entry's decompressed bytes,
// with no additional copying.
type Handle struct {
	r    *bytes.Reader
	info fileInfo
}

var (
	_ io.ReaderAt = (*Handle)(nil)
	_ io.Seeker   = (*Handle)(nil)
	_ io.Reader   = (*Handle)(nil)
)

func (h *Handle) Read(p []byte) (int, error)                 { return h.r.Read(p) }
func (h *Handle) ReadAt(p []byte, off int64) (int, error)     { return h.r.ReadAt(p, off) }
func (h *Handle) Seek(offset int64, whence int) (int64, error) { return h.r.Seek(offset, whence) }
func (h *Handle) Close() error                                { return nil }
func (h *Handle) Stat() (fileInfo, error)                      { return h.info, nil }
