package archivefs

import (
	"io/fs"
	"time"
)

// entry is an immutable record for a single file or directory inside the
// archive. Entries are built once, at archive-open time, and live for the
// process lifetime.
type entry struct {
	name     string // base name only
	isDir    bool
	data     []byte // nil for directories
	modTime  time.Time
	children map[string]bool // child base names, directories only
}

// fileInfo adapts an entry to fs.FileInfo. Directories report a synthetic
// size of zero.
type fileInfo struct {
	name    string
	size    int64
	isDir   bool
	modTime time.Time
}

var _ fs.FileInfo = fileInfo{}

func (fi fileInfo) Name() string       { return fi.name }
func (fi fileInfo) Size() int64        { return fi.size }
func (fi fileInfo) ModTime() time.Time { return fi.modTime }
func (fi fileInfo) IsDir() bool        { return fi.isDir }
func (fi fileInfo) Sys() any           { return nil }

func (fi fileInfo) Mode() fs.FileMode {
	if fi.isDir {
		return fs.ModeDir | 0o555
	}
	return 0o444
}

func (e *entry) info() fileInfo {
	size := int64(len(e.data))
	return fileInfo{name: e.name, size: size, isDir: e.isDir, modTime: e.modTime}
}
