package overlay

import (
	"io/fs"
	"time"
)

// fdFileInfo is the minimal fs.FileInfo the platform-specific statFD
// implementations populate. Only size and directory-ness are meaningful to
// the stat hook (package hostruntime); modification time is not tracked by
// either fstat variant.
type fdFileInfo struct {
	size  int64
	isDir bool
}

func (fi fdFileInfo) Name() string       { return "" }
func (fi fdFileInfo) Size() int64        { return fi.size }
func (fi fdFileInfo) ModTime() time.Time { return time.Time{} }
func (fi fdFileInfo) IsDir() bool        { return fi.isDir }
func (fi fdFileInfo) Sys() any           { return nil }

func (fi fdFileInfo) Mode() fs.FileMode {
	if fi.isDir {
		return fs.ModeDir
	}
	return 0
}
