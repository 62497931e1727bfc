//go:build !windows

package overlay

import (
	"io/fs"
	"syscall"
)

// statFD calls fstat(2) directly against fd, with no os.File wrapper and
// therefore no finalizer that could close the caller's descriptor later.
func statFD(fd uintptr) (fs.FileInfo, error) {
	var stat syscall.Stat_t
	if err := syscall.Fstat(int(fd), &stat); err != nil {
		return nil, err
	}
	return fdFileInfo{
		size:  int64(stat.Size),
		isDir: stat.Mode&syscall.S_IFMT == syscall.S_IFDIR,
	}, nil
}
