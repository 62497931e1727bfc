//go:build windows

package overlay

import (
	"io/fs"
	"syscall"
)

// statFD calls GetFileInformationByHandle directly against fd, with no
// os.File wrapper and therefore no finalizer that could close the caller's
// handle later.
func statFD(fd uintptr) (fs.FileInfo, error) {
	var info syscall.ByHandleFileInformation
	if err := syscall.GetFileInformationByHandle(syscall.Handle(fd), &info); err != nil {
		return nil, err
	}
	return fdFileInfo{
		size:  int64(info.FileSizeHigh)<<32 | int64(info.FileSizeLow),
		isDir: info.FileAttributes&syscall.FILE_ATTRIBUTE_DIRECTORY != 0,
	}, nil
}
