// Package archivereader opens the blob described by a layout.Header and
// materializes its contents in memory.
//
// Every read here goes through the plain os package, never through the
// hostruntime module system's hooks: those hooks do not exist until after
// Read returns, and even once installed they must never be consulted to
// locate the very archive they serve.
package archivereader

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/snapfs/snapfs/layout"
)

// Read opens h.BlobPath, validates h against the file's actual size, and
// returns exactly h.ResourceSize bytes starting at h.ResourceStart.
//
// A short read is fatal and reported as a *layout.InvalidError.
func Read(h layout.Header) ([]byte, error) {
	f, err := os.Open(h.BlobPath)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open archive blob")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "unable to stat archive blob")
	}
	if err := h.Validate(info.Size()); err != nil {
		return nil, err
	}

	buf := make([]byte, h.ResourceSize)
	if _, err := io.ReadFull(io.NewSectionReader(f, h.ResourceStart, h.ResourceSize), buf); err != nil {
		return nil, &layout.InvalidError{Reason: "short read of archive resource: " + err.Error()}
	}
	return buf, nil
}

// ReadEntrypointText returns the bundled application entrypoint text
// delimited by h.ContentStart/h.ContentSize. cmd/snapfs-demo runs this text
// through jsvm as the prelude script that bootstraps the embedded
// application, independent of the archive itself.
func ReadEntrypointText(h layout.Header) (string, error) {
	if h.ContentSize == 0 {
		return "", nil
	}

	f, err := os.Open(h.BlobPath)
	if err != nil {
		return "", errors.Wrap(err, "unable to open archive blob")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", errors.Wrap(err, "unable to stat archive blob")
	}
	if h.ContentStart+h.ContentSize > info.Size() {
		return "", &layout.InvalidError{Reason: "content range exceeds blob size"}
	}

	buf := make([]byte, h.ContentSize)
	if _, err := io.ReadFull(io.NewSectionReader(f, h.ContentStart, h.ContentSize), buf); err != nil {
		return "", &layout.InvalidError{Reason: "short read of entrypoint text: " + err.Error()}
	}
	return string(buf), nil
}
