// Package layout defines the record that describes where the embedded
// archive and entrypoint text live inside the packaged executable.
//
// The header is captured at bundle time by an external tool (out of scope
// for this module) and embedded into the executable's code section. At
// startup, the caller (cmd/snapfs-demo, which takes it as command-line
// arguments) hands it to archivereader to locate and map the archive bytes.
// Package hostruntime does not read or receive the header.
package layout

import "fmt"

// Header records the byte layout of the archive blob and the bundled
// entrypoint text appended to (or embedded alongside) the packaged
// executable.
//
// All offsets are absolute byte positions within the file named by
// BlobPath; all sizes are byte counts. Values must be non-negative and
// satisfy ResourceStart+ResourceSize <= size of the file named by BlobPath.
type Header struct {
	// BlobPath identifies the file containing the archive bytes. This is
	// typically the path to the executable itself.
	BlobPath string

	// ResourceStart and ResourceSize delimit the embedded archive within
	// BlobPath.
	ResourceStart int64
	ResourceSize  int64

	// ContentStart and ContentSize delimit the bundled application
	// entrypoint text within BlobPath.
	ContentStart int64
	ContentSize  int64
}

// InvalidError indicates that a Header's fields are out of range, or that a
// read against the blob it describes came up short. It is the only fatal
// error kind in this subsystem; every other failure kind is absorbed by the
// caller and surfaced through the host runtime's native error conventions.
type InvalidError struct {
	Reason string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid layout header: %s", e.Reason)
}

// Validate checks that h's offsets and sizes are non-negative and that the
// resource range fits within a file of the given size. It does not
// validate ContentStart/ContentSize against fileSize, since the entrypoint
// text region is optional and may be empty.
func (h Header) Validate(fileSize int64) error {
	if h.ResourceStart < 0 || h.ResourceSize < 0 {
		return &InvalidError{Reason: "negative resource offset or size"}
	}
	if h.ContentStart < 0 || h.ContentSize < 0 {
		return &InvalidError{Reason: "negative content offset or size"}
	}
	if h.ResourceStart+h.ResourceSize > fileSize {
		return &InvalidError{Reason: fmt.Sprintf(
			"resource range [%d, %d) exceeds blob size %d",
			h.ResourceStart, h.ResourceStart+h.ResourceSize, fileSize,
		)}
	}
	return nil
}
