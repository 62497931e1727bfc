// Package hostruntime installs interception points into a host runtime's
// module-system hook table (type ModuleSystem), delegating filesystem
// primitives and bare-specifier resolution to an Overlay FS.
package hostruntime

import (
	"errors"
	"io"
	"sync"

	"github.com/snapfs/snapfs/overlay"
	"github.com/snapfs/snapfs/vpath"
)

// Installer owns the Saved-Originals Table for one ModuleSystem target and
// is responsible for installing and restoring it.
//
// Install and Uninstall are safe to call in either order, any number of
// times: a second Install is a no-op, and Uninstall when not installed is a
// no-op.
type Installer struct {
	mu sync.Mutex

	target      *ModuleSystem
	overlay     *overlay.FS
	projectRoot string
	tracer      *tracer

	installed bool
	originals ModuleSystem // the Saved-Originals Table
}

// NewInstaller returns an Installer that will patch target's hook slots to
// delegate to ov, translating paths relative to projectRoot.
func NewInstaller(target *ModuleSystem, ov *overlay.FS, projectRoot string) *Installer {
	return &Installer{
		target:      target,
		overlay:     ov,
		projectRoot: projectRoot,
		tracer:      newTracer(),
	}
}

// Install captures target's current hooks into the Saved-Originals Table
// and replaces them with overlay-backed implementations. It is a no-op if
// already installed.
func (in *Installer) Install() {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.installed {
		return
	}

	in.originals = *in.target

	in.target.ReadFile = in.readFile
	in.target.ReadJSON = in.readJSON
	in.target.Stat = in.stat
	in.target.FindPath = in.findPath

	in.installed = true
}

// Uninstall restores target's hooks to the Saved-Originals Table captured
// by Install, byte-for-byte, and clears the table. It is a no-op if not
// installed.
func (in *Installer) Uninstall() {
	in.mu.Lock()
	defer in.mu.Unlock()

	if !in.installed {
		return
	}

	*in.target = in.originals
	in.originals = ModuleSystem{}
	in.installed = false
}

// toVirtual translates a host-native path using this installer's project
// root.
func (in *Installer) toVirtual(p string) string {
	return vpath.ToVirtual(p, in.projectRoot)
}

// readFile implements ModuleSystem.ReadFile: the low-level file-read hook.
// A missing file yields the empty-string sentinel, never an error.
func (in *Installer) readFile(p string) (string, bool) {
	virtual := in.toVirtual(p)
	in.tracer.hook("readFile", p, virtual)

	f, err := in.overlay.Open(virtual)
	if err != nil {
		return "", false
	}
	defer f.Close()

	data, err := readAll(f)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// readJSON implements ModuleSystem.ReadJSON. Absence (present == false) is
// distinguished from an empty-but-present file ("", true): the host treats
// the two differently for manifest lookups. Its behavior is currently the
// same as readFile's, which reports the same distinction through ok.
func (in *Installer) readJSON(p string) (string, bool) {
	virtual := in.toVirtual(p)
	in.tracer.hook("readJSON", p, virtual)

	f, err := in.overlay.Open(virtual)
	if err != nil {
		return "", false
	}
	defer f.Close()

	data, err := readAll(f)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// stat implements ModuleSystem.Stat. A descriptor target delegates fstat to
// the original real-FS primitive unconditionally, since a descriptor is
// never archive-backed; a path target is translated and resolved against
// the overlay.
func (in *Installer) stat(target StatTarget) int {
	if target.HasFd {
		if _, err := in.overlay.StatFD(uintptr(target.Fd)); err != nil {
			return -enoent
		}
		return 0
	}

	virtual := in.toVirtual(target.Path)
	in.tracer.hook("stat", target.Path, virtual)

	info, err := in.overlay.Stat(virtual)
	if err != nil {
		return -enoent
	}
	if info.IsDir() {
		return 1
	}
	return 0
}

// enoent is the magnitude of the negated ENOENT-style code this hook
// returns on a missing path or failed fstat.
const enoent = 2

// findPath implements ModuleSystem.FindPath: the module resolver hook. The
// original is always tried first; only on a falsy original result, and only
// for a bare specifier, does archive-backed resolution run.
func (in *Installer) findPath(request string, searchPaths []string) (string, bool) {
	if in.originals.FindPath != nil {
		if resolved, ok := in.originals.FindPath(request, searchPaths); ok {
			return resolved, true
		}
	}

	if !isBareSpecifier(request) {
		return "", false
	}

	resolved, ok := resolveBareSpecifier(in.overlay, request)
	in.tracer.hook("findPath", request, resolved)
	return resolved, ok
}

func readAll(f overlay.File) ([]byte, error) {
	var buf []byte
	chunk := make([]byte, 4096)
	for {
		n, err := f.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return buf, nil
			}
			return buf, err
		}
		if n == 0 {
			return buf, nil
		}
	}
}
