// Command snapfs-demo is a minimal end-to-end driver for the embedded-
// archive virtual filesystem: given a packaged executable and the byte
// offsets of its embedded archive and entrypoint text, it installs the
// runtime integration hooks, loads the entrypoint through them, and
// executes it.
//
// Archive construction, bundling, and general-purpose CLI option parsing
// are out of scope for this module; this command accepts its layout header
// as five positional arguments rather than growing a flag parser.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/snapfs/snapfs/archivefs"
	"github.com/snapfs/snapfs/archivereader"
	"github.com/snapfs/snapfs/filesystem"
	"github.com/snapfs/snapfs/hostruntime"
	"github.com/snapfs/snapfs/jsvm"
	"github.com/snapfs/snapfs/layout"
	"github.com/snapfs/snapfs/overlay"
	"github.com/snapfs/snapfs/vpath"
)

func main() {
	if len(os.Args) != 6 {
		fmt.Fprintln(os.Stderr, "usage: snapfs-demo <blob> <resourceStart> <resourceSize> <contentStart> <contentSize>")
		os.Exit(2)
	}

	h := layout.Header{
		BlobPath:      os.Args[1],
		ResourceStart: mustParseInt(os.Args[2]),
		ResourceSize:  mustParseInt(os.Args[3]),
		ContentStart:  mustParseInt(os.Args[4]),
		ContentSize:   mustParseInt(os.Args[5]),
	}

	if err := run(h); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run(h layout.Header) error {
	resource, err := archivereader.Read(h)
	if err != nil {
		return err
	}

	archive, err := archivefs.New(resource)
	if err != nil {
		return err
	}
	ov := overlay.New(archive)

	modules := &hostruntime.ModuleSystem{}
	installer := hostruntime.NewInstaller(modules, ov, filesystem.ProjectRoot())
	installer.Install()
	defer installer.Uninstall()

	entry, err := archivereader.ReadEntrypointText(h)
	if err != nil {
		return err
	}

	vm := jsvm.New()
	if entry != "" {
		return vm.Run(entry)
	}

	// Fall back to loading the conventional entrypoint location directly
	// through the installed hook, exercising the same path the host
	// runtime's own module loader would take.
	return vm.RunModule(modules, vpath.Root+"/app/main.js")
}

func mustParseInt(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal: invalid integer:", s)
		os.Exit(2)
	}
	return n
}
