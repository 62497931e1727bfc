package hostruntime

import (
	"testing"

	"github.com/snapfs/snapfs/archivefs"
	"github.com/snapfs/snapfs/overlay"
)

func emptyOverlay(t *testing.T) *overlay.FS {
	t.Helper()
	archive, err := archivefs.New(minimalZip(t))
	if err != nil {
		t.Fatal(err)
	}
	return overlay.New(archive)
}

func TestParseStatArgsPath(t *testing.T) {
	target := ParseStatArgs("/snapshot/app/main.js")
	if target.HasFd {
		t.Fatal("expected a path target, not a descriptor")
	}
	if target.Path != "/snapshot/app/main.js" {
		t.Fatalf("unexpected path: %q", target.Path)
	}
}

func TestParseStatArgsFd(t *testing.T) {
	target := ParseStatArgs(42)
	if !target.HasFd || target.Fd != 42 {
		t.Fatalf("unexpected target: %+v", target)
	}
}

func TestParseStatArgsContextFirst(t *testing.T) {
	// Some host versions pass (context, path) instead of (path).
	target := ParseStatArgs(struct{}{}, "/snapshot/x.js")
	if target.HasFd {
		t.Fatal("expected a path target")
	}
	if target.Path != "/snapshot/x.js" {
		t.Fatalf("unexpected path: %q", target.Path)
	}
}

func TestInstallIsIdempotent(t *testing.T) {
	var calls int
	target := &ModuleSystem{
		FindPath: func(string, []string) (string, bool) {
			calls++
			return "", false
		},
	}
	original := target.FindPath

	in := NewInstaller(target, emptyOverlay(t), "/usr/bin")
	in.Install()
	patched := target.FindPath

	in.Install() // second install must be a no-op
	if target.FindPath == nil {
		t.Fatal("expected FindPath to remain set")
	}

	// The hook captured after the first Install must still be callable
	// after the second Install.
	if _, ok := patched("anything", nil); !ok {
		// Resolution failing is expected (empty overlay); this only checks
		// that calling through doesn't panic.
	}
	_ = original
}

func TestUninstallRestoresOriginals(t *testing.T) {
	sentinel := func(string, []string) (string, bool) { return "sentinel", true }
	target := &ModuleSystem{FindPath: sentinel}

	in := NewInstaller(target, emptyOverlay(t), "/usr/bin")
	in.Install()
	in.Uninstall()

	resolved, ok := target.FindPath("anything", nil)
	if !ok || resolved != "sentinel" {
		t.Fatalf("expected original FindPath restored, got (%q, %v)", resolved, ok)
	}
}

func TestUninstallWhenNotInstalledIsNoOp(t *testing.T) {
	target := &ModuleSystem{}
	in := NewInstaller(target, emptyOverlay(t), "/usr/bin")
	in.Uninstall() // must not panic
}

func TestFindPathPrefersOriginalResult(t *testing.T) {
	target := &ModuleSystem{
		FindPath: func(string, []string) (string, bool) { return "/real/resolved.js", true },
	}
	in := NewInstaller(target, emptyOverlay(t), "/usr/bin")
	in.Install()

	resolved, ok := target.FindPath("left-pad", nil)
	if !ok || resolved != "/real/resolved.js" {
		t.Fatalf("expected original result preferred, got (%q, %v)", resolved, ok)
	}
}

func TestFindPathFallsBackToArchiveOnBareSpecifier(t *testing.T) {
	archive, err := archivefs.New(zipWith(t, map[string]string{
		"node_modules/widget/package.json":  `{}`,
		"node_modules/widget/dist/index.js": "x",
	}))
	if err != nil {
		t.Fatal(err)
	}
	ov := overlay.New(archive)

	target := &ModuleSystem{
		FindPath: func(string, []string) (string, bool) { return "", false },
	}
	in := NewInstaller(target, ov, "/usr/bin")
	in.Install()

	resolved, ok := target.FindPath("widget", nil)
	if !ok || resolved != "/snapshot/node_modules/widget/dist/index.js" {
		t.Fatalf("unexpected resolution: (%q, %v)", resolved, ok)
	}
}

func TestStatFdDelegatesToOriginalFstat(t *testing.T) {
	target := &ModuleSystem{}
	in := NewInstaller(target, emptyOverlay(t), "/usr/bin")
	in.Install()

	// An invalid descriptor must fail, not panic.
	if code := target.Stat(StatTarget{Fd: 99999, HasFd: true}); code == 0 {
		t.Fatal("expected a failure code for an invalid descriptor")
	}
}
