package hostruntime

import (
	"testing"

	"github.com/snapfs/snapfs/archivefs"
	"github.com/snapfs/snapfs/overlay"
)

func buildOverlay(t *testing.T, files map[string]string) *overlay.FS {
	t.Helper()

	archive, err := archivefs.New(zipWith(t, files))
	if err != nil {
		t.Fatal(err)
	}
	return overlay.New(archive)
}

func TestResolveExportsConditionMap(t *testing.T) {
	ov := buildOverlay(t, map[string]string{
		"node_modules/left-pad/package.json": `{"exports":{".":{"require":"./cjs/index.js","default":"./esm/index.js"}}}`,
		"node_modules/left-pad/cjs/index.js": "module.exports = leftPad",
	})

	got, ok := resolveBareSpecifier(ov, "left-pad")
	if !ok {
		t.Fatal("expected resolution to succeed")
	}
	if got != "/snapshot/node_modules/left-pad/cjs/index.js" {
		t.Fatalf("unexpected resolution: %q", got)
	}
}

func TestResolveMainWithExtensionProbing(t *testing.T) {
	ov := buildOverlay(t, map[string]string{
		"node_modules/axios/package.json":   `{"main":"./lib/axios"}`,
		"node_modules/axios/lib/axios.js":   "module.exports = axios",
	})

	got, ok := resolveBareSpecifier(ov, "axios")
	if !ok {
		t.Fatal("expected resolution to succeed")
	}
	if got != "/snapshot/node_modules/axios/lib/axios.js" {
		t.Fatalf("unexpected resolution: %q", got)
	}
}

func TestResolveDistFallback(t *testing.T) {
	ov := buildOverlay(t, map[string]string{
		"node_modules/widget/package.json":    `{}`,
		"node_modules/widget/dist/index.js": "module.exports = widget",
	})

	got, ok := resolveBareSpecifier(ov, "widget")
	if !ok {
		t.Fatal("expected resolution to succeed")
	}
	if got != "/snapshot/node_modules/widget/dist/index.js" {
		t.Fatalf("unexpected resolution: %q", got)
	}
}

func TestResolveMissingPackageFailsQuietly(t *testing.T) {
	ov := buildOverlay(t, map[string]string{"app/main.js": "x"})

	_, ok := resolveBareSpecifier(ov, "does-not-exist")
	if ok {
		t.Fatal("expected resolution to fail for a package with no manifest")
	}
}

func TestIsBareSpecifier(t *testing.T) {
	cases := map[string]bool{
		"left-pad":   true,
		"./local":    false,
		"../local":   false,
		"/abs/path":  false,
		`C:\a.js`:    false,
		"":           false,
	}
	for input, want := range cases {
		if got := isBareSpecifier(input); got != want {
			t.Errorf("isBareSpecifier(%q) = %v, want %v", input, got, want)
		}
	}
}
