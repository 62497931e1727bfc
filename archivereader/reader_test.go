package archivereader

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/snapfs/snapfs/layout"
)

func writeTestBlob(t *testing.T) (string, layout.Header) {
	t.Helper()

	var archiveBuf bytes.Buffer
	zw := zip.NewWriter(&archiveBuf)
	w, err := zw.Create("app/main.js")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(`console.log("hi")`)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	content := []byte("bootstrap();")

	dir := t.TempDir()
	path := filepath.Join(dir, "tool")
	var file bytes.Buffer
	file.WriteString("\x7fELF-fake-header-padding")
	resourceStart := int64(file.Len())
	file.Write(archiveBuf.Bytes())
	resourceSize := int64(archiveBuf.Len())
	contentStart := int64(file.Len())
	file.Write(content)
	contentSize := int64(len(content))

	if err := os.WriteFile(path, file.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	return path, layout.Header{
		BlobPath:      path,
		ResourceStart: resourceStart,
		ResourceSize:  resourceSize,
		ContentStart:  contentStart,
		ContentSize:   contentSize,
	}
}

func TestReadReturnsExactBytes(t *testing.T) {
	_, h := writeTestBlob(t)

	buf, err := Read(h)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if int64(len(buf)) != h.ResourceSize {
		t.Fatalf("expected %d bytes, got %d", h.ResourceSize, len(buf))
	}

	zr, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		t.Fatalf("buffer is not a valid archive: %v", err)
	}
	if len(zr.File) != 1 || zr.File[0].Name != "app/main.js" {
		t.Fatalf("unexpected archive contents: %+v", zr.File)
	}
}

func TestReadEntrypointText(t *testing.T) {
	_, h := writeTestBlob(t)

	text, err := ReadEntrypointText(h)
	if err != nil {
		t.Fatalf("ReadEntrypointText failed: %v", err)
	}
	if text != "bootstrap();" {
		t.Fatalf("unexpected entrypoint text: %q", text)
	}
}

func TestReadFailsOnShortFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}

	h := layout.Header{BlobPath: path, ResourceStart: 0, ResourceSize: 100}
	if _, err := Read(h); err == nil {
		t.Fatal("expected error for out-of-range resource")
	} else if _, ok := err.(*layout.InvalidError); !ok {
		t.Fatalf("expected *layout.InvalidError, got %T: %v", err, err)
	}
}
