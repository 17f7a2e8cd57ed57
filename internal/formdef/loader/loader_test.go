package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-docform/pkg/formdef"
)

func TestLoaderReadsFSAndFiles(t *testing.T) {
	files := fstest.MapFS{"form.yaml": {Data: []byte("openapi: 3.0.3")}}
	l := New(formdef.NewLoaderOptions(formdef.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), formdef.SourceFromFS("form.yaml"))
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if string(doc.Raw()) != "openapi: 3.0.3" || doc.Location() != "form.yaml" {
		t.Fatalf("unexpected document %q from %q", doc.Raw(), doc.Location())
	}

	path := filepath.Join(t.TempDir(), "form.yaml")
	if err := os.WriteFile(path, []byte("openapi: 3.1.0"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	doc, err = l.Load(context.Background(), formdef.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if string(doc.Raw()) != "openapi: 3.1.0" {
		t.Fatalf("unexpected file payload %q", doc.Raw())
	}
}

func TestLoaderErrors(t *testing.T) {
	l := New(formdef.NewLoaderOptions())

	if _, err := l.Load(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := l.Load(context.Background(), formdef.SourceFromFS("form.yaml")); err == nil {
		t.Fatalf("expected error without filesystem")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.Load(ctx, formdef.SourceFromFile("form.yaml")); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
