package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	parent := t.TempDir()

	ws, err := New(parent, "test")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer ws.Cleanup()

	if !strings.HasPrefix(filepath.Base(ws.Root()), "pdfzip-test-") {
		t.Errorf("unexpected workspace name: %s", ws.Root())
	}
	info, err := os.Stat(ws.Root())
	if err != nil || !info.IsDir() {
		t.Errorf("workspace root not created: %v", err)
	}
}

func TestFile_Unique(t *testing.T) {
	ws, err := New(t.TempDir(), "test")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer ws.Cleanup()

	a := ws.File(".pdf")
	b := ws.File(".pdf")
	if a == b {
		t.Error("File returned duplicate paths")
	}
	if filepath.Ext(a) != ".pdf" {
		t.Errorf("expected .pdf extension, got %s", filepath.Ext(a))
	}
	if filepath.Dir(a) != ws.Root() {
		t.Errorf("scratch file outside workspace: %s", a)
	}
}

func TestRemove_Tolerant(t *testing.T) {
	ws, err := New(t.TempDir(), "test")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer ws.Cleanup()

	path := ws.File(".pdf")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	ws.Remove(path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file should be removed")
	}

	// Double deletion must not panic or error.
	ws.Remove(path)
	ws.Remove("")
}

func TestKeep(t *testing.T) {
	parent := t.TempDir()
	ws, err := New(parent, "test")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer ws.Cleanup()

	src := ws.File(".pdf")
	content := []byte("final artifact")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(parent, "out", "result.pdf")
	if err := ws.Keep(src, dest); err != nil {
		t.Fatalf("Keep failed: %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("destination missing: %v", err)
	}
	if string(got) != string(content) {
		t.Error("destination content mismatch")
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source should be gone after Keep")
	}
}

func TestCleanup_RemovesEverything(t *testing.T) {
	parent := t.TempDir()
	ws, err := New(parent, "test")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		path := ws.File(".tmp")
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := ws.Dir(); err != nil {
		t.Fatal(err)
	}

	ws.Cleanup()

	if _, err := os.Stat(ws.Root()); !os.IsNotExist(err) {
		t.Error("workspace should be fully removed")
	}

	// Parent directory is untouched and empty: zero outstanding scratch files.
	entries, err := os.ReadDir(parent)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty parent after cleanup, found %d entries", len(entries))
	}

	// Idempotent.
	ws.Cleanup()
}
