// Package workspace manages scratch artifacts produced during search trials.
//
// A Workspace owns one uniquely named directory. Every scratch path handed
// out lives inside it, so Cleanup can guarantee nothing outlives the
// operation except artifacts explicitly kept via Keep.
package workspace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Workspace is a scratch directory for one top-level operation.
type Workspace struct {
	root string
}

// New creates a scratch directory under parent. The label shows up in the
// directory name to aid debugging of leftover state after a crash.
func New(parent, label string) (*Workspace, error) {
	if parent == "" {
		parent = os.TempDir()
	}
	root := filepath.Join(parent, fmt.Sprintf("pdfzip-%s-%s", label, uuid.New().String()))
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return &Workspace{root: root}, nil
}

// Root returns the workspace directory.
func (w *Workspace) Root() string {
	return w.root
}

// File returns a fresh uniquely named path with the given extension.
// The file is not created.
func (w *Workspace) File(ext string) string {
	return filepath.Join(w.root, uuid.New().String()+ext)
}

// Dir creates and returns a fresh uniquely named subdirectory.
func (w *Workspace) Dir() (string, error) {
	dir := filepath.Join(w.root, uuid.New().String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create workspace subdirectory: %w", err)
	}
	return dir, nil
}

// Remove deletes a scratch path. Already-gone paths are not an error.
func (w *Workspace) Remove(path string) {
	if path == "" {
		return
	}
	_ = os.RemoveAll(path)
}

// Keep moves a scratch artifact to dest, outside the workspace. From then
// on the file is the caller's responsibility. The move is rename-based so
// dest never exists half-written; a copy fallback covers cross-device
// destinations.
func (w *Workspace) Keep(path, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}
	if err := os.Rename(path, dest); err == nil {
		return nil
	}
	// Rename across filesystems fails; copy to a sibling temp file and
	// rename into place so dest still appears atomically.
	tmp := dest + ".partial"
	if err := copyFile(path, tmp); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to move artifact into place: %w", err)
	}
	_ = os.Remove(path)
	return nil
}

// Cleanup deletes the workspace and everything left inside it.
// Safe to call multiple times and from deferred paths.
func (w *Workspace) Cleanup() {
	_ = os.RemoveAll(w.root)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open artifact: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy artifact: %w", err)
	}
	return out.Close()
}
