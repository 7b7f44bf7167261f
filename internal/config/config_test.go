package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("search defaults", func(t *testing.T) {
		if cfg.Search.Tolerance != 0.05 {
			t.Errorf("expected tolerance 0.05, got %v", cfg.Search.Tolerance)
		}
		if cfg.Search.MaxIterations != 7 {
			t.Errorf("expected 7 iterations, got %d", cfg.Search.MaxIterations)
		}
		if cfg.Search.MinDPI != 30 || cfg.Search.MaxDPI != 300 {
			t.Errorf("expected DPI bounds [30,300], got [%v,%v]", cfg.Search.MinDPI, cfg.Search.MaxDPI)
		}
	})

	t.Run("convert defaults", func(t *testing.T) {
		if cfg.Convert.ToolTimeout != 60*time.Second {
			t.Errorf("expected 60s tool timeout, got %v", cfg.Convert.ToolTimeout)
		}
		if cfg.Convert.DisableAutomation {
			t.Error("automation should be enabled by default")
		}
	})

	t.Run("renderer defaults", func(t *testing.T) {
		if cfg.Renderer.Backend != "fitz" {
			t.Errorf("expected fitz backend, got %q", cfg.Renderer.Backend)
		}
	})

	t.Run("operation defaults", func(t *testing.T) {
		if cfg.Defaults.DPI != 150 {
			t.Errorf("expected default DPI 150, got %d", cfg.Defaults.DPI)
		}
		if cfg.Defaults.TargetSizeMB != 5.0 {
			t.Errorf("expected default target 5.0 MB, got %v", cfg.Defaults.TargetSizeMB)
		}
	})
}

func TestWriteDefault(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}
	if len(data) == 0 {
		t.Error("written config is empty")
	}
}

func TestNewManager(t *testing.T) {
	t.Run("with config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "config.yaml")
		content := []byte("defaults:\n  dpi: 200\n")
		if err := os.WriteFile(path, content, 0o644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cm, err := NewManager(path)
		if err != nil {
			t.Fatalf("NewManager failed: %v", err)
		}

		cfg := cm.Get()
		if cfg.Defaults.DPI != 200 {
			t.Errorf("expected DPI 200 from file, got %d", cfg.Defaults.DPI)
		}
		// Untouched sections keep defaults.
		if cfg.Search.MaxIterations != 7 {
			t.Errorf("expected default iterations 7, got %d", cfg.Search.MaxIterations)
		}
	})
}
