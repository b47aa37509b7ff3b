package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultPacketSize != 1500 {
		t.Errorf("expected default packet size 1500, got %d", cfg.DefaultPacketSize)
	}
	if cfg.Theme != "light" {
		t.Errorf("expected default theme light, got %q", cfg.Theme)
	}
}

func TestLoad_ReadsSavedValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.DefaultMTUPath = "9000,1500"
	cfg.Theme = "dark"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.DefaultMTUPath != "9000,1500" {
		t.Errorf("expected MTU path '9000,1500', got %q", loaded.DefaultMTUPath)
	}
	if loaded.Theme != "dark" {
		t.Errorf("expected theme dark, got %q", loaded.Theme)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("theme: dark\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Theme != "dark" {
		t.Errorf("expected theme dark, got %q", cfg.Theme)
	}
	if cfg.DefaultHeaderSize != 20 {
		t.Errorf("expected default header size 20, got %d", cfg.DefaultHeaderSize)
	}
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("theme: [broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)

	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestSave_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	if err := Default().Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file at %s: %v", path, err)
	}
}
