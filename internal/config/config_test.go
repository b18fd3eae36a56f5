package config

import (
	"runtime"
	"testing"
)

func setTempHome(t *testing.T) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	}
}

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	setTempHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8480 {
		t.Errorf("expected default port 8480, got %d", cfg.Server.Port)
	}
	if !cfg.Server.OpenBrowser {
		t.Error("expected browser auto-open by default")
	}
	if cfg.Catalog.Path != "cards.json" {
		t.Errorf("expected default catalog path, got %q", cfg.Catalog.Path)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	setTempHome(t)

	cfg := DefaultConfig()
	cfg.Server.Port = 9000
	cfg.Catalog.Path = "/data/cards.json"
	cfg.Catalog.Watch = true
	cfg.Database.Path = "/data/cards.db"

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", loaded.Server.Port)
	}
	if loaded.Catalog.Path != "/data/cards.json" || !loaded.Catalog.Watch {
		t.Errorf("unexpected catalog config: %+v", loaded.Catalog)
	}
	if loaded.Database.Path != "/data/cards.db" {
		t.Errorf("unexpected database path %q", loaded.Database.Path)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	cfg.Server.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for port 0")
	}

	cfg = DefaultConfig()
	cfg.Catalog.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty catalog path")
	}

	cfg = DefaultConfig()
	cfg.Images.Dir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty images dir")
	}
}
