package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_GivenNoFile_ThenReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfig(filepath.Join(dir, "missing.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := DefaultConfig()
	if cfg.ScanWorkers != want.ScanWorkers || len(cfg.Patterns) != len(want.Patterns) {
		t.Fatalf("got %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadConfig_GivenPartialFile_ThenOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"topCount": 50}`), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TopCount != 50 {
		t.Fatalf("got TopCount=%d, want 50", cfg.TopCount)
	}
	if len(cfg.Patterns) != len(DefaultConfig().Patterns) {
		t.Fatalf("expected untouched fields to fall back to defaults")
	}
}

func TestLoadConfig_GivenBelowMinimum_ThenClamps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"pageSize": 1}`), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PageSize != 10 {
		t.Fatalf("got PageSize=%d, want clamped to 10", cfg.PageSize)
	}
}

func TestSampleConfigJSON_ProducesValidJSON(t *testing.T) {
	out, err := SampleConfigJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty sample config")
	}
}
