package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"djutil/internal/config"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Matching.FileThreshold != 0.6 {
		t.Errorf("file threshold = %v, want 0.6", cfg.Matching.FileThreshold)
	}
	if cfg.Matching.CatalogThreshold != 0.75 {
		t.Errorf("catalog threshold = %v, want 0.75", cfg.Matching.CatalogThreshold)
	}
	if cfg.Conversion.TimeoutSeconds != 300 {
		t.Errorf("timeout = %d, want 300", cfg.Conversion.TimeoutSeconds)
	}
	if strings.Contains(cfg.Paths.CatalogPath, "~") {
		t.Errorf("expected expanded catalog path, got %q", cfg.Paths.CatalogPath)
	}
}

func TestLoadReadsFileAndValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[paths]
catalog_path = "` + filepath.Join(dir, "catalog.db") + `"

[matching]
file_threshold = 0.5
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Matching.FileThreshold != 0.5 {
		t.Errorf("file threshold = %v, want 0.5", cfg.Matching.FileThreshold)
	}
	// Untouched sections keep defaults.
	if cfg.Matching.CatalogThreshold != 0.75 {
		t.Errorf("catalog threshold = %v, want default 0.75", cfg.Matching.CatalogThreshold)
	}
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[matching]\nfile_threshold = 1.5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for threshold 1.5")
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	if err := config.WriteSample(path); err == nil {
		t.Fatal("expected overwrite refusal")
	}
}
