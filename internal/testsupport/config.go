package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"djutil/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.CatalogPath = filepath.Join(base, "catalog.db")
	cfgVal.Paths.BackupDir = filepath.Join(base, "backups")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.ConversionDir = filepath.Join(base, "converted")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithThresholds overrides the matching thresholds on the test config.
func WithThresholds(file, catalog float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.FileThreshold = file
		b.cfg.Matching.CatalogThreshold = catalog
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, ffmpeg and ffprobe are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffmpeg", "ffprobe"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.BackupDir)
}

// StubBinary writes an executable script under a fresh temp directory and
// returns its path. Useful when a test needs a stub with specific behaviour
// rather than a plain exit 0.
func StubBinary(t testing.TB, name, script string) string {
	t.Helper()

	target := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}
