package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory configuration.
type Paths struct {
	CatalogPath   string `toml:"catalog_path"`
	BackupDir     string `toml:"backup_dir"`
	LogDir        string `toml:"log_dir"`
	ConversionDir string `toml:"conversion_dir"`
}

// Matching contains similarity thresholds shared by the matchers.
type Matching struct {
	FileThreshold    float64 `toml:"file_threshold"`
	CatalogThreshold float64 `toml:"catalog_threshold"`
	AmbiguityWindow  float64 `toml:"ambiguity_window"`
}

// Conversion contains external audio conversion settings.
type Conversion struct {
	FFmpegPath     string `toml:"ffmpeg_path"`
	FFprobePath    string `toml:"ffprobe_path"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Logging contains log output settings.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config centralizes every knob the CLI needs.
type Config struct {
	Paths      Paths      `toml:"paths"`
	Matching   Matching   `toml:"matching"`
	Conversion Conversion `toml:"conversion"`
	Logging    Logging    `toml:"logging"`
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	return expandUser("~/.config/djutil/config.toml")
}

// Load reads configuration from path, falling back to defaults when the file
// does not exist. An empty path uses DefaultPath.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	cfg := Default()

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Defaults apply when no config file is present.
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	path = expandUser(path)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure config directory: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// EnsureDirectories creates the directories the run writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.BackupDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

func (c *Config) normalize() {
	if env := strings.TrimSpace(os.Getenv("DJUTIL_CATALOG")); env != "" && c.Paths.CatalogPath == defaultCatalogPath {
		c.Paths.CatalogPath = env
	}
	c.Paths.CatalogPath = expandUser(c.Paths.CatalogPath)
	c.Paths.BackupDir = expandUser(c.Paths.BackupDir)
	c.Paths.LogDir = expandUser(c.Paths.LogDir)
	c.Paths.ConversionDir = expandUser(c.Paths.ConversionDir)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}

func expandUser(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
