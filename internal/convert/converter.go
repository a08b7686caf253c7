package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"djutil/internal/config"
	"djutil/internal/logging"
	"djutil/internal/services"
)

// Result reports the outcome of one conversion. A failed Result carries the
// error; callers decide whether to fall back to the original file.
type Result struct {
	Success    bool
	OutputPath string
	Err        error
}

// Converter runs ffmpeg conversions with a fixed per-invocation timeout.
type Converter struct {
	ffmpeg  string
	ffprobe string
	timeout time.Duration
	logger  *slog.Logger
}

// New resolves the ffmpeg binary (explicit config path first, then PATH) and
// builds a Converter. A missing binary is a configuration error: conversion
// was requested and cannot be provided.
func New(cfg *config.Config, logger *slog.Logger) (*Converter, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	ffmpeg, err := resolveBinary(cfg.Conversion.FFmpegPath, "ffmpeg")
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "convert", "init",
			"ffmpeg not found; install it or set conversion.ffmpeg_path", err)
	}
	// ffprobe is optional; format probing falls back to file extensions.
	ffprobe, _ := resolveBinary(cfg.Conversion.FFprobePath, "ffprobe")

	timeout := time.Duration(cfg.Conversion.TimeoutSeconds) * time.Second
	return &Converter{ffmpeg: ffmpeg, ffprobe: ffprobe, timeout: timeout, logger: logger}, nil
}

// IsConversionNeeded reports whether sourcePath is not already in
// targetFormat, comparing alias-normalized format names.
func (c *Converter) IsConversionNeeded(sourcePath, targetFormat string) bool {
	if strings.TrimSpace(targetFormat) == "" {
		return false
	}
	source := NormalizeFormat(filepath.Ext(sourcePath))
	return source != NormalizeFormat(targetFormat)
}

// Convert transcodes source into targetFormat. The output lands in outputDir
// (source directory when empty) with the source stem and the target
// container's extension. The source file is left untouched unless
// preserveOriginal is false.
func (c *Converter) Convert(ctx context.Context, source, targetFormat, outputDir string, preserveOriginal, overwrite bool) Result {
	info, err := os.Stat(source)
	if err != nil || info.IsDir() {
		return failed(fmt.Errorf("source file not found: %s", source))
	}

	spec, ok := formatSpecs[NormalizeFormat(targetFormat)]
	if !ok {
		return failed(fmt.Errorf("unsupported format %q", targetFormat))
	}

	if strings.TrimSpace(outputDir) == "" {
		outputDir = filepath.Dir(source)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return failed(fmt.Errorf("ensure output directory: %w", err))
	}

	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	output := filepath.Join(outputDir, stem+"."+spec.Container)
	if _, err := os.Stat(output); err == nil && !overwrite {
		return failed(fmt.Errorf("output file already exists: %s", output))
	}

	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, c.ffmpeg, buildArgs(source, output, spec)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		return failed(fmt.Errorf("conversion timed out after %s", c.timeout))
	case err != nil:
		return failed(fmt.Errorf("ffmpeg: %s", truncate(stderr.String(), 500)))
	}

	if _, err := os.Stat(output); err != nil {
		return failed(errors.New("conversion completed but output file not found"))
	}
	if !preserveOriginal {
		if err := os.Remove(source); err != nil {
			c.logger.Warn("failed to remove original after conversion",
				logging.String("source", source), logging.Error(err))
		}
	}

	c.logger.Debug("conversion finished",
		logging.String("source", source),
		logging.String("output", output),
		logging.String("duration", time.Since(start).Round(time.Millisecond).String()))
	return Result{Success: true, OutputPath: output}
}

// ProbeFormat detects the source format via ffprobe, falling back to the file
// extension when ffprobe is unavailable or fails.
func (c *Converter) ProbeFormat(ctx context.Context, path string) string {
	fallback := NormalizeFormat(filepath.Ext(path))
	if c.ffprobe == "" {
		return fallback
	}
	runCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	out, err := exec.CommandContext(runCtx, c.ffprobe,
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=codec_name",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path).Output()
	if err != nil {
		return fallback
	}
	switch codec := strings.TrimSpace(string(out)); codec {
	case "pcm_s16le":
		return "wav"
	case "pcm_s16be":
		return "aiff"
	case "flac", "mp3", "aac", "alac":
		return codec
	case "":
		return fallback
	default:
		return codec
	}
}

func buildArgs(source, output string, spec formatSpec) []string {
	args := []string{"-i", source, "-y", "-codec:a", spec.Codec}
	if spec.Bitrate != "" {
		args = append(args, "-b:a", spec.Bitrate)
	}
	if spec.Compression != "" {
		args = append(args, "-compression_level", spec.Compression)
	}
	args = append(args, "-map_metadata", "0", output)
	return args
}

func resolveBinary(configured, name string) (string, error) {
	if configured = strings.TrimSpace(configured); configured != "" {
		info, err := os.Stat(configured)
		if err != nil || info.IsDir() {
			return "", fmt.Errorf("binary not found at %s", configured)
		}
		return configured, nil
	}
	return exec.LookPath(name)
}

func failed(err error) Result {
	return Result{Err: err}
}

func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
