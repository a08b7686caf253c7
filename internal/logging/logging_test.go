package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"djutil/internal/logging"
)

func TestNewWritesToProvidedWriter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hello", logging.String("key", "value"))
	out := buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "key=value") {
		t.Fatalf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "run_id=") {
		t.Fatalf("expected run_id attribute, got %q", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewMirrorsToLogFile(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{LogDir: dir, Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("mirrored")
	if !strings.Contains(buf.String(), "mirrored") {
		t.Fatalf("expected console output, got %q", buf.String())
	}
}
