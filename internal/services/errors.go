package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLoad marks malformed or incomplete input data. Raised before any
	// matching begins and fatal to the whole run.
	ErrLoad = errors.New("load error")
	// ErrValidation marks a per-record check failure (mismatch, already
	// local, missing file). Never fatal to the run unless strict mode.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a missing catalog entry or file.
	ErrNotFound = errors.New("not found")
	// ErrExternalTool marks a failure in an external process or store.
	ErrExternalTool = errors.New("external tool error")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes step context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, step, operation, message string, err error) error {
	detail := buildDetail(step, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(step, operation, message string) string {
	parts := make([]string, 0, 3)
	if step = strings.TrimSpace(step); step != "" {
		parts = append(parts, step)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
