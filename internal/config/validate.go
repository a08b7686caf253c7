package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for values the pipeline cannot work with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.CatalogPath) == "" {
		return fmt.Errorf("config: catalog_path must not be empty")
	}
	for name, value := range map[string]float64{
		"matching.file_threshold":    c.Matching.FileThreshold,
		"matching.catalog_threshold": c.Matching.CatalogThreshold,
	} {
		if value < 0 || value > 1 {
			return fmt.Errorf("config: %s must be between 0.0 and 1.0, got %v", name, value)
		}
	}
	if c.Matching.AmbiguityWindow < 0 || c.Matching.AmbiguityWindow > 1 {
		return fmt.Errorf("config: matching.ambiguity_window must be between 0.0 and 1.0, got %v", c.Matching.AmbiguityWindow)
	}
	if c.Conversion.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: conversion.timeout_seconds must be positive, got %d", c.Conversion.TimeoutSeconds)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
