// Package config loads, normalizes, and validates djutil configuration.
//
// It supplies repository defaults, expands tilde paths, reads TOML files, and
// honours the DJUTIL_CATALOG environment fallback for the catalog database
// location. Obtain settings through this package so downstream code receives
// sanitized paths, canonical thresholds, and clear validation errors.
package config
