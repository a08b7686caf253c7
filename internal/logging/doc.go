// Package logging constructs slog loggers for the CLI.
//
// Console output goes to stderr in text form so command output on stdout
// stays machine-readable; the json format is available for scripted runs.
// When a log directory is configured, entries are mirrored to a log file.
// Each run is tagged with a generated run id.
package logging
