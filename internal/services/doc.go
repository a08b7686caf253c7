// Package services defines the shared error taxonomy for the matching and
// linking pipeline.
//
// Sentinel errors classify failures (load, validation, not-found, external
// tool, configuration) and Wrap attaches step and operation context while
// preserving the marker for errors.Is checks. Load errors are fatal to a run;
// everything else is captured per record.
package services
