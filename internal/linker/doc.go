// Package linker attaches local audio files to streaming-only catalog
// entries.
//
// The fuzzy matcher scores input records against live catalog rows; the
// orchestrator then walks each record through match, validation, optional
// conversion, the catalog update, and optional re-analysis marking. Records
// are processed strictly in input order. Dry-run is the default posture:
// every action is computed and reported but nothing external is touched.
package linker
