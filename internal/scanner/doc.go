// Package scanner walks a directory tree and yields candidate audio files
// with normalized names for matching.
package scanner
