// Package convert invokes ffmpeg to transcode audio files between formats.
//
// Conversion is synchronous and bounded by a fixed timeout; a timeout or a
// non-zero ffmpeg exit produces a failed Result rather than a run abort, so
// callers fall back to the original file. Format names are normalized so container
// aliases (m4a/aac, aif/aiff) compare equal.
package convert
