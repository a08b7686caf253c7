package convert

import (
	"sort"
	"strings"
)

// formatSpec describes how to encode one target format.
type formatSpec struct {
	Codec       string
	Container   string
	Description string
	Bitrate     string
	Compression string
}

var formatSpecs = map[string]formatSpec{
	"wav":  {Codec: "pcm_s16le", Container: "wav", Description: "WAV (PCM 16-bit)"},
	"aiff": {Codec: "pcm_s16be", Container: "aiff", Description: "AIFF (PCM 16-bit)"},
	"flac": {Codec: "flac", Container: "flac", Description: "FLAC (lossless)", Compression: "8"},
	"mp3":  {Codec: "libmp3lame", Container: "mp3", Description: "MP3 (320kbps)", Bitrate: "320k"},
	"aac":  {Codec: "aac", Container: "m4a", Description: "AAC (256kbps)", Bitrate: "256k"},
	"alac": {Codec: "alac", Container: "m4a", Description: "Apple Lossless (ALAC)"},
}

// Format describes a supported target format for display.
type Format struct {
	Name        string
	Codec       string
	Container   string
	Description string
}

// NormalizeFormat lowers a format or extension name and resolves container
// aliases: m4a and aac compare equal, as do aif and aiff.
func NormalizeFormat(name string) string {
	name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, ".")))
	switch name {
	case "m4a":
		return "aac"
	case "aif":
		return "aiff"
	default:
		return name
	}
}

// IsSupported reports whether name (after normalization) is a known target
// format.
func IsSupported(name string) bool {
	_, ok := formatSpecs[NormalizeFormat(name)]
	return ok
}

// SupportedFormats lists the known target formats sorted by name.
func SupportedFormats() []Format {
	formats := make([]Format, 0, len(formatSpecs))
	for name, spec := range formatSpecs {
		formats = append(formats, Format{
			Name:        name,
			Codec:       spec.Codec,
			Container:   spec.Container,
			Description: spec.Description,
		})
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i].Name < formats[j].Name })
	return formats
}
