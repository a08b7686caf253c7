package catalog

import (
	"fmt"
	"strings"
)

// streamingProviders are path markers that identify an entry as backed by a
// streaming service rather than a local file.
var streamingProviders = []string{
	"tidal",
	"beatport",
	"spotify",
	"soundcloud",
	"beatsource",
	"apple music",
	"youtube",
}

// Entry is one catalog row. Owned and mutated exclusively through the Store.
type Entry struct {
	ID           int64
	Artist       string
	Title        string
	FolderPath   string
	FileSize     int64
	AnalysisPath string
	Analyzed     bool
}

// IsStreaming reports whether the entry's backing path is empty or names a
// streaming provider.
func (e Entry) IsStreaming() bool {
	path := strings.TrimSpace(e.FolderPath)
	if path == "" {
		return true
	}
	lowered := strings.ToLower(path)
	for _, provider := range streamingProviders {
		if strings.Contains(lowered, provider) {
			return true
		}
	}
	return false
}

// IsLocal is the inverse of IsStreaming.
func (e Entry) IsLocal() bool {
	return !e.IsStreaming()
}

// DisplayName renders the entry for logs.
func (e Entry) DisplayName() string {
	switch {
	case e.Artist != "" && e.Title != "":
		return e.Artist + " - " + e.Title
	case e.Title != "":
		return e.Title
	case e.Artist != "":
		return e.Artist + " - Unknown Title"
	default:
		return fmt.Sprintf("Entry %d", e.ID)
	}
}
