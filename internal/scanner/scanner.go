package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"djutil/internal/textutil"
)

// audioExtensions are the file suffixes considered audio candidates.
var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".flac": {},
	".aac":  {},
	".m4a":  {},
	".ogg":  {},
	".wma":  {},
	".aiff": {},
	".aif":  {},
	".alac": {},
}

// Candidate is one audio file discovered during a scan. Immutable once
// discovered; a candidate belongs to exactly one scan pass.
type Candidate struct {
	Path           string
	Name           string
	NormalizedName string
}

// Scan walks root recursively and returns every audio file found, in walk
// order (lexical, so repeated scans of an unchanged tree yield identical
// slices). Unreadable subtrees fail the scan rather than silently shrinking
// the candidate set.
func Scan(root string) ([]Candidate, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan directory not found: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan path is not a directory: %s", root)
	}

	var candidates []Candidate
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := audioExtensions[ext]; !ok {
			return nil
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		candidates = append(candidates, Candidate{
			Path:           path,
			Name:           entry.Name(),
			NormalizedName: textutil.NormalizeFilename(stem),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return candidates, nil
}
