package records

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"djutil/internal/services"
)

// columnAliases maps canonical fields to accepted header spellings, compared
// case-insensitively.
var columnAliases = map[string][]string{
	"id":     {"rekordboxid", "recordboxid", "id"},
	"artist": {"artist"},
	"title":  {"title", "song title", "song name"},
	"path":   {"file path", "path", "filepath"},
}

// Loader parses delimited track files into Records.
type Loader struct {
	// RequireID demands an identifier column and a value per row. Disabled
	// in fuzzy-matching mode, where records are resolved by artist/title.
	RequireID bool
	// RequirePath demands a file path column and a value per row. Disabled
	// in file-match mode, where the matcher's job is to find the paths.
	RequirePath bool
}

// Load reads and validates every row of the file at path. Any malformed row
// fails the whole load; matching never starts on partial input.
func (l Loader) Load(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrLoad, "load", "open", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, services.Wrap(services.ErrLoad, "load", "header", "file is empty", nil)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrLoad, "load", "header", path, err)
	}
	columns, err := l.resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var recs []Record
	for rowNum := 2; ; rowNum++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, services.Wrap(services.ErrLoad, "load", "read", fmt.Sprintf("row %d", rowNum), err)
		}
		rec, err := l.parseRow(row, columns, rowNum)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// resolveColumns maps canonical field names to column indexes using the
// alias table. Unknown or extra columns are ignored.
func (l Loader) resolveColumns(header []string) (map[string]int, error) {
	normalized := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		normalized[strings.ToLower(strings.TrimSpace(name))] = i
	}

	columns := make(map[string]int, len(columnAliases))
	for canonical, aliases := range columnAliases {
		found := false
		for _, alias := range aliases {
			if idx, ok := normalized[alias]; ok {
				columns[canonical] = idx
				found = true
				break
			}
		}
		if found {
			continue
		}
		switch canonical {
		case "id":
			if !l.RequireID {
				continue
			}
		case "path":
			if !l.RequirePath {
				continue
			}
		}
		return nil, services.Wrap(services.ErrLoad, "load", "header",
			fmt.Sprintf("required column %q not found (expected one of: %s)", canonical, strings.Join(columnAliases[canonical], ", ")), nil)
	}
	return columns, nil
}

func (l Loader) parseRow(row []string, columns map[string]int, rowNum int) (Record, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	rec := Record{
		Artist:     field("artist"),
		Title:      field("title"),
		SourcePath: field("path"),
	}
	if rec.Artist == "" {
		return Record{}, rowError(rowNum, "artist is empty")
	}
	if rec.Title == "" {
		return Record{}, rowError(rowNum, "title is empty")
	}

	if idStr := field("id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			return Record{}, rowError(rowNum, fmt.Sprintf("invalid id %q (must be a positive integer)", idStr))
		}
		rec.ExternalID = id
	} else if l.RequireID {
		return Record{}, rowError(rowNum, "id is empty")
	}

	if rec.SourcePath == "" {
		if l.RequirePath {
			return Record{}, rowError(rowNum, "file path is empty")
		}
		return rec, nil
	}

	rec.NormalizedPath = normalizePath(rec.SourcePath)
	if info, err := os.Stat(rec.NormalizedPath); err == nil && !info.IsDir() {
		rec.FileExists = true
		rec.FileSize = info.Size()
	}
	return rec, nil
}

func rowError(rowNum int, message string) error {
	return services.Wrap(services.ErrLoad, "load", "row", fmt.Sprintf("row %d: %s", rowNum, message), nil)
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			if path == "~" {
				path = home
			} else if strings.HasPrefix(path, "~/") {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
