package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// exportHeader uses the same column names the records loader accepts, so an
// export feeds straight into match and link runs.
var exportHeader = []string{"rekordboxId", "artist", "song title"}

// ExportStreaming writes the given entries to a CSV at path, preserving their
// order. The file opens with a UTF-8 byte order mark so spreadsheet tools
// pick the right encoding. Returns the number of rows written.
func ExportStreaming(path string, entries []Entry) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create export %s: %w", path, err)
	}
	defer file.Close()

	if _, err := file.WriteString("\ufeff"); err != nil {
		return 0, fmt.Errorf("write export %s: %w", path, err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(exportHeader); err != nil {
		return 0, fmt.Errorf("write export header: %w", err)
	}
	for _, entry := range entries {
		row := []string{strconv.FormatInt(entry.ID, 10), entry.Artist, entry.Title}
		if err := writer.Write(row); err != nil {
			return 0, fmt.Errorf("write export row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("flush export: %w", err)
	}
	return len(entries), nil
}
