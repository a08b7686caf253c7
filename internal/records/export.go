package records

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// exportHeader is the fixed output schema consumed by the link command and by
// spreadsheet users. The identifier column is always present even when the
// input had none.
var exportHeader = []string{"rekordboxId", "artist", "song title", "file path"}

// ExportMatches writes the matched records to a CSV at path, confidence
// descending, omitting unmatched records. Returns the number of rows written.
func ExportMatches(path string, recs []Record) (int, error) {
	matched := SortedMatches(recs)

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create export %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(exportHeader); err != nil {
		return 0, fmt.Errorf("write export header: %w", err)
	}
	for _, rec := range matched {
		id := ""
		if rec.ExternalID > 0 {
			id = strconv.FormatInt(rec.ExternalID, 10)
		}
		row := []string{id, rec.Artist, rec.Title, rec.MatchedFile}
		if err := writer.Write(row); err != nil {
			return 0, fmt.Errorf("write export row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("flush export: %w", err)
	}
	return len(matched), nil
}
