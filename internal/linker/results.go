package linker

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// resultsHeader is the persisted per-record outcome schema. A later run feeds
// this file back through LoadResumeSet to skip already-linked entries.
var resultsHeader = []string{"catalogId", "artist", "title", "action", "reason", "confidence", "format"}

// WriteResults writes one CSV row per result. Returns the number of rows
// written.
func WriteResults(path string, results []Result) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create results %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(resultsHeader); err != nil {
		return 0, fmt.Errorf("write results header: %w", err)
	}
	for _, result := range results {
		id := ""
		if result.CatalogID > 0 {
			id = strconv.FormatInt(result.CatalogID, 10)
		}
		confidence := ""
		if result.Confidence > 0 {
			confidence = strconv.FormatFloat(result.Confidence, 'f', 3, 64)
		}
		row := []string{
			id,
			result.Record.Artist,
			result.Record.Title,
			string(result.Action),
			result.Reason,
			confidence,
			result.Format,
		}
		if err := writer.Write(row); err != nil {
			return 0, fmt.Errorf("write results row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("flush results: %w", err)
	}
	return len(results), nil
}

// LoadResumeSet reads a prior results file and returns the catalog ids of
// entries that were already updated, so a re-run can skip them. The set is
// built once at run start and passed in explicitly; the orchestrator keeps no
// cross-run state of its own.
func LoadResumeSet(path string) (map[int64]struct{}, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open results %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read results %s: %w", path, err)
	}

	done := make(map[int64]struct{})
	for i, row := range rows {
		if i == 0 || len(row) < 4 {
			continue
		}
		action := Action(row[3])
		if action != ActionUpdated && action != ActionConverted {
			continue
		}
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		done[id] = struct{}{}
	}
	return done, nil
}
