package linker_test

import (
	"path/filepath"
	"testing"

	"djutil/internal/linker"
	"djutil/internal/records"
)

func TestResultsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	results := []linker.Result{
		{Record: records.Record{Artist: "A", Title: "B"}, Action: linker.ActionUpdated, CatalogID: 10, Confidence: 0.91},
		{Record: records.Record{Artist: "C", Title: "D"}, Action: linker.ActionConverted, CatalogID: 11, Format: "flac"},
		{Record: records.Record{Artist: "E", Title: "F"}, Action: linker.ActionSkipped, CatalogID: 12, Reason: "already local"},
		{Record: records.Record{Artist: "G", Title: "H"}, Action: linker.ActionError, Reason: "no id supplied"},
	}

	written, err := linker.WriteResults(path, results)
	if err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	if written != len(results) {
		t.Fatalf("wrote %d rows, want %d", written, len(results))
	}

	done, err := linker.LoadResumeSet(path)
	if err != nil {
		t.Fatalf("LoadResumeSet: %v", err)
	}
	// Only updated and converted entries count as already processed.
	if len(done) != 2 {
		t.Fatalf("resume set size = %d, want 2", len(done))
	}
	for _, id := range []int64{10, 11} {
		if _, ok := done[id]; !ok {
			t.Fatalf("resume set missing id %d", id)
		}
	}
	if _, ok := done[12]; ok {
		t.Fatal("skipped entry should not be in the resume set")
	}
}

func TestLoadResumeSetMissingFile(t *testing.T) {
	if _, err := linker.LoadResumeSet(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing results file")
	}
}
