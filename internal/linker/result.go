package linker

import "djutil/internal/records"

// Action is the terminal outcome of one record's pass through the
// orchestrator.
type Action string

const (
	ActionUpdated   Action = "updated"
	ActionConverted Action = "converted"
	ActionSkipped   Action = "skipped"
	ActionError     Action = "error"
)

// Result is produced exactly once per processed record and never mutated
// afterwards.
type Result struct {
	Record     records.Record
	Action     Action
	Reason     string
	CatalogID  int64
	Confidence float64
	Ambiguous  bool
	Converted  bool
	Format     string
	Reanalyzed bool
}

// Summary aggregates a run's results.
type Summary struct {
	Total      int
	Updated    int
	Converted  int
	Skipped    int
	Errors     int
	Reanalyzed int

	BackupPath string
	DryRun     bool
	Halted     bool

	Results []Result
}

func (s *Summary) add(result Result) {
	s.Total++
	s.Results = append(s.Results, result)
	switch result.Action {
	case ActionUpdated:
		s.Updated++
	case ActionConverted:
		s.Updated++
		s.Converted++
	case ActionSkipped:
		s.Skipped++
	case ActionError:
		s.Errors++
	}
	if result.Reanalyzed {
		s.Reanalyzed++
	}
}

// Failed reports whether the run counts as a failure: every record errored,
// or strict mode halted early with at least one error.
func (s *Summary) Failed() bool {
	if s.Total > 0 && s.Errors == s.Total {
		return true
	}
	return s.Halted && s.Errors > 0
}
