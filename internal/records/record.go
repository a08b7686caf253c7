package records

import "sort"

// Record is one input row: a track that should end up backed by a local file.
// Match annotations are attached by the matchers; records are never deleted,
// only filtered at export time.
type Record struct {
	// ExternalID is the catalog identifier from the input file. Zero means
	// absent, which is only valid in fuzzy-matching mode.
	ExternalID int64
	Artist     string
	Title      string
	SourcePath string

	// Derived at load time.
	NormalizedPath string
	FileExists     bool
	FileSize       int64

	// Attached by the file matcher.
	MatchConfidence float64
	MatchedFile     string
}

// DisplayName renders the record for logs and reports.
func (r Record) DisplayName() string {
	return r.Artist + " - " + r.Title
}

// Matched reports whether the file matcher assigned a file to this record.
func (r Record) Matched() bool {
	return r.MatchedFile != ""
}

// SortedMatches returns the matched records sorted by descending confidence.
// The ordering is part of the export contract: report and CSV output both
// rely on it. The sort is stable so identical inputs always produce identical
// output.
func SortedMatches(recs []Record) []Record {
	matched := make([]Record, 0, len(recs))
	for _, rec := range recs {
		if rec.Matched() {
			matched = append(matched, rec)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].MatchConfidence > matched[j].MatchConfidence
	})
	return matched
}
