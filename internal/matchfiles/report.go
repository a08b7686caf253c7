package matchfiles

import (
	"fmt"
	"os"
	"strings"
	"time"

	"djutil/internal/records"
)

// ReportInfo describes the run that produced an Outcome, for the report
// header.
type ReportInfo struct {
	InputPath   string
	ScanDir     string
	Threshold   float64
	FilesFound  int
	GeneratedAt time.Time
}

// Summary holds the counters shown after a match run.
type Summary struct {
	Total              int
	Matched            int
	Unmatched          int
	DuplicatesResolved int
}

// Summary derives the run counters from the outcome.
func (o Outcome) Summary() Summary {
	return Summary{
		Total:              len(o.Records),
		Matched:            o.Matched,
		Unmatched:          len(o.Records) - o.Matched,
		DuplicatesResolved: o.DuplicatesResolved,
	}
}

// MatchRate returns the matched fraction in percent.
func (s Summary) MatchRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Matched) / float64(s.Total) * 100
}

// WriteReport renders the human-readable markdown report: configuration,
// summary, confidence histogram, matched tracks in confidence-descending
// order, and every unmatched track.
func WriteReport(path string, info ReportInfo, outcome Outcome) error {
	var b strings.Builder

	matched := records.SortedMatches(outcome.Records)
	var unmatched []records.Record
	for _, rec := range outcome.Records {
		if !rec.Matched() {
			unmatched = append(unmatched, rec)
		}
	}
	summary := outcome.Summary()

	b.WriteString("# File Path Matcher Report\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", info.GeneratedAt.Format("2006-01-02 15:04:05"))

	b.WriteString("## Configuration\n")
	fmt.Fprintf(&b, "- **Input CSV**: %s\n", info.InputPath)
	fmt.Fprintf(&b, "- **Scan Directory**: %s\n", info.ScanDir)
	fmt.Fprintf(&b, "- **Similarity Threshold**: %g\n", info.Threshold)
	fmt.Fprintf(&b, "- **Music Files Found**: %d\n\n", info.FilesFound)

	b.WriteString("## Summary\n")
	fmt.Fprintf(&b, "- **Total Tracks**: %d\n", summary.Total)
	fmt.Fprintf(&b, "- **Successfully Matched**: %d\n", summary.Matched)
	fmt.Fprintf(&b, "- **Unmatched**: %d\n", summary.Unmatched)
	fmt.Fprintf(&b, "- **Match Rate**: %.1f%%\n", summary.MatchRate())
	if summary.DuplicatesResolved > 0 {
		fmt.Fprintf(&b, "- **Duplicate File Matches Resolved**: %d\n", summary.DuplicatesResolved)
	}
	b.WriteString("\n")

	if len(matched) > 0 {
		high, medium, low := 0, 0, 0
		for _, rec := range matched {
			switch {
			case rec.MatchConfidence >= 0.8:
				high++
			case rec.MatchConfidence >= 0.6:
				medium++
			default:
				low++
			}
		}
		b.WriteString("## Confidence Distribution\n")
		fmt.Fprintf(&b, "- **High Confidence** (>=0.8): %d tracks\n", high)
		fmt.Fprintf(&b, "- **Medium Confidence** (0.6-0.8): %d tracks\n", medium)
		fmt.Fprintf(&b, "- **Low Confidence** (<0.6): %d tracks\n\n", low)

		b.WriteString("## Matched Tracks (Sorted by Confidence)\n\n")
		for i, rec := range matched {
			fmt.Fprintf(&b, "### %d. %s\n", i+1, rec.DisplayName())
			if rec.ExternalID > 0 {
				fmt.Fprintf(&b, "- **Catalog ID**: %d\n", rec.ExternalID)
			}
			fmt.Fprintf(&b, "- **Confidence**: %.3f `%s`\n", rec.MatchConfidence, confidenceBar(rec.MatchConfidence))
			fmt.Fprintf(&b, "- **File Path**: `%s`\n\n", rec.MatchedFile)
		}
	}

	if len(unmatched) > 0 {
		b.WriteString("## Unmatched Tracks\n\n")
		fmt.Fprintf(&b, "The following %d tracks could not be matched with local files:\n\n", len(unmatched))
		for i, rec := range unmatched {
			fmt.Fprintf(&b, "%d. **%s**", i+1, rec.DisplayName())
			if rec.ExternalID > 0 {
				fmt.Fprintf(&b, " (ID: %d)", rec.ExternalID)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func confidenceBar(confidence float64) string {
	filled := int(confidence * 10)
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}
