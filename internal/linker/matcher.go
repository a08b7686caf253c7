package linker

import (
	"fmt"

	"djutil/internal/catalog"
	"djutil/internal/services"
	"djutil/internal/textutil"
)

// DefaultAmbiguityWindow is the score lead under which a best match is
// flagged ambiguous.
const DefaultAmbiguityWindow = 0.05

// Match is the outcome of a fuzzy catalog lookup.
type Match struct {
	Entry      catalog.Entry
	Confidence float64
	Ambiguous  bool
}

// Matcher finds the catalog entry best matching an artist/title pair.
// Catalog rows are better structured than filenames, so a single combined
// "artist title" probe is scored per entry instead of the file matcher's
// multi-probe search.
type Matcher struct {
	threshold       float64
	ambiguityWindow float64
}

// NewMatcher validates the threshold and builds a Matcher. A non-positive
// ambiguityWindow falls back to the default.
func NewMatcher(threshold, ambiguityWindow float64) (*Matcher, error) {
	if threshold < 0 || threshold > 1 {
		return nil, services.Wrap(services.ErrValidation, "linker", "matcher",
			fmt.Sprintf("threshold %.2f outside [0,1]", threshold), nil)
	}
	if ambiguityWindow <= 0 {
		ambiguityWindow = DefaultAmbiguityWindow
	}
	return &Matcher{threshold: threshold, ambiguityWindow: ambiguityWindow}, nil
}

// FindBestMatch returns the best-scoring entry at or above the threshold, or
// nil when none qualifies. When the lead over the runner-up is under the
// ambiguity window the match is flagged ambiguous but still returned; the
// flag is advisory and callers surface it to the operator.
func (m *Matcher) FindBestMatch(artist, title string, entries []catalog.Entry) *Match {
	probe := textutil.Normalize(artist + " " + title)
	if probe == "" {
		return nil
	}

	var (
		best      *catalog.Entry
		bestScore float64
		runnerUp  float64
	)
	for i := range entries {
		target := textutil.Normalize(entries[i].Artist + " " + entries[i].Title)
		score := textutil.Score(probe, target)
		switch {
		case score > bestScore:
			runnerUp = bestScore
			bestScore = score
			best = &entries[i]
		case score > runnerUp:
			runnerUp = score
		}
	}
	if best == nil || bestScore < m.threshold {
		return nil
	}
	return &Match{
		Entry:      *best,
		Confidence: bestScore,
		Ambiguous:  bestScore-runnerUp < m.ambiguityWindow,
	}
}
