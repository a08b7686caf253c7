package matchfiles

import (
	"fmt"
	"log/slog"
	"sort"

	"djutil/internal/logging"
	"djutil/internal/records"
	"djutil/internal/scanner"
	"djutil/internal/textutil"
)

// Engine matches records to file candidates at or above a similarity
// threshold.
type Engine struct {
	threshold float64
	logger    *slog.Logger
}

// Outcome carries the annotated records and run counters.
type Outcome struct {
	Records            []records.Record
	Matched            int
	DuplicatesResolved int
}

// New builds an Engine. The threshold must lie in [0,1].
func New(threshold float64, logger *slog.Logger) (*Engine, error) {
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("match threshold must be between 0.0 and 1.0, got %v", threshold)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{threshold: threshold, logger: logger}, nil
}

type claim struct {
	recordIndex int
	confidence  float64
}

// Match annotates recs with their best file candidate. Records and candidates
// are scored pairwise, each record keeps its single best candidate at or
// above the threshold, and duplicate file claims are resolved in a single
// pass over the collected tentative assignments. A record with no candidate
// above threshold is not an error; it simply stays unmatched.
func (e *Engine) Match(recs []records.Record, candidates []scanner.Candidate) Outcome {
	tentative := make(map[string][]claim)

	for i := range recs {
		artist := textutil.Normalize(recs[i].Artist)
		title := textutil.Normalize(recs[i].Title)

		bestScore := 0.0
		bestPath := ""
		for _, cand := range candidates {
			score := scoreCandidate(artist, title, cand.NormalizedName)
			if score > bestScore && score >= e.threshold {
				bestScore = score
				bestPath = cand.Path
			}
		}
		if bestPath != "" {
			tentative[bestPath] = append(tentative[bestPath], claim{recordIndex: i, confidence: bestScore})
		}
	}

	outcome := Outcome{Records: recs}
	paths := make([]string, 0, len(tentative))
	for path := range tentative {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		claims := tentative[path]
		sort.SliceStable(claims, func(i, j int) bool {
			if claims[i].confidence != claims[j].confidence {
				return claims[i].confidence > claims[j].confidence
			}
			return claims[i].recordIndex < claims[j].recordIndex
		})
		winner := claims[0]
		recs[winner.recordIndex].MatchedFile = path
		recs[winner.recordIndex].MatchConfidence = winner.confidence
		outcome.Matched++
		if len(claims) > 1 {
			outcome.DuplicatesResolved += len(claims) - 1
			e.logger.Debug("duplicate file claims resolved",
				logging.String("file", path),
				logging.Int("losing_claims", len(claims)-1))
		}
	}

	e.logger.Info("matching complete",
		logging.Int("records", len(recs)),
		logging.Int("matched", outcome.Matched),
		logging.Int("duplicates_resolved", outcome.DuplicatesResolved))
	return outcome
}

// scoreCandidate applies the title gate, then takes the maximum combined
// score across probe strings built from the cleaned artist and title. An
// artist-only match never substitutes for a title match.
func scoreCandidate(artist, title, name string) float64 {
	if title != "" && textutil.TitleSimilarity(title, name) < textutil.TitleGate {
		return 0
	}

	probes := make([]string, 0, 4)
	if artist != "" && title != "" {
		probes = append(probes, artist+" "+title, title+" "+artist)
	}
	if title != "" {
		probes = append(probes, title)
	}
	if artist != "" {
		probes = append(probes, artist)
	}

	best := 0.0
	for _, probe := range probes {
		if score := textutil.Score(probe, name); score > best {
			best = score
		}
	}
	return best
}
