package textutil

import "strings"

const (
	// sequenceWeight and overlapWeight blend the two similarity measures into
	// the combined score.
	sequenceWeight = 0.7
	overlapWeight  = 0.3

	// TitleGate is the minimum title-only similarity a candidate must reach
	// before any combined score is considered. Below it the pair scores zero
	// regardless of artist similarity, so common artist names cannot produce
	// false positives on their own.
	TitleGate = 0.3
)

// Score combines sequence similarity and word-overlap similarity into one
// [0,1] score. Inputs are compared as given; callers normalize first. Either
// input being empty scores 0. Score is symmetric and deterministic, and equal
// non-empty inputs score 1.
func Score(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	return sequenceWeight*SequenceRatio(a, b) + overlapWeight*WordOverlap(a, b)
}

// SequenceRatio returns the longest-matching-blocks similarity of a and b:
// twice the total number of runes in common matching blocks divided by the
// combined length. Matching blocks are found by recursively locating the
// longest common substring, then repeating on the pieces to either side.
func SequenceRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchedRunes(ra, rb)) / float64(total)
}

// WordOverlap returns the Jaccard similarity of the whitespace-tokenized word
// sets of a and b.
func WordOverlap(a, b string) float64 {
	wordsA := wordSet(a)
	wordsB := wordSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}
	intersection := 0
	for word := range wordsA {
		if _, ok := wordsB[word]; ok {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// TitleSimilarity measures how well a cleaned title matches a cleaned
// filename. It takes the better of the sequence ratio and the fraction of
// title words present in the filename, so a title fully embedded in a longer
// filename still passes the gate.
func TitleSimilarity(title, name string) float64 {
	if title == "" {
		return 0
	}
	sequence := SequenceRatio(title, name)

	titleWords := wordSet(title)
	nameWords := wordSet(name)
	if len(titleWords) == 0 || len(nameWords) == 0 {
		return sequence
	}
	found := 0
	for word := range titleWords {
		if _, ok := nameWords[word]; ok {
			found++
		}
	}
	coverage := float64(found) / float64(len(titleWords))
	if coverage > sequence {
		return coverage
	}
	return sequence
}

func matchedRunes(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	return size + matchedRunes(a[:ai], b[:bi]) + matchedRunes(a[ai+size:], b[bi+size:])
}

// longestMatch finds the leftmost longest common substring of a and b,
// returning its start offsets and length.
func longestMatch(a, b []rune) (int, int, int) {
	var bestA, bestB, bestSize int
	lengths := make(map[int]int)
	for i := range a {
		next := make(map[int]int)
		for j := range b {
			if a[i] != b[j] {
				continue
			}
			k := lengths[j-1] + 1
			next[j] = k
			if k > bestSize {
				bestA, bestB, bestSize = i-k+1, j-k+1, k
			}
		}
		lengths = next
	}
	return bestA, bestB, bestSize
}

func wordSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		set[field] = struct{}{}
	}
	return set
}
