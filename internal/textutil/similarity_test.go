package textutil_test

import (
	"math"
	"testing"

	"djutil/internal/textutil"
)

func TestScoreIdentityAndSymmetry(t *testing.T) {
	inputs := []string{
		"let it be",
		"daft punk one more time",
		"a",
		"the beatles let it be",
	}
	for _, in := range inputs {
		if got := textutil.Score(in, in); got != 1.0 {
			t.Errorf("Score(%q, %q) = %v, want 1.0", in, in, got)
		}
	}
	pairs := [][2]string{
		{"let it be", "let it bleed"},
		{"daft punk", "punk daft"},
		{"abc", "xyz"},
	}
	for _, pair := range pairs {
		forward := textutil.Score(pair[0], pair[1])
		reverse := textutil.Score(pair[1], pair[0])
		if math.Abs(forward-reverse) > 1e-12 {
			t.Errorf("Score not symmetric for %q/%q: %v vs %v", pair[0], pair[1], forward, reverse)
		}
	}
}

func TestScoreEmptyInputs(t *testing.T) {
	if got := textutil.Score("", ""); got != 0 {
		t.Errorf("Score of two empty strings = %v, want 0", got)
	}
	if got := textutil.Score("let it be", ""); got != 0 {
		t.Errorf("Score against empty string = %v, want 0", got)
	}
}

func TestScoreDisjointInputsNearZero(t *testing.T) {
	if got := textutil.Score("aaaa", "zzzz"); got != 0 {
		t.Errorf("Score of disjoint strings = %v, want 0", got)
	}
}

func TestSequenceRatio(t *testing.T) {
	if got := textutil.SequenceRatio("abcd", "abcd"); got != 1.0 {
		t.Errorf("SequenceRatio equal = %v, want 1.0", got)
	}
	// "abcd" vs "bcde": longest block "bcd" (3 runes), 2*3/8 = 0.75
	if got := textutil.SequenceRatio("abcd", "bcde"); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("SequenceRatio(abcd, bcde) = %v, want 0.75", got)
	}
	if got := textutil.SequenceRatio("", ""); got != 1.0 {
		t.Errorf("SequenceRatio of empties = %v, want 1.0", got)
	}
}

func TestWordOverlap(t *testing.T) {
	// {one,more,time} vs {one,more,chance}: 2 shared of 4 total.
	if got := textutil.WordOverlap("one more time", "one more chance"); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("WordOverlap = %v, want 0.5", got)
	}
	if got := textutil.WordOverlap("one more time", "time more one"); got != 1.0 {
		t.Errorf("WordOverlap order-independent = %v, want 1.0", got)
	}
	if got := textutil.WordOverlap("", "one"); got != 0 {
		t.Errorf("WordOverlap with empty = %v, want 0", got)
	}
}

func TestTitleSimilarityWordCoverage(t *testing.T) {
	// Title fully embedded in a longer filename: coverage 1.0 beats the
	// sequence ratio.
	got := textutil.TitleSimilarity("let it be", "the beatles let it be remaster")
	if got != 1.0 {
		t.Errorf("TitleSimilarity coverage = %v, want 1.0", got)
	}
	if got := textutil.TitleSimilarity("", "anything"); got != 0 {
		t.Errorf("TitleSimilarity with empty title = %v, want 0", got)
	}
}
