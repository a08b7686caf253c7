package linker_test

import (
	"testing"

	"djutil/internal/catalog"
	"djutil/internal/linker"
)

func TestFindBestMatchSelectsHighestScorer(t *testing.T) {
	matcher, err := linker.NewMatcher(0.75, 0)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	entries := []catalog.Entry{
		{ID: 1, Artist: "Daft Punk", Title: "One More Time"},
		{ID: 2, Artist: "Daft Punk", Title: "Around the World"},
		{ID: 3, Artist: "Justice", Title: "Genesis"},
	}
	match := matcher.FindBestMatch("Daft Punk", "One More Time", entries)
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.Entry.ID != 1 {
		t.Fatalf("matched entry %d, want 1", match.Entry.ID)
	}
	if match.Confidence < 0.99 {
		t.Fatalf("confidence = %.3f, want ~1.0", match.Confidence)
	}
	if match.Ambiguous {
		t.Fatal("clear winner flagged ambiguous")
	}
}

func TestFindBestMatchBelowThreshold(t *testing.T) {
	matcher, err := linker.NewMatcher(0.75, 0)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	entries := []catalog.Entry{
		{ID: 1, Artist: "Aphex Twin", Title: "Windowlicker"},
	}
	if match := matcher.FindBestMatch("Burial", "Archangel", entries); match != nil {
		t.Fatalf("expected no match, got entry %d at %.3f", match.Entry.ID, match.Confidence)
	}
}

func TestFindBestMatchFlagsNarrowLead(t *testing.T) {
	matcher, err := linker.NewMatcher(0.5, 0.05)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	// Two near-identical rows produce scores within the ambiguity window.
	entries := []catalog.Entry{
		{ID: 1, Artist: "Orbital", Title: "Halcyon On and On"},
		{ID: 2, Artist: "Orbital", Title: "Halcyon On and On "},
	}
	match := matcher.FindBestMatch("Orbital", "Halcyon On and On", entries)
	if match == nil {
		t.Fatal("expected a match")
	}
	if !match.Ambiguous {
		t.Fatal("near-tie not flagged ambiguous")
	}
}

func TestFindBestMatchEmptyProbe(t *testing.T) {
	matcher, err := linker.NewMatcher(0.5, 0)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	entries := []catalog.Entry{{ID: 1, Artist: "A", Title: "B"}}
	if match := matcher.FindBestMatch("", "", entries); match != nil {
		t.Fatal("empty probe should never match")
	}
}

func TestNewMatcherRejectsBadThreshold(t *testing.T) {
	if _, err := linker.NewMatcher(1.5, 0); err == nil {
		t.Fatal("expected error for threshold > 1")
	}
	if _, err := linker.NewMatcher(-0.1, 0); err == nil {
		t.Fatal("expected error for negative threshold")
	}
}
