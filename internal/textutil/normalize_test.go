package textutil_test

import (
	"testing"

	"djutil/internal/textutil"
)

func TestNormalizeStripsBracketsAndPunctuation(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Let It Be", "let it be"},
		{"Let It Be (Remastered 2009)", "let it be"},
		{"One More Time [Radio Edit]", "one more time"},
		{"AC/DC - T.N.T.", "acdc tnt"},
		{"  spaced    out  ", "spaced out"},
		{"Beyoncé", "beyonce"},
		{"Röyksopp", "royksopp"},
	}
	for _, tc := range cases {
		if got := textutil.Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"The Beatles - Let It Be", "the beatles let it be"},
		{"Daft Punk - One More Time (Radio Edit)", "daft punk one more time"},
		{"track-01", "track"},
		{"song_12", "song"},
		{"leftover.mp3", "leftover"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := textutil.NormalizeFilename(tc.in); got != tc.want {
			t.Errorf("NormalizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
