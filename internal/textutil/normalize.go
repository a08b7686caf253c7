package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	parenPattern       = regexp.MustCompile(`\([^)]*\)`)
	bracketPattern     = regexp.MustCompile(`\[[^\]]*\]`)
	symbolPattern      = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
	trackNumberPattern = regexp.MustCompile(`[-_]\d+$`)
)

// diacriticFold decomposes accented runes and drops the combining marks so
// "Beyoncé" and "Beyonce" normalize to the same string.
var diacriticFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize cleans free text (artist, title) into a comparable token form:
// parenthetical and bracketed content removed, punctuation stripped,
// whitespace collapsed, lowercased. Empty input normalizes to "".
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = foldDiacritics(text)
	text = parenPattern.ReplaceAllString(text, "")
	text = bracketPattern.ReplaceAllString(text, "")
	text = symbolPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.ToLower(strings.TrimSpace(text))
}

// NormalizeFilename cleans a filename stem for matching. On top of Normalize
// it drops a leftover extension-like suffix and trailing track numbers, which
// carry no matching signal.
func NormalizeFilename(stem string) string {
	if stem == "" {
		return ""
	}
	if idx := strings.LastIndex(stem, "."); idx > 0 {
		if ext := stem[idx+1:]; len(ext) <= 4 && isAlpha(ext) {
			stem = stem[:idx]
		}
	}
	stem = foldDiacritics(stem)
	stem = parenPattern.ReplaceAllString(stem, " ")
	stem = bracketPattern.ReplaceAllString(stem, " ")
	stem = trackNumberPattern.ReplaceAllString(stem, " ")
	stem = symbolPattern.ReplaceAllString(stem, "")
	stem = whitespacePattern.ReplaceAllString(stem, " ")
	return strings.ToLower(strings.TrimSpace(stem))
}

func foldDiacritics(text string) string {
	folded, _, err := transform.String(diacriticFold, text)
	if err != nil {
		return text
	}
	return folded
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}
