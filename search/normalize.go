package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningMarks is the Combining Diacritical Marks block (U+0300..U+036F).
var combiningMarks = runes.Predicate(func(r rune) bool {
	return r >= 0x0300 && r <= 0x036F
})

// Normalize lowercases s, folds diacritics, drops everything but ASCII word
// characters and whitespace, and trims the result. It is idempotent.
func Normalize(s string) string {
	s = strings.ToLower(s)
	// A fresh chain per call: transformers carry state.
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(combiningMarks)), s)
	if err == nil {
		s = folded
	}
	s = strings.Map(func(r rune) rune {
		if isWordChar(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
	return strings.TrimSpace(s)
}

// NormalizeAny normalizes v when it is a string and returns "" otherwise.
func NormalizeAny(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return Normalize(s)
}

func isWordChar(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
