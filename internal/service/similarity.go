package service

import (
	"strings"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
)

// similarityRatio returns 1 - levenshtein(a, b) / max(len(a), len(b)), in [0, 1].
// Comparison is case-insensitive.
func similarityRatio(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(matchr.Levenshtein(a, b))/float64(maxLen)
}

// soundCodes returns the non-empty Double Metaphone codes of word.
func soundCodes(word string) []string {
	primary, secondary := matchr.DoubleMetaphone(strings.ToLower(word))

	codes := make([]string, 0, 2)
	if primary != "" {
		codes = append(codes, primary)
	}
	if secondary != "" && secondary != primary {
		codes = append(codes, secondary)
	}
	return codes
}

// soundsAlike reports whether two words share a Double Metaphone code.
func soundsAlike(a, b string) bool {
	for _, ca := range soundCodes(a) {
		for _, cb := range soundCodes(b) {
			if ca == cb {
				return true
			}
		}
	}
	return false
}

// normalizeSpoken lowercases and trims text and strips terminal . ? ! marks.
func normalizeSpoken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimRight(s, ".?!")
	// Remove extra whitespace
	return strings.Join(strings.Fields(s), " ")
}
