package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes free-text answers for equivalence comparison:
// lowercase, trim, NFD decomposition with combining diacritics stripped,
// punctuation removed, whitespace collapsed. Total on all inputs.
func Normalize(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	decomposed := norm.NFD.String(lowered)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case r >= 0x0300 && r <= 0x036F:
			// combining diacritical marks
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		case isWordRune(r):
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
