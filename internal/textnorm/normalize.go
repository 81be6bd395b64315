// Package textnorm provides deterministic normalization of complaint text.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Clean lowercases text and strips every rune that is not a letter or
// whitespace. Digits, punctuation and symbols are removed; whitespace runs
// are preserved as-is. Clean never fails, is idempotent, and maps the empty
// string to itself.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	// NFKC first so composed and decomposed forms normalize identically.
	text = norm.NFKC.String(text)
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// Tokens splits cleaned text into lowercase word tokens.
func Tokens(text string) []string {
	return strings.Fields(Clean(text))
}
