// Package sentiment implements the rule-based customer mood heuristic.
//
// The heuristic is independent of the trained classifier: it counts
// occurrences of fixed negative and positive marker words and picks
// whichever side strictly dominates. The exact word lists and the tie rule
// are part of the contract; changing them changes observable behavior.
package sentiment

import (
	"strings"

	"github.com/jonesrussell/telecom-triage/internal/domain"
)

// Marker word lists. Stateless, never mutated at runtime.
var (
	negativeWords = []string{
		"slow", "not working", "disconnected", "high bill", "overcharged",
		"rude", "unhappy", "worst", "bad", "angry", "terrible", "frustrated",
	}
	positiveWords = []string{
		"solved", "fixed", "thank", "great", "happy", "good", "satisfied", "resolved",
	}
)

// Indicator glyphs shown alongside the label.
const (
	indicatorNegative = "😡"
	indicatorPositive = "😊"
	indicatorNeutral  = "😐"
)

// Analyze scores raw complaint text against the marker word lists.
// Counts are additive across repeated occurrences, including overlapping
// matches. The decision rule, in order:
//
//	negative > positive and negative >= 1 -> Negative
//	positive > negative and positive >= 1 -> Positive
//	otherwise (zeros and ties)            -> Neutral
//
// Analyze never fails; the empty string is Neutral.
func Analyze(text string) domain.SentimentResult {
	lower := strings.ToLower(text)

	negCount := 0
	for _, word := range negativeWords {
		negCount += countOccurrences(lower, word)
	}

	posCount := 0
	for _, word := range positiveWords {
		posCount += countOccurrences(lower, word)
	}

	result := domain.SentimentResult{
		NegativeCount: negCount,
		PositiveCount: posCount,
	}

	switch {
	case negCount > posCount && negCount >= 1:
		result.Label = domain.SentimentNegative
		result.Indicator = indicatorNegative
	case posCount > negCount && posCount >= 1:
		result.Label = domain.SentimentPositive
		result.Indicator = indicatorPositive
	default:
		result.Label = domain.SentimentNeutral
		result.Indicator = indicatorNeutral
	}

	return result
}

// countOccurrences counts substring occurrences, overlapping ones included.
func countOccurrences(text, sub string) int {
	if sub == "" {
		return 0
	}

	count := 0
	for i := 0; ; {
		idx := strings.Index(text[i:], sub)
		if idx < 0 {
			return count
		}
		count++
		i += idx + 1
	}
}

// NegativeWords returns a copy of the negative marker list.
func NegativeWords() []string {
	out := make([]string, len(negativeWords))
	copy(out, negativeWords)
	return out
}

// PositiveWords returns a copy of the positive marker list.
func PositiveWords() []string {
	out := make([]string, len(positiveWords))
	copy(out, positiveWords)
	return out
}
