//nolint:testpackage // White-box tests for the sentiment heuristic.
package sentiment

import (
	"testing"

	"github.com/jonesrussell/telecom-triage/internal/domain"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantLabel string
		wantNeg   int
		wantPos   int
	}{
		{
			// "resolved" also contains "solved", so it scores twice.
			name:      "positive markers",
			text:      "great, thank you, resolved",
			wantLabel: domain.SentimentPositive,
			wantNeg:   0,
			wantPos:   4,
		},
		{
			name:      "negative markers",
			text:      "terrible rude disconnected",
			wantLabel: domain.SentimentNegative,
			wantNeg:   3,
			wantPos:   0,
		},
		{
			name:      "no markers",
			text:      "the weather is nice today",
			wantLabel: domain.SentimentNeutral,
			wantNeg:   0,
			wantPos:   0,
		},
		{
			name:      "tie is neutral",
			text:      "the service was bad but the agent was great",
			wantLabel: domain.SentimentNeutral,
			wantNeg:   1,
			wantPos:   1,
		},
		{
			name:      "repeated word counts each occurrence",
			text:      "bad bad bad",
			wantLabel: domain.SentimentNegative,
			wantNeg:   3,
			wantPos:   0,
		},
		{
			name:      "case insensitive",
			text:      "TERRIBLE service, very RUDE agent",
			wantLabel: domain.SentimentNegative,
			wantNeg:   2,
			wantPos:   0,
		},
		{
			name:      "multi word marker",
			text:      "my internet is not working since yesterday",
			wantLabel: domain.SentimentNegative,
			wantNeg:   1,
			wantPos:   0,
		},
		{
			name:      "substring match inside larger word",
			text:      "thanks for the goods",
			wantLabel: domain.SentimentPositive,
			wantNeg:   0,
			wantPos:   2,
		},
		{
			name:      "empty string",
			text:      "",
			wantLabel: domain.SentimentNeutral,
			wantNeg:   0,
			wantPos:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.text)

			if got.Label != tt.wantLabel {
				t.Errorf("Analyze(%q).Label = %q, want %q", tt.text, got.Label, tt.wantLabel)
			}
			if got.NegativeCount != tt.wantNeg {
				t.Errorf("Analyze(%q).NegativeCount = %d, want %d", tt.text, got.NegativeCount, tt.wantNeg)
			}
			if got.PositiveCount != tt.wantPos {
				t.Errorf("Analyze(%q).PositiveCount = %d, want %d", tt.text, got.PositiveCount, tt.wantPos)
			}
		})
	}
}

func TestAnalyze_Indicators(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"angry and frustrated", indicatorNegative},
		{"problem solved, happy now", indicatorPositive},
		{"please check my account", indicatorNeutral},
	}

	for _, tt := range tests {
		got := Analyze(tt.text)
		if got.Indicator != tt.want {
			t.Errorf("Analyze(%q).Indicator = %q, want %q", tt.text, got.Indicator, tt.want)
		}
	}
}

func TestCountOccurrences_Overlapping(t *testing.T) {
	if got := countOccurrences("aaaa", "aa"); got != 3 {
		t.Errorf("countOccurrences(aaaa, aa) = %d, want 3", got)
	}
	if got := countOccurrences("abc", ""); got != 0 {
		t.Errorf("countOccurrences with empty substring = %d, want 0", got)
	}
}

func TestWordListAccessors(t *testing.T) {
	neg := NegativeWords()
	neg[0] = "mutated"
	if negativeWords[0] == "mutated" {
		t.Error("NegativeWords must return a copy")
	}

	pos := PositiveWords()
	pos[0] = "mutated"
	if positiveWords[0] == "mutated" {
		t.Error("PositiveWords must return a copy")
	}
}
