//nolint:testpackage // White-box tests for the triage pipeline.
package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/jonesrussell/telecom-triage/internal/domain"
	"github.com/jonesrussell/telecom-triage/internal/logging"
	"github.com/jonesrussell/telecom-triage/internal/model"
	"github.com/jonesrussell/telecom-triage/internal/textnorm"
)

// newTestPipeline trains a tiny model over an unambiguous corpus so
// predictions are stable.
func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()

	corpus := []struct {
		text  string
		label string
	}{
		{"my internet speed is very slow today", domain.CategoryInternetSpeed},
		{"download speed dropped and streaming is slow", domain.CategoryInternetSpeed},
		{"extremely slow connection speed at night", domain.CategoryInternetSpeed},
		{"i was overcharged on my monthly invoice", domain.CategoryBilling},
		{"unexpected charges appeared on the invoice", domain.CategoryBilling},
		{"the invoice shows charges i never approved", domain.CategoryBilling},
		{"the network is down and i am disconnected", domain.CategoryServiceNetwork},
		{"total outage in my area network disconnected", domain.CategoryServiceNetwork},
		{"disconnected again another network outage", domain.CategoryServiceNetwork},
		{"the support agent was rude on the phone", domain.CategoryCustomerService},
		{"rude agent hung up on me during support call", domain.CategoryCustomerService},
		{"customer support agent was dismissive and rude", domain.CategoryCustomerService},
	}

	docs := make([]string, len(corpus))
	labels := make([]string, len(corpus))
	for i, c := range corpus {
		docs[i] = textnorm.Clean(c.text)
		labels[i] = c.label
	}

	vec := model.NewVectorizer(0)
	if err := vec.Fit(docs); err != nil {
		t.Fatalf("fit vectorizer: %v", err)
	}

	clf := model.NewClassifier(0.5, 300)
	clf.Version = "test-model"
	if err := clf.Fit(vec.TransformAll(docs), labels); err != nil {
		t.Fatalf("fit classifier: %v", err)
	}

	arts := &model.Artifacts{Vectorizer: vec, Classifier: clf}
	return New(arts, nil, logging.NewNop())
}

func TestTriage(t *testing.T) {
	p := newTestPipeline(t)

	tests := []struct {
		name          string
		text          string
		wantCategory  string
		wantSentiment string
		wantPriority  string
		wantPlaybook  string
	}{
		{
			name:          "slow internet negative",
			text:          "My internet speed is terrible and slow since yesterday!",
			wantCategory:  domain.CategoryInternetSpeed,
			wantSentiment: domain.SentimentNegative,
			wantPriority:  domain.PriorityHigh,
			wantPlaybook:  "connectivity",
		},
		{
			name:          "billing neutral",
			text:          "There are unexpected charges on my invoice this month.",
			wantCategory:  domain.CategoryBilling,
			wantSentiment: domain.SentimentNeutral,
			wantPriority:  domain.PriorityMedium,
			wantPlaybook:  "billing",
		},
		{
			name:          "rude agent negative",
			text:          "The support agent was extremely rude to me.",
			wantCategory:  domain.CategoryCustomerService,
			wantSentiment: domain.SentimentNegative,
			wantPriority:  domain.PriorityHigh,
			wantPlaybook:  "service-quality",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Triage(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("Triage: %v", err)
			}

			if got.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", got.Category, tt.wantCategory)
			}
			if got.Sentiment.Label != tt.wantSentiment {
				t.Errorf("Sentiment = %q, want %q", got.Sentiment.Label, tt.wantSentiment)
			}
			if got.Priority != tt.wantPriority {
				t.Errorf("Priority = %q, want %q", got.Priority, tt.wantPriority)
			}
			if got.Playbook.Name != tt.wantPlaybook {
				t.Errorf("Playbook = %q, want %q", got.Playbook.Name, tt.wantPlaybook)
			}
			if got.ModelVersion != "test-model" {
				t.Errorf("ModelVersion = %q, want test-model", got.ModelVersion)
			}
			if got.RawText != tt.text {
				t.Errorf("RawText = %q, want original text", got.RawText)
			}
			if got.CleanedText != textnorm.Clean(tt.text) {
				t.Errorf("CleanedText = %q, want normalized text", got.CleanedText)
			}
			if got.TriagedAt.IsZero() {
				t.Error("TriagedAt not set")
			}
		})
	}
}

func TestTriage_EmptyText(t *testing.T) {
	p := newTestPipeline(t)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := p.Triage(context.Background(), text)
		if !errors.Is(err, ErrEmptyComplaint) {
			t.Errorf("Triage(%q) = %v, want ErrEmptyComplaint", text, err)
		}
	}
}

func TestTriage_ScoresSumToOne(t *testing.T) {
	p := newTestPipeline(t)

	got, err := p.Triage(context.Background(), "my invoice has strange charges")
	if err != nil {
		t.Fatalf("Triage: %v", err)
	}

	var sum float64
	for _, s := range got.CategoryScores {
		sum += s
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("scores sum to %v, want 1", sum)
	}
	if got.CategoryScores[got.Category] == 0 {
		t.Error("predicted category missing from scores")
	}
}

func TestModelVersion(t *testing.T) {
	p := newTestPipeline(t)
	if p.ModelVersion() != "test-model" {
		t.Errorf("ModelVersion = %q, want test-model", p.ModelVersion())
	}
}
