//nolint:testpackage // White-box tests against an in-memory sqlite database.
package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonesrussell/telecom-triage/internal/domain"
)

func newTestRepo(t *testing.T) *HistoryRepository {
	t.Helper()

	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewHistoryRepository(db)
}

func sampleHistory(category, sentiment, priority string, confidence float64) *domain.TriageHistory {
	return &domain.TriageHistory{
		RawText:          "sample complaint",
		Category:         category,
		Confidence:       confidence,
		Sentiment:        sentiment,
		Priority:         priority,
		ModelVersion:     "20260101T000000Z",
		ProcessingTimeMs: 3,
		TriagedAt:        time.Now().UTC(),
	}
}

func TestCreateAndRecent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := sampleHistory(domain.CategoryBilling, domain.SentimentNegative, domain.PriorityHigh, 0.9)
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.ID == 0 {
		t.Error("Create did not set ID")
	}

	second := sampleHistory(domain.CategoryInternetSpeed, domain.SentimentNeutral, domain.PriorityMedium, 0.7)
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create: %v", err)
	}

	records, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	// Newest first.
	if records[0].ID != second.ID {
		t.Errorf("Recent[0].ID = %d, want %d", records[0].ID, second.ID)
	}
	if records[0].Category != domain.CategoryInternetSpeed {
		t.Errorf("Recent[0].Category = %q", records[0].Category)
	}
}

func TestRecent_DefaultLimit(t *testing.T) {
	repo := newTestRepo(t)

	records, err := repo.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records on empty table", len(records))
	}
}

func TestGetStats(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seed := []*domain.TriageHistory{
		sampleHistory(domain.CategoryBilling, domain.SentimentNegative, domain.PriorityHigh, 0.8),
		sampleHistory(domain.CategoryBilling, domain.SentimentNeutral, domain.PriorityMedium, 0.6),
		sampleHistory(domain.CategoryInternetSpeed, domain.SentimentNegative, domain.PriorityHigh, 0.4),
	}
	for _, h := range seed {
		if err := repo.Create(ctx, h); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	stats, err := repo.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	if stats.TotalTriaged != 3 {
		t.Errorf("TotalTriaged = %d, want 3", stats.TotalTriaged)
	}
	if stats.HighPriority != 2 {
		t.Errorf("HighPriority = %d, want 2", stats.HighPriority)
	}
	if stats.NegativeSentiment != 2 {
		t.Errorf("NegativeSentiment = %d, want 2", stats.NegativeSentiment)
	}
	if stats.AvgConfidence < 0.59 || stats.AvgConfidence > 0.61 {
		t.Errorf("AvgConfidence = %v, want 0.6", stats.AvgConfidence)
	}
	if stats.Sentiments[domain.SentimentNegative] != 2 || stats.Sentiments[domain.SentimentNeutral] != 1 {
		t.Errorf("Sentiments = %v", stats.Sentiments)
	}
}

func TestGetStats_EmptyTable(t *testing.T) {
	repo := newTestRepo(t)

	stats, err := repo.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalTriaged != 0 || stats.AvgConfidence != 0 {
		t.Errorf("empty table stats = %+v", stats)
	}
}

func TestGetCategoryStats(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seed := []*domain.TriageHistory{
		sampleHistory(domain.CategoryBilling, domain.SentimentNeutral, domain.PriorityMedium, 0.9),
		sampleHistory(domain.CategoryBilling, domain.SentimentNeutral, domain.PriorityMedium, 0.7),
		sampleHistory(domain.CategoryOther, domain.SentimentNeutral, domain.PriorityMedium, 0.5),
	}
	for _, h := range seed {
		if err := repo.Create(ctx, h); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	stats, err := repo.GetCategoryStats(ctx)
	if err != nil {
		t.Fatalf("GetCategoryStats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d category stats, want 2", len(stats))
	}
	if stats[0].Category != domain.CategoryBilling || stats[0].Count != 2 {
		t.Errorf("stats[0] = %+v, want billing with count 2", stats[0])
	}
	if stats[0].AvgConfidence < 0.79 || stats[0].AvgConfidence > 0.81 {
		t.Errorf("AvgConfidence = %v, want 0.8", stats[0].AvgConfidence)
	}
}

func TestGetCategoryStatsByName(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, sampleHistory(domain.CategoryBilling, domain.SentimentNeutral, domain.PriorityMedium, 0.9)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	stat, err := repo.GetCategoryStatsByName(ctx, domain.CategoryBilling)
	if err != nil {
		t.Fatalf("GetCategoryStatsByName: %v", err)
	}
	if stat.Count != 1 {
		t.Errorf("Count = %d, want 1", stat.Count)
	}

	// Unknown categories come back zeroed rather than as an error.
	stat, err = repo.GetCategoryStatsByName(ctx, "Nope")
	if err != nil {
		t.Fatalf("GetCategoryStatsByName unknown: %v", err)
	}
	if stat.Category != "Nope" || stat.Count != 0 {
		t.Errorf("unknown category stat = %+v", stat)
	}
}
