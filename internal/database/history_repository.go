package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/telecom-triage/internal/domain"
)

// HistoryRepository handles database operations for triage history.
type HistoryRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository creates a new triage history repository.
func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// TriageStats represents overall triage statistics.
type TriageStats struct {
	TotalTriaged        int            `json:"total_triaged"`
	AvgConfidence       float64        `json:"avg_confidence"`
	HighPriority        int            `json:"high_priority"`
	NegativeSentiment   int            `json:"negative_sentiment"`
	AvgProcessingTimeMs float64        `json:"avg_processing_time_ms"`
	Sentiments          map[string]int `json:"sentiments"`
}

// CategoryStat represents statistics for a single category.
type CategoryStat struct {
	Category      string  `json:"category"       db:"category"`
	Count         int     `json:"count"          db:"count"`
	AvgConfidence float64 `json:"avg_confidence" db:"avg_confidence"`
}

// Create inserts a new triage history record.
func (r *HistoryRepository) Create(ctx context.Context, history *domain.TriageHistory) error {
	query := `
		INSERT INTO triage_history (
			raw_text, category, confidence, sentiment, priority,
			model_version, processing_time_ms, triaged_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(
		ctx,
		query,
		history.RawText,
		history.Category,
		history.Confidence,
		history.Sentiment,
		history.Priority,
		history.ModelVersion,
		history.ProcessingTimeMs,
		history.TriagedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create triage history: %w", err)
	}

	history.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read triage history id: %w", err)
	}

	return nil
}

// Recent returns the latest triage records, newest first.
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]*domain.TriageHistory, error) {
	if limit <= 0 {
		limit = 50
	}

	var records []*domain.TriageHistory
	query := `
		SELECT id, raw_text, category, confidence, sentiment, priority,
		       model_version, processing_time_ms, triaged_at
		FROM triage_history
		ORDER BY triaged_at DESC, id DESC
		LIMIT ?
	`

	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list triage history: %w", err)
	}

	return records, nil
}

// GetStats retrieves overall triage statistics.
func (r *HistoryRepository) GetStats(ctx context.Context) (*TriageStats, error) {
	var stats TriageStats

	query := `
		SELECT
			COUNT(*) as total_triaged,
			COALESCE(AVG(confidence), 0) as avg_confidence,
			COALESCE(SUM(CASE WHEN priority = 'HIGH' THEN 1 ELSE 0 END), 0) as high_priority,
			COALESCE(SUM(CASE WHEN sentiment = 'Negative' THEN 1 ELSE 0 END), 0) as negative_sentiment,
			COALESCE(AVG(processing_time_ms), 0) as avg_processing_time_ms
		FROM triage_history
	`

	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalTriaged,
		&stats.AvgConfidence,
		&stats.HighPriority,
		&stats.NegativeSentiment,
		&stats.AvgProcessingTimeMs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get triage stats: %w", err)
	}

	stats.Sentiments = make(map[string]int)
	sentimentQuery := `
		SELECT sentiment, COUNT(*) as count
		FROM triage_history
		GROUP BY sentiment
	`

	rows, err := r.db.QueryContext(ctx, sentimentQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to get sentiment distribution: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sentiment string
		var count int
		if err := rows.Scan(&sentiment, &count); err != nil {
			return nil, fmt.Errorf("failed to scan sentiment row: %w", err)
		}
		stats.Sentiments[sentiment] = count
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sentiments: %w", err)
	}

	return &stats, nil
}

// GetCategoryStats retrieves category distribution statistics.
func (r *HistoryRepository) GetCategoryStats(ctx context.Context) ([]*CategoryStat, error) {
	var stats []*CategoryStat

	query := `
		SELECT
			category,
			COUNT(*) as count,
			COALESCE(AVG(confidence), 0) as avg_confidence
		FROM triage_history
		GROUP BY category
		ORDER BY count DESC
	`

	if err := r.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to get category stats: %w", err)
	}

	return stats, nil
}

// GetCategoryStatsByName retrieves statistics for a single category.
func (r *HistoryRepository) GetCategoryStatsByName(ctx context.Context, category string) (*CategoryStat, error) {
	var stat CategoryStat

	query := `
		SELECT
			category,
			COUNT(*) as count,
			COALESCE(AVG(confidence), 0) as avg_confidence
		FROM triage_history
		WHERE category = ?
		GROUP BY category
	`

	err := r.db.GetContext(ctx, &stat, query, category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &CategoryStat{Category: category}, nil
		}
		return nil, fmt.Errorf("failed to get category stats: %w", err)
	}

	return &stat, nil
}
