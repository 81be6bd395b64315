// Package pipeline orchestrates the full triage flow: normalize the raw
// complaint, score it with the learned model, run the sentiment heuristic,
// derive priority, and attach the resolution playbook.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonesrussell/telecom-triage/internal/domain"
	"github.com/jonesrussell/telecom-triage/internal/logging"
	"github.com/jonesrussell/telecom-triage/internal/model"
	"github.com/jonesrussell/telecom-triage/internal/playbook"
	"github.com/jonesrussell/telecom-triage/internal/sentiment"
	"github.com/jonesrussell/telecom-triage/internal/telemetry"
	"github.com/jonesrussell/telecom-triage/internal/textnorm"
)

// ErrEmptyComplaint is returned when the complaint text is blank.
var ErrEmptyComplaint = fmt.Errorf("complaint text is empty")

// Pipeline runs triage over trained model artifacts. It is safe for
// concurrent use: the artifacts are read-only after construction.
type Pipeline struct {
	artifacts *model.Artifacts
	telemetry *telemetry.Provider
	logger    logging.Logger
}

// New wires a pipeline from trained artifacts. telemetry may be nil.
func New(artifacts *model.Artifacts, tp *telemetry.Provider, logger logging.Logger) *Pipeline {
	return &Pipeline{
		artifacts: artifacts,
		telemetry: tp,
		logger:    logger,
	}
}

// ModelVersion reports the version stamp of the loaded artifacts.
func (p *Pipeline) ModelVersion() string {
	return p.artifacts.Version()
}

// Triage analyzes one complaint. Whitespace-only text is rejected with
// ErrEmptyComplaint; everything else produces a result, falling back to
// neutral sentiment and the generic playbook when nothing matches.
func (p *Pipeline) Triage(ctx context.Context, rawText string) (*domain.TriageResult, error) {
	start := time.Now()

	if strings.TrimSpace(rawText) == "" {
		return nil, ErrEmptyComplaint
	}

	cleaned := textnorm.Clean(rawText)

	category, scores := p.artifacts.Classifier.Predict(p.artifacts.Vectorizer.Transform(cleaned))
	mood := sentiment.Analyze(rawText)
	priority := playbook.Priority(mood.Label)

	result := &domain.TriageResult{
		RawText:          rawText,
		CleanedText:      cleaned,
		Category:         category,
		CategoryScores:   scores,
		Sentiment:        mood,
		Priority:         priority,
		Playbook:         playbook.Select(category),
		ModelVersion:     p.artifacts.Version(),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		TriagedAt:        time.Now().UTC(),
	}

	if p.telemetry != nil {
		p.telemetry.RecordTriage(ctx, category, mood.Label, priority, time.Since(start))
	}

	p.logger.Debug("complaint triaged",
		logging.String("category", category),
		logging.String("sentiment", mood.Label),
		logging.String("priority", priority),
		logging.Int64("duration_ms", result.ProcessingTimeMs))

	return result, nil
}
