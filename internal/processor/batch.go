// Package processor runs triage over batches of complaints with a
// bounded worker pool.
package processor

import (
	"context"
	"sync"
	"time"

	"github.com/jonesrussell/telecom-triage/internal/domain"
	"github.com/jonesrussell/telecom-triage/internal/logging"
	"github.com/jonesrussell/telecom-triage/internal/pipeline"
	"github.com/jonesrussell/telecom-triage/internal/telemetry"
)

const defaultConcurrency = 10

// Result pairs an input complaint with its triage outcome. Exactly one of
// Triage and Err is set.
type Result struct {
	Index  int
	Text   string
	Triage *domain.TriageResult
	Err    error
}

// BatchProcessor triages multiple complaints in parallel using a worker
// pool. Results come back in input order.
type BatchProcessor struct {
	pipeline    *pipeline.Pipeline
	concurrency int
	telemetry   *telemetry.Provider
	logger      logging.Logger
}

// NewBatchProcessor creates a batch processor. Non-positive concurrency
// falls back to the default pool size. telemetry may be nil.
func NewBatchProcessor(p *pipeline.Pipeline, concurrency int, tp *telemetry.Provider, logger logging.Logger) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &BatchProcessor{
		pipeline:    p,
		concurrency: concurrency,
		telemetry:   tp,
		logger:      logger,
	}
}

// Concurrency returns the worker pool size.
func (b *BatchProcessor) Concurrency() int {
	return b.concurrency
}

// Process triages every complaint in texts. Per-item failures land in the
// matching Result; Process itself only fails on context cancellation.
func (b *BatchProcessor) Process(ctx context.Context, texts []string) ([]Result, error) {
	if len(texts) == 0 {
		return []Result{}, nil
	}

	start := time.Now()

	b.logger.Info("starting batch triage",
		logging.Int("batch_size", len(texts)),
		logging.Int("concurrency", b.concurrency))

	if b.telemetry != nil {
		b.telemetry.RecordBatchSize(len(texts))
		b.telemetry.SetActiveWorkers(b.concurrency)
		defer b.telemetry.SetActiveWorkers(0)
	}

	jobs := make(chan int, len(texts))
	results := make([]Result, len(texts))

	var wg sync.WaitGroup
	for w := 0; w < b.concurrency; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			b.worker(ctx, workerID, texts, jobs, results)
		}(w)
	}

	for i := range texts {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	successCount := 0
	for _, r := range results {
		if r.Err == nil {
			successCount++
		}
	}

	duration := time.Since(start)
	b.logger.Info("batch triage complete",
		logging.Int("total", len(texts)),
		logging.Int("success", successCount),
		logging.Int("errors", len(texts)-successCount),
		logging.Int64("duration_ms", duration.Milliseconds()))

	return results, nil
}

func (b *BatchProcessor) worker(ctx context.Context, id int, texts []string, jobs <-chan int, results []Result) {
	for idx := range jobs {
		select {
		case <-ctx.Done():
			b.logger.Warn("batch worker stopping, context canceled",
				logging.Int("worker_id", id))
			return
		default:
		}

		triage, err := b.pipeline.Triage(ctx, texts[idx])
		results[idx] = Result{
			Index:  idx,
			Text:   texts[idx],
			Triage: triage,
			Err:    err,
		}

		if err != nil {
			b.logger.Debug("batch item failed",
				logging.Int("index", idx),
				logging.Error(err))
		}
	}
}
