// Package trainer builds model artifacts and the enriched dataset from a
// raw complaint export. Training is offline; the HTTP service only ever
// loads what the trainer wrote.
package trainer

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jonesrussell/telecom-triage/internal/dataset"
	"github.com/jonesrussell/telecom-triage/internal/domain"
	"github.com/jonesrussell/telecom-triage/internal/logging"
	"github.com/jonesrussell/telecom-triage/internal/model"
	"github.com/jonesrussell/telecom-triage/internal/rules"
	"github.com/jonesrussell/telecom-triage/internal/sentiment"
	"github.com/jonesrussell/telecom-triage/internal/textnorm"
)

// Options configures one training run.
type Options struct {
	MaxFeatures  int
	TestFraction float64
	SplitSeed    int64
	Iterations   int
	LearningRate float64
	ArtifactsDir string
}

// Report summarizes a completed training run.
type Report struct {
	ModelVersion string        `json:"model_version"`
	Rows         int           `json:"rows"`
	TrainRows    int           `json:"train_rows"`
	TestRows     int           `json:"test_rows"`
	TestAccuracy float64       `json:"test_accuracy"`
	Vocabulary   int           `json:"vocabulary"`
	Classes      []string      `json:"classes"`
	Duration     time.Duration `json:"duration"`
}

// Trainer labels raw complaints with the rule catalog, fits the TF-IDF
// vectorizer and logistic classifier, and publishes both the artifacts
// and the enriched dataset.
type Trainer struct {
	engine *rules.Engine
	opts   Options
	logger logging.Logger
}

// New creates a trainer using the given rule engine for labeling.
func New(engine *rules.Engine, opts Options, logger logging.Logger) *Trainer {
	return &Trainer{engine: engine, opts: opts, logger: logger}
}

// Run executes the full training job: enrich raw rows, split, fit,
// evaluate, then persist artifacts and the enriched CSV. The enriched
// store may equal the raw store to enrich a dataset in place.
func (t *Trainer) Run(ctx context.Context, raw, enriched *dataset.Store) (*Report, error) {
	start := time.Now()

	complaints, err := raw.Load()
	if err != nil {
		return nil, fmt.Errorf("load raw dataset: %w", err)
	}
	if len(complaints) == 0 {
		return nil, fmt.Errorf("raw dataset %s is empty", raw.Path())
	}

	t.logger.Info("training started",
		logging.String("raw_path", raw.Path()),
		logging.Int("rows", len(complaints)))

	enrichedRows := t.enrich(complaints)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	docs := make([]string, len(enrichedRows))
	labels := make([]string, len(enrichedRows))
	for i, c := range enrichedRows {
		docs[i] = c.CleanedText
		labels[i] = c.Category
	}

	trainIdx, testIdx := split(len(docs), t.opts.TestFraction, t.opts.SplitSeed)

	trainDocs := make([]string, len(trainIdx))
	trainLabels := make([]string, len(trainIdx))
	for i, idx := range trainIdx {
		trainDocs[i] = docs[idx]
		trainLabels[i] = labels[idx]
	}

	vec := model.NewVectorizer(t.opts.MaxFeatures)
	if err := vec.Fit(trainDocs); err != nil {
		return nil, fmt.Errorf("fit vectorizer: %w", err)
	}

	clf := model.NewClassifier(t.opts.LearningRate, t.opts.Iterations)
	clf.Version = time.Now().UTC().Format("20060102T150405Z")
	if err := clf.Fit(vec.TransformAll(trainDocs), trainLabels); err != nil {
		return nil, fmt.Errorf("fit classifier: %w", err)
	}

	testDocs := make([]string, len(testIdx))
	testLabels := make([]string, len(testIdx))
	for i, idx := range testIdx {
		testDocs[i] = docs[idx]
		testLabels[i] = labels[idx]
	}
	accuracy := clf.Accuracy(vec.TransformAll(testDocs), testLabels)

	arts := &model.Artifacts{Vectorizer: vec, Classifier: clf}
	if err := arts.Save(t.opts.ArtifactsDir); err != nil {
		return nil, fmt.Errorf("save artifacts: %w", err)
	}

	if err := enriched.Replace(enrichedRows); err != nil {
		return nil, fmt.Errorf("write enriched dataset: %w", err)
	}

	report := &Report{
		ModelVersion: clf.Version,
		Rows:         len(enrichedRows),
		TrainRows:    len(trainIdx),
		TestRows:     len(testIdx),
		TestAccuracy: accuracy,
		Vocabulary:   vec.Features(),
		Classes:      clf.Classes,
		Duration:     time.Since(start),
	}

	t.logger.Info("training complete",
		logging.String("model_version", report.ModelVersion),
		logging.Int("train_rows", report.TrainRows),
		logging.Int("test_rows", report.TestRows),
		logging.Float64("test_accuracy", report.TestAccuracy),
		logging.Int("vocabulary", report.Vocabulary),
		logging.Duration("duration", report.Duration))

	return report, nil
}

// enrich derives the training columns for every raw row. Existing
// sentiment values survive so a re-run never flips historical labels.
func (t *Trainer) enrich(complaints []domain.Complaint) []domain.Complaint {
	out := make([]domain.Complaint, len(complaints))
	for i, c := range complaints {
		c.Category = t.engine.Label(c.RawText)
		c.StatusGroup = dataset.StatusGroupFor(c.RawStatus)
		c.CleanedText = textnorm.Clean(c.RawText)
		if c.Sentiment == "" {
			c.Sentiment = sentiment.Analyze(c.RawText).Label
		}
		out[i] = c
	}
	return out
}

// split shuffles row indices with a fixed seed and carves off the test
// fraction. At least one row always stays in the training set.
func split(n int, testFraction float64, seed int64) (train, test []int) {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(i, j int) {
		idx[i], idx[j] = idx[j], idx[i]
	})

	testSize := int(float64(n) * testFraction)
	if testSize >= n {
		testSize = n - 1
	}
	if testSize < 0 {
		testSize = 0
	}

	return idx[testSize:], idx[:testSize]
}
