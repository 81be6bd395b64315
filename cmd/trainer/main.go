// Command trainer enriches the complaint dataset and trains the
// triage model, writing the artifacts the HTTP service loads at boot.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jonesrussell/telecom-triage/internal/config"
	"github.com/jonesrussell/telecom-triage/internal/dataset"
	"github.com/jonesrussell/telecom-triage/internal/logging"
	"github.com/jonesrussell/telecom-triage/internal/rules"
	"github.com/jonesrussell/telecom-triage/internal/trainer"
)

func main() {
	var (
		configPath        = flag.String("config", "", "path to config file (defaults to CONFIG_PATH or config.yml)")
		backfillSentiment = flag.Bool("backfill-sentiment", false, "fill missing sentiment labels in the enriched dataset and exit")
	)
	flag.Parse()

	if err := run(*configPath, *backfillSentiment); err != nil {
		fmt.Fprintf(os.Stderr, "trainer: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, backfillSentiment bool) error {
	if configPath == "" {
		configPath = config.GetConfigPath("config.yml")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.NewFromLoggingConfig(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if backfillSentiment {
		return runBackfill(cfg, logger)
	}

	return runTraining(cfg, logger)
}

func runBackfill(cfg *config.Config, logger logging.Logger) error {
	store := dataset.NewStore(cfg.Dataset.EnrichedPath, logger)

	updated, err := store.BackfillSentiment()
	if err != nil {
		return fmt.Errorf("backfill sentiment: %w", err)
	}

	logger.Info("sentiment backfill complete",
		logging.String("dataset", cfg.Dataset.EnrichedPath),
		logging.Int("rows_updated", updated))

	return nil
}

func runTraining(cfg *config.Config, logger logging.Logger) error {
	engine := rules.NewEngine(rules.DefaultRules(), logger)

	raw := dataset.NewStore(cfg.Dataset.RawPath, logger)
	enriched := dataset.NewStore(cfg.Dataset.EnrichedPath, logger)

	tr := trainer.New(engine, trainer.Options{
		MaxFeatures:  cfg.Model.MaxFeatures,
		TestFraction: cfg.Model.TestFraction,
		SplitSeed:    cfg.Model.SplitSeed,
		Iterations:   cfg.Model.Iterations,
		LearningRate: cfg.Model.LearningRate,
		ArtifactsDir: cfg.Model.ArtifactsDir,
	}, logger)

	report, err := tr.Run(context.Background(), raw, enriched)
	if err != nil {
		return fmt.Errorf("run training: %w", err)
	}

	logger.Info("training complete",
		logging.String("model_version", report.ModelVersion),
		logging.Int("rows", report.Rows),
		logging.Int("train_rows", report.TrainRows),
		logging.Int("test_rows", report.TestRows),
		logging.Float64("test_accuracy", report.TestAccuracy),
		logging.Int("vocabulary", report.Vocabulary),
		logging.Strings("classes", report.Classes),
		logging.Duration("duration", report.Duration))

	return nil
}
