// Package bootstrap wires the triage service components together.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/telecom-triage/internal/api"
	"github.com/jonesrussell/telecom-triage/internal/config"
	"github.com/jonesrussell/telecom-triage/internal/database"
	"github.com/jonesrussell/telecom-triage/internal/dataset"
	"github.com/jonesrussell/telecom-triage/internal/logging"
	"github.com/jonesrussell/telecom-triage/internal/model"
	"github.com/jonesrussell/telecom-triage/internal/pipeline"
	"github.com/jonesrussell/telecom-triage/internal/processor"
	"github.com/jonesrussell/telecom-triage/internal/rules"
	"github.com/jonesrussell/telecom-triage/internal/server"
	"github.com/jonesrussell/telecom-triage/internal/telemetry"
)

// HTTPComponents holds all components needed for the HTTP server.
type HTTPComponents struct {
	DB        *sqlx.DB
	Handler   *api.Handler
	Server    *server.Server
	Telemetry *telemetry.Provider
}

// NewHTTPComponents creates all components for the HTTP server. Missing
// model artifacts are a startup error: the service never serves without a
// trained model.
func NewHTTPComponents(ctx context.Context, cfg *config.Config, logger logging.Logger) (*HTTPComponents, error) {
	artifacts, err := model.Load(cfg.Model.ArtifactsDir)
	if err != nil {
		if errors.Is(err, model.ErrArtifactsMissing) {
			return nil, fmt.Errorf("load artifacts from %s: %w", cfg.Model.ArtifactsDir, err)
		}
		return nil, fmt.Errorf("load artifacts: %w", err)
	}
	logger.Info("model artifacts loaded",
		logging.String("model_version", artifacts.Version()),
		logging.Int("vocabulary", artifacts.Vectorizer.Features()),
		logging.Strings("classes", artifacts.Classifier.Classes))

	db, err := database.Open(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	tp := telemetry.NewProvider()

	triagePipeline := pipeline.New(artifacts, tp, logger)
	batchProcessor := processor.NewBatchProcessor(triagePipeline, cfg.Service.Concurrency, tp, logger)
	logger.Info("batch processor initialized",
		logging.Int("concurrency", batchProcessor.Concurrency()))

	rulesEngine := rules.NewEngine(rules.DefaultRules(), logger)
	store := dataset.NewStore(cfg.Dataset.EnrichedPath, logger)
	historyRepo := database.NewHistoryRepository(db)

	if complaints, loadErr := store.Load(); loadErr != nil {
		logger.Warn("dataset not readable at startup",
			logging.String("path", store.Path()), logging.Error(loadErr))
	} else {
		tp.SetDatasetRows(len(complaints))
		logger.Info("dataset loaded",
			logging.String("path", store.Path()),
			logging.Int("rows", len(complaints)))
	}

	handler := api.NewHandler(
		triagePipeline,
		batchProcessor,
		rulesEngine,
		store,
		historyRepo,
		tp,
		cfg.Service.Name,
		cfg.Service.Version,
		logger,
	)

	srv := server.New(&server.Config{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Port:           cfg.Service.Port,
		Debug:          cfg.Service.Debug,
		ReadTimeout:    cfg.Service.ReadTimeout,
		WriteTimeout:   cfg.Service.WriteTimeout,
	}, logger, func(router *gin.Engine) {
		api.SetupRoutes(router, handler, tp)
	})

	return &HTTPComponents{
		DB:        db,
		Handler:   handler,
		Server:    srv,
		Telemetry: tp,
	}, nil
}

// Close releases component resources.
func (c *HTTPComponents) Close() error {
	return c.DB.Close()
}
