// Command httpd runs the complaint triage HTTP service.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonesrussell/telecom-triage/internal/bootstrap"
	"github.com/jonesrussell/telecom-triage/internal/config"
	"github.com/jonesrussell/telecom-triage/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "httpd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.GetConfigPath("config.yml"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.NewFromLoggingConfig(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting triage service",
		logging.String("service", cfg.Service.Name),
		logging.String("version", cfg.Service.Version),
		logging.Int("port", cfg.Service.Port),
		logging.Bool("debug", cfg.Service.Debug))

	ctx := context.Background()

	components, err := bootstrap.NewHTTPComponents(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := components.Close(); closeErr != nil {
			logger.Error("failed to close components", logging.Error(closeErr))
		}
	}()

	return components.Server.RunWithGracefulShutdown(ctx)
}
