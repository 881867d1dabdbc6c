// Command server runs the pipeline once at startup and serves the cleaned
// dataset, the findings feed, and the analytics views over a read-only JSON
// API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sebastian-gm/hr-data-insights/internal/analytics"
	"github.com/sebastian-gm/hr-data-insights/internal/config"
	"github.com/sebastian-gm/hr-data-insights/internal/dataprocessing"
	"github.com/sebastian-gm/hr-data-insights/internal/infrastructure"
	"github.com/sebastian-gm/hr-data-insights/internal/ingest"
	transport "github.com/sebastian-gm/hr-data-insights/internal/transport/http"
	"github.com/sebastian-gm/hr-data-insights/internal/validation"
	"github.com/sebastian-gm/hr-data-insights/pkg/contracts"
)

func main() {
	configFile := flag.String("config", "config.yaml", "path to configuration file")
	inFile := flag.String("in", "", "input dataset (.csv or .xlsx), overrides config")
	port := flag.Int("port", 0, "listen port, overrides config")
	flag.Parse()

	cfg, err := config.LoadFrom(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *inFile != "" {
		cfg.Paths.InputFile = *inFile
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	asOf, err := cfg.ResolveAsOf(time.Now())
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "Loading dataset",
		slog.String("version", contracts.Version),
		slog.String("input", cfg.Paths.InputFile),
		slog.String("as_of", asOf.Format("2006-01-02")))

	if err := validation.NewFileValidator(logger).ValidateInputFile(cfg.Paths.InputFile); err != nil {
		return err
	}

	raws, err := ingest.ReadFile(cfg.Paths.InputFile)
	if err != nil {
		return err
	}

	pipeline := dataprocessing.NewPipeline(logger, dataprocessing.PipelineConfig{
		AgeCeiling:  cfg.Pipeline.AgeCeiling,
		Parallelism: cfg.Pipeline.Parallelism,
	})
	result, err := pipeline.Run(ctx, raws, asOf)
	if err != nil {
		return err
	}

	analyzer := analytics.NewAnalyzer(logger, analytics.Config{MinimumAge: cfg.Analytics.MinimumAge})
	report := analyzer.Generate(result.Records, asOf)

	metrics := transport.NewMetrics()
	metrics.ObserveRun(result)

	router := transport.NewRouter(transport.RouterOptions{
		Config:  cfg.Server,
		Result:  result,
		Report:  report,
		Version: contracts.Version,
		Logger:  logger,
		Metrics: metrics,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "HTTP server listening",
			slog.String("addr", server.Addr),
			slog.String("run_id", result.RunID),
			slog.Int("records", len(result.Records)))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
