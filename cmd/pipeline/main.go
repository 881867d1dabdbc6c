// Command pipeline runs the HR data cleaning pipeline once: it reads the
// raw dataset, normalizes and validates every record, derives age and
// tenure, and writes the canonical table and the findings feed as CSV.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sebastian-gm/hr-data-insights/internal/analytics"
	"github.com/sebastian-gm/hr-data-insights/internal/config"
	"github.com/sebastian-gm/hr-data-insights/internal/dataprocessing"
	"github.com/sebastian-gm/hr-data-insights/internal/exporter"
	"github.com/sebastian-gm/hr-data-insights/internal/infrastructure"
	"github.com/sebastian-gm/hr-data-insights/internal/ingest"
	"github.com/sebastian-gm/hr-data-insights/internal/validation"
	"github.com/sebastian-gm/hr-data-insights/pkg/contracts"
)

func main() {
	configFile := flag.String("config", "config.yaml", "path to configuration file")
	inFile := flag.String("in", "", "input dataset (.csv or .xlsx), overrides config")
	outFile := flag.String("out", "", "output path for the cleaned CSV, overrides config")
	findingsFile := flag.String("findings", "", "output path for the findings CSV, overrides config")
	reportFile := flag.String("report", "", "optional output path for the analytics report JSON")
	asOf := flag.String("as-of", "", "reference date (YYYY-MM-DD) for age and tenure, defaults to today")
	parallelism := flag.Int("parallelism", 0, "worker count for normalization, overrides config")
	logLevel := flag.String("log-level", "", "log level (debug, info, warn, error), overrides config")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetVersionString())
		return
	}

	cfg, err := config.LoadFrom(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Flags win over config file and environment.
	if *inFile != "" {
		cfg.Paths.InputFile = *inFile
	}
	if *outFile != "" {
		cfg.Paths.OutputFile = *outFile
	}
	if *findingsFile != "" {
		cfg.Paths.FindingsFile = *findingsFile
	}
	if *asOf != "" {
		cfg.Pipeline.AsOf = *asOf
	}
	if *parallelism > 0 {
		cfg.Pipeline.Parallelism = *parallelism
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *reportFile, logger); err != nil {
		logger.Error("Pipeline run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, reportFile string, logger *slog.Logger) error {
	start := time.Now()

	asOf, err := cfg.ResolveAsOf(time.Now())
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "Starting HR data pipeline",
		slog.String("version", contracts.Version),
		slog.String("input", cfg.Paths.InputFile),
		slog.String("as_of", asOf.Format("2006-01-02")))

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputFile(cfg.Paths.InputFile); err != nil {
		return err
	}
	if err := validator.ValidateOutputDirectory(cfg.Paths.OutputFile); err != nil {
		return err
	}
	if err := validator.ValidateOutputDirectory(cfg.Paths.FindingsFile); err != nil {
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

	writer := exporter.NewCSVWriter(logger)
	if err := writer.WriteEmployees(cfg.Paths.OutputFile, result.Records); err != nil {
		return err
	}
	if err := writer.WriteFindings(cfg.Paths.FindingsFile, result.Findings); err != nil {
		return err
	}

	analyzer := analytics.NewAnalyzer(logger, analytics.Config{MinimumAge: cfg.Analytics.MinimumAge})
	report := analyzer.Generate(result.Records, asOf)
	if reportFile != "" {
		if err := writeReport(reportFile, report); err != nil {
			return err
		}
	}

	logger.InfoContext(ctx, "Pipeline run completed",
		slog.String("run_id", result.RunID),
		slog.Int("records", len(result.Records)),
		slog.Int("findings", len(result.Findings)),
		slog.Int("departments", len(report.DepartmentTurnover)),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

func writeReport(path string, report *analytics.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
