package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"filmstats/internal/config"
	"filmstats/internal/infrastructure"
	"filmstats/internal/pipeline"
	"filmstats/internal/regression"
	"filmstats/internal/stats"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (defaults to filmstats.yml when present)")
	input := flag.String("input", "", "source table to clean (.csv or .xlsx)")
	output := flag.String("output", "", "path for the cleaned CSV")
	country := flag.String("country", "", "production country to keep")
	delimiter := flag.String("delimiter", "", "output delimiter, comma or semicolon")
	threshold := flag.Float64("threshold", 0, "z-score removal threshold")
	sheet := flag.String("sheet", "", "worksheet name for .xlsx input (defaults to the first sheet)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Flags take precedence over file and environment values.
	if *input != "" {
		cfg.Input = *input
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *country != "" {
		cfg.Filter.Country = *country
	}
	if *delimiter != "" {
		cfg.Export.Delimiter = *delimiter
	}
	if *threshold > 0 {
		cfg.Outliers.ZThreshold = *threshold
	}
	if *sheet != "" {
		cfg.Loader.Sheet = *sheet
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logging", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.EnsureRunID(context.Background())
	logger.InfoContext(ctx, "starting run",
		"input", cfg.Input,
		"output", cfg.Output,
		"country", cfg.Filter.Country)

	state := &pipeline.State{}
	p := pipeline.New(logger, pipeline.DefaultStages(cfg, logger)...)
	if err := p.Run(ctx, state); err != nil {
		logger.ErrorContext(ctx, "run failed", "error", err)
		os.Exit(1)
	}

	printReport(state, cfg.Output)
}

func printReport(state *pipeline.State, outputPath string) {
	fmt.Println("\n=== DESCRIPTIVE STATISTICS ===")
	stats.RenderSummaries(os.Stdout, state.Summaries)

	fmt.Println("\n=== CORRELATIONS ===")
	stats.RenderCorrelations(os.Stdout, state.Correlations)

	if len(state.OutlierReport.Degenerate) > 0 {
		fmt.Printf("\ncolumns without spread, nothing removable: %s\n",
			strings.Join(state.OutlierReport.Degenerate, ", "))
	}
	fmt.Printf("outliers removed: %d\n", state.OutlierReport.Removed)

	fmt.Println("\n=== REGRESSION gross ~ duration + budget + critics + director + cast ===")
	regression.RenderFit(os.Stdout, state.Fit)

	fmt.Println("\n=== VARIANCE INFLATION FACTORS ===")
	regression.RenderVIFs(os.Stdout, state.VIFs)

	fmt.Printf("\ncleaned dataset written to %s, %d rows\n", outputPath, state.Data.Len())
}
