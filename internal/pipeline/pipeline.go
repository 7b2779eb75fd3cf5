// Package pipeline chains the dataset stages into a single batch run.
//
// A run starts from a raw source file and flows through filtering, cleaning,
// outlier removal, descriptive statistics, regression and export. Stages are
// executed in order and the first failure aborts the run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"filmstats/internal/dataset"
	"filmstats/internal/regression"
	"filmstats/internal/stats"
)

// State carries the intermediate and final products of a run. Each stage
// reads the fields of the stages before it and fills in its own.
type State struct {
	// Records holds the raw rows between load and projection. The
	// projection stage consumes them.
	Records []dataset.Record

	// Data is the typed dataset from projection onward.
	Data dataset.Dataset

	Summaries     []stats.Summary
	Correlations  stats.Correlations
	OutlierReport stats.RemovalReport
	Fit           *regression.Fit
	VIFs          []regression.VIF
}

// RowCount reports how many rows the state currently holds.
func (s *State) RowCount() int {
	if s.Records != nil {
		return len(s.Records)
	}
	return s.Data.Len()
}

// Stage is one step of a run.
type Stage interface {
	// ID returns the stable identifier used in logs and error wrapping.
	ID() string

	// Name returns the human-readable stage name.
	Name() string

	// Run executes the stage against the shared state.
	Run(ctx context.Context, state *State) error
}

// Pipeline executes stages in order with fail-fast semantics.
type Pipeline struct {
	stages []Stage
	logger *slog.Logger
}

// New creates a pipeline over the given stages.
func New(logger *slog.Logger, stages ...Stage) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{stages: stages, logger: logger}
}

// Run executes every stage against state. The first stage error aborts the
// run and is returned wrapped with the stage ID.
func (p *Pipeline) Run(ctx context.Context, state *State) error {
	start := time.Now()
	p.logger.InfoContext(ctx, "pipeline_start",
		slog.Int("stages", len(p.stages)))

	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return err
		}

		stageStart := time.Now()
		p.logger.InfoContext(ctx, "stage_start",
			slog.String("stage", stage.ID()))

		if err := stage.Run(ctx, state); err != nil {
			p.logger.ErrorContext(ctx, "stage_error",
				slog.String("stage", stage.ID()),
				slog.String("error", err.Error()))
			return fmt.Errorf("%s: %w", stage.ID(), err)
		}

		p.logger.InfoContext(ctx, "stage_complete",
			slog.String("stage", stage.ID()),
			slog.Duration("duration", time.Since(stageStart)),
			slog.Int("rows", state.RowCount()))
	}

	p.logger.InfoContext(ctx, "pipeline_complete",
		slog.Duration("duration", time.Since(start)),
		slog.Int("rows", state.RowCount()))
	return nil
}
