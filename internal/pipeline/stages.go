package pipeline

import (
	"context"
	"log/slog"

	"filmstats/internal/config"
	"filmstats/internal/dataset"
	"filmstats/internal/exporter"
	"filmstats/internal/regression"
	"filmstats/internal/stats"
)

// DefaultStages assembles the standard eight-stage run from cfg.
func DefaultStages(cfg *config.Config, logger *slog.Logger) []Stage {
	loader := dataset.NewLoader(cfg.Loader.Sheet, logger)
	writer := exporter.NewCSVWriter(exporter.Options{
		Delimiter: cfg.DelimiterRune(),
		BOM:       cfg.Export.BOM,
	}, logger)

	return []Stage{
		NewLoadStage(loader, cfg.Input),
		NewFilterStage(cfg.Filter.Country),
		NewProjectStage(),
		NewCleanStage(logger),
		NewOutlierStage(cfg.Outliers.ZThreshold, logger),
		NewDescribeStage(),
		NewRegressionStage(),
		NewExportStage(writer, cfg.Output),
	}
}

// Stage identifiers, stable across runs for logs and error wrapping.
const (
	StageIDLoad       = "load"
	StageIDFilter     = "filter"
	StageIDProject    = "project"
	StageIDClean      = "clean"
	StageIDOutliers   = "outliers"
	StageIDDescribe   = "describe"
	StageIDRegression = "regression"
	StageIDExport     = "export"
)

// LoadStage reads the raw source table into records.
type LoadStage struct {
	loader *dataset.Loader
	path   string
}

// NewLoadStage creates the load stage for the given source path.
func NewLoadStage(loader *dataset.Loader, path string) *LoadStage {
	return &LoadStage{loader: loader, path: path}
}

func (s *LoadStage) ID() string   { return StageIDLoad }
func (s *LoadStage) Name() string { return "Load source table" }

func (s *LoadStage) Run(ctx context.Context, state *State) error {
	records, err := s.loader.Load(ctx, s.path)
	if err != nil {
		return err
	}
	state.Records = records
	return nil
}

// FilterStage keeps only records from one production country.
type FilterStage struct {
	country string
}

// NewFilterStage creates the country filter stage.
func NewFilterStage(country string) *FilterStage {
	return &FilterStage{country: country}
}

func (s *FilterStage) ID() string   { return StageIDFilter }
func (s *FilterStage) Name() string { return "Filter by country" }

func (s *FilterStage) Run(ctx context.Context, state *State) error {
	state.Records = dataset.Filter(state.Records, dataset.CountryEquals(s.country))
	return nil
}

// ProjectStage narrows records to the seven analysis columns.
type ProjectStage struct{}

// NewProjectStage creates the column projection stage.
func NewProjectStage() *ProjectStage {
	return &ProjectStage{}
}

func (s *ProjectStage) ID() string   { return StageIDProject }
func (s *ProjectStage) Name() string { return "Select analysis columns" }

func (s *ProjectStage) Run(ctx context.Context, state *State) error {
	state.Data = dataset.Project(state.Records)
	state.Records = nil
	return nil
}

// CleanStage drops incomplete rows, drops duplicate rows and coerces the
// gross column to integer values.
type CleanStage struct {
	logger *slog.Logger
}

// NewCleanStage creates the cleaning stage.
func NewCleanStage(logger *slog.Logger) *CleanStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &CleanStage{logger: logger}
}

func (s *CleanStage) ID() string   { return StageIDClean }
func (s *CleanStage) Name() string { return "Clean dataset" }

func (s *CleanStage) Run(ctx context.Context, state *State) error {
	before := state.Data.Len()
	ds := dataset.DropIncomplete(state.Data)
	incomplete := before - ds.Len()

	withDupes := ds.Len()
	ds = dataset.DropDuplicates(ds)
	duplicates := withDupes - ds.Len()

	ds, err := dataset.CoerceInt(ds, dataset.Target())
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "dataset_cleaned",
		slog.Int("incomplete_dropped", incomplete),
		slog.Int("duplicates_dropped", duplicates),
		slog.Int("rows", ds.Len()))

	state.Data = ds
	return nil
}

// OutlierStage removes rows scoring at or above the threshold in any
// column.
type OutlierStage struct {
	threshold float64
	logger    *slog.Logger
}

// NewOutlierStage creates the outlier removal stage.
func NewOutlierStage(threshold float64, logger *slog.Logger) *OutlierStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &OutlierStage{threshold: threshold, logger: logger}
}

func (s *OutlierStage) ID() string   { return StageIDOutliers }
func (s *OutlierStage) Name() string { return "Remove outliers" }

func (s *OutlierStage) Run(ctx context.Context, state *State) error {
	ds, report := stats.RemoveOutliers(state.Data, s.threshold)

	for _, column := range report.Degenerate {
		s.logger.WarnContext(ctx, "column_has_no_spread",
			slog.String("column", column))
	}
	s.logger.InfoContext(ctx, "outliers_removed",
		slog.Int("removed", report.Removed),
		slog.Int("rows", ds.Len()),
		slog.Float64("threshold", s.threshold))

	state.Data = ds
	state.OutlierReport = report
	return nil
}

// DescribeStage computes per-column summaries and the correlation matrix.
type DescribeStage struct{}

// NewDescribeStage creates the descriptive statistics stage.
func NewDescribeStage() *DescribeStage {
	return &DescribeStage{}
}

func (s *DescribeStage) ID() string   { return StageIDDescribe }
func (s *DescribeStage) Name() string { return "Describe dataset" }

func (s *DescribeStage) Run(ctx context.Context, state *State) error {
	summaries, err := stats.Describe(ctx, state.Data)
	if err != nil {
		return err
	}
	state.Summaries = summaries
	state.Correlations = stats.CorrelationMatrix(state.Data)
	return nil
}

// RegressionStage fits gross against the five predictors and computes
// variance inflation factors.
type RegressionStage struct{}

// NewRegressionStage creates the regression stage.
func NewRegressionStage() *RegressionStage {
	return &RegressionStage{}
}

func (s *RegressionStage) ID() string   { return StageIDRegression }
func (s *RegressionStage) Name() string { return "Fit regression" }

func (s *RegressionStage) Run(ctx context.Context, state *State) error {
	y := state.Data.Column(dataset.Target())

	predictors := dataset.Predictors()
	cols := make([][]float64, len(predictors))
	names := make([]string, len(predictors))
	for i, p := range predictors {
		cols[i] = state.Data.Column(p)
		names[i] = p.Name
	}

	fit, err := regression.OLS(y, cols, names)
	if err != nil {
		return err
	}
	state.Fit = fit

	vifs, err := regression.VIFs(cols, names)
	if err != nil {
		return err
	}
	state.VIFs = vifs
	return nil
}

// ExportStage writes the cleaned dataset to the output path.
type ExportStage struct {
	writer *exporter.CSVWriter
	path   string
}

// NewExportStage creates the export stage.
func NewExportStage(writer *exporter.CSVWriter, path string) *ExportStage {
	return &ExportStage{writer: writer, path: path}
}

func (s *ExportStage) ID() string   { return StageIDExport }
func (s *ExportStage) Name() string { return "Export cleaned dataset" }

func (s *ExportStage) Run(ctx context.Context, state *State) error {
	return s.writer.WriteDataset(ctx, s.path, state.Data)
}
