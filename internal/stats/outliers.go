package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"filmstats/internal/dataset"
)

// ColumnStats is the location and scale used to z-score one column.
type ColumnStats struct {
	Column string
	Mean   float64
	StdDev float64
}

// Degenerate reports whether the column cannot produce z-scores: zero
// variance, or too few rows for a sample deviation.
func (c ColumnStats) Degenerate() bool {
	return c.StdDev == 0 || math.IsNaN(c.StdDev)
}

// RemovalReport describes one outlier-removal pass.
type RemovalReport struct {
	// Stats holds the per-column mean and deviation in column order,
	// computed over the pre-removal dataset.
	Stats []ColumnStats
	// Removed is the number of rows dropped.
	Removed int
	// Degenerate names the columns that could not flag any row.
	Degenerate []string
}

// RemoveOutliers drops every row whose z-score reaches threshold in at
// least one numeric column. Means and sample standard deviations are
// computed once, over the input dataset, never iteratively.
//
// The test is one-sided: only a large positive deviation removes a row,
// an equally extreme low value is retained. Degenerate columns flag no
// rows; they are reported rather than treated as division by zero.
func RemoveOutliers(ds dataset.Dataset, threshold float64) (dataset.Dataset, RemovalReport) {
	cols := dataset.NumericColumns()
	report := RemovalReport{Stats: make([]ColumnStats, 0, len(cols))}

	type scorer struct {
		col  dataset.NumericColumn
		mean float64
		std  float64
	}
	scorers := make([]scorer, 0, len(cols))

	for _, col := range cols {
		values := ds.Column(col)
		cs := ColumnStats{Column: col.Name, Mean: math.NaN(), StdDev: math.NaN()}
		switch {
		case len(values) > 1:
			cs.Mean, cs.StdDev = stat.MeanStdDev(values, nil)
		case len(values) == 1:
			cs.Mean = values[0]
		}
		report.Stats = append(report.Stats, cs)

		if cs.Degenerate() {
			report.Degenerate = append(report.Degenerate, col.Name)
			continue
		}
		scorers = append(scorers, scorer{col: col, mean: cs.Mean, std: cs.StdDev})
	}

	kept := make([]dataset.Row, 0, ds.Len())
	for _, r := range ds.Rows() {
		removed := false
		for _, sc := range scorers {
			if (sc.col.Get(r)-sc.mean)/sc.std >= threshold {
				removed = true
				break
			}
		}
		if removed {
			report.Removed++
			continue
		}
		kept = append(kept, r)
	}
	return dataset.New(kept), report
}
