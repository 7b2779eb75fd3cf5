// Package stats computes the descriptive statistics and the z-score
// outlier pass of the filmstats pipeline. Computations are pure: inputs
// are never mutated and results carry everything the caller needs to log
// or render.
package stats

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"filmstats/internal/dataset"
)

// Summary holds the descriptive statistics of one numeric column.
type Summary struct {
	Column string
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Describe summarizes every numeric column of ds. Columns are independent,
// so they are computed concurrently; the result order always matches
// dataset.NumericColumns(). An empty dataset yields count 0 and NaN
// statistics rather than an error.
func Describe(ctx context.Context, ds dataset.Dataset) ([]Summary, error) {
	cols := dataset.NumericColumns()
	out := make([]Summary, len(cols))

	g, ctx := errgroup.WithContext(ctx)
	for i, col := range cols {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = summarize(col.Name, ds.Column(col))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// summarize computes one column's statistics. The sample standard
// deviation needs at least two values and is NaN below that.
func summarize(name string, values []float64) Summary {
	nan := math.NaN()
	s := Summary{
		Column: name,
		Count:  len(values),
		Mean:   nan,
		StdDev: nan,
		Min:    nan,
		Q1:     nan,
		Median: nan,
		Q3:     nan,
		Max:    nan,
	}
	if len(values) == 0 {
		return s
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		s.StdDev = stat.StdDev(values, nil)
	}
	s.Q1 = quantile(sorted, 0.25)
	s.Median = quantile(sorted, 0.5)
	s.Q3 = quantile(sorted, 0.75)
	return s
}

// quantile interpolates linearly between order statistics at rank
// q*(n-1). sorted must be ascending.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	pos := q * float64(n-1)
	lo := int(pos)
	frac := pos - float64(lo)
	if lo+1 >= n {
		return sorted[lo]
	}
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}
