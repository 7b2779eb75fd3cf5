package stats

import (
	"gonum.org/v1/gonum/stat"

	"filmstats/internal/dataset"
)

// Correlations is a symmetric Pearson correlation matrix over the numeric
// columns.
type Correlations struct {
	Columns []string
	R       [][]float64
}

// At returns the correlation between columns i and j.
func (c Correlations) At(i, j int) float64 {
	return c.R[i][j]
}

// CorrelationMatrix computes pairwise Pearson correlations between the
// numeric columns of ds. A pair involving a zero-variance or empty column
// is NaN, including its diagonal entry.
func CorrelationMatrix(ds dataset.Dataset) Correlations {
	cols := dataset.NumericColumns()
	vectors := make([][]float64, len(cols))
	names := make([]string, len(cols))
	for i, col := range cols {
		vectors[i] = ds.Column(col)
		names[i] = col.Name
	}

	r := make([][]float64, len(cols))
	for i := range r {
		r[i] = make([]float64, len(cols))
	}
	for i := range cols {
		for j := i; j < len(cols); j++ {
			v := stat.Correlation(vectors[i], vectors[j], nil)
			r[i][j] = v
			r[j][i] = v
		}
	}
	return Correlations{Columns: names, R: r}
}
