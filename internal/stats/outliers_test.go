package stats

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmstats/internal/dataset"
)

func grossStats(t *testing.T, report RemovalReport) ColumnStats {
	t.Helper()
	for _, cs := range report.Stats {
		if cs.Column == "gross" {
			return cs
		}
	}
	t.Fatal("no stats reported for gross")
	return ColumnStats{}
}

func titles(ds dataset.Dataset) []string {
	out := make([]string, 0, ds.Len())
	for _, r := range ds.Rows() {
		out = append(out, r.MovieTitle)
	}
	return out
}

func titledGross(pairs map[string]float64, order []string) dataset.Dataset {
	rows := make([]dataset.Row, 0, len(order))
	for _, title := range order {
		rows = append(rows, dataset.Row{
			MovieTitle:             title,
			Gross:                  pairs[title],
			Duration:               100,
			Budget:                 1e6,
			NumCriticForReviews:    10,
			DirectorFacebookLikes:  10,
			CastTotalFacebookLikes: 10,
		})
	}
	return dataset.New(rows)
}

// A value under three deviations above the mean survives, even when it
// visually dominates the column.
func TestRemoveOutliers_ModerateExtremumRetained(t *testing.T) {
	ds := grossDataset(1, 1, 1, 1, 100)

	out, report := RemoveOutliers(ds, 3)

	assert.Equal(t, 5, out.Len())
	assert.Equal(t, 0, report.Removed)

	cs := grossStats(t, report)
	assert.InDelta(t, 20.8, cs.Mean, 1e-9)
	assert.InDelta(t, 44.27415, cs.StdDev, 1e-4)
	// The largest attainable score for five observations is (n-1)/sqrt(n).
	assert.InDelta(t, 1.7888, (100-cs.Mean)/cs.StdDev, 1e-4)
}

func TestRemoveOutliers_ExtremeHighRemoved(t *testing.T) {
	order := make([]string, 0, 150)
	pairs := make(map[string]float64, 150)
	for i := 0; i < 149; i++ {
		title := filler(i)
		order = append(order, title)
		pairs[title] = 100
	}
	order = append(order, "extreme")
	pairs["extreme"] = 10000
	ds := titledGross(pairs, order)

	out, report := RemoveOutliers(ds, 3)

	assert.Equal(t, 149, out.Len())
	assert.Equal(t, 1, report.Removed)
	assert.NotContains(t, titles(out), "extreme")

	cs := grossStats(t, report)
	assert.Greater(t, (10000-cs.Mean)/cs.StdDev, 10.0)
}

func filler(i int) string {
	return fmt.Sprintf("movie-%03d", i)
}

// Scores are one-sided. A value equally far below the mean is never removed.
func TestRemoveOutliers_ExtremeLowRetained(t *testing.T) {
	order := make([]string, 0, 150)
	pairs := make(map[string]float64, 150)
	for i := 0; i < 149; i++ {
		title := filler(i)
		order = append(order, title)
		pairs[title] = 100
	}
	order = append(order, "crater")
	pairs["crater"] = -10000
	ds := titledGross(pairs, order)

	out, report := RemoveOutliers(ds, 3)

	assert.Equal(t, 150, out.Len())
	assert.Equal(t, 0, report.Removed)

	cs := grossStats(t, report)
	assert.Less(t, (-10000-cs.Mean)/cs.StdDev, -10.0)
}

// Statistics come from a single pass over the pre-removal column. A value
// that would only cross the threshold against recomputed statistics stays.
func TestRemoveOutliers_SinglePass(t *testing.T) {
	order := make([]string, 0, 151)
	pairs := make(map[string]float64, 151)
	for i := 0; i < 149; i++ {
		title := filler(i)
		order = append(order, title)
		pairs[title] = 100
	}
	order = append(order, "extreme", "mid")
	pairs["extreme"] = 10000
	pairs["mid"] = 2500

	out, report := RemoveOutliers(titledGross(pairs, order), 3)

	assert.Equal(t, 150, out.Len())
	assert.Equal(t, 1, report.Removed)
	assert.NotContains(t, titles(out), "extreme")
	assert.Contains(t, titles(out), "mid")

	// Against the full column "mid" scores about 2.8. Without the single
	// pass it would score over 12 once "extreme" is gone.
	cs := grossStats(t, report)
	assert.InDelta(t, 2.80, (2500-cs.Mean)/cs.StdDev, 0.01)
}

func TestRemoveOutliers_DegenerateColumns(t *testing.T) {
	ds := grossDataset(7, 7, 7, 7)

	out, report := RemoveOutliers(ds, 3)

	assert.Equal(t, 4, out.Len())
	assert.Equal(t, 0, report.Removed)
	// Every column is constant here, so all six are degenerate.
	assert.Len(t, report.Degenerate, 6)
	assert.Contains(t, report.Degenerate, "gross")

	cs := grossStats(t, report)
	assert.True(t, cs.Degenerate())
	assert.InDelta(t, 7.0, cs.Mean, 1e-12)
	assert.InDelta(t, 0.0, cs.StdDev, 1e-12)
}

func TestRemoveOutliers_AnyColumnTriggers(t *testing.T) {
	rows := make([]dataset.Row, 0, 20)
	for i := 0; i < 20; i++ {
		budget := 2e7
		title := filler(i)
		if i == 12 {
			budget = 9e8
			title = "big-budget"
		}
		rows = append(rows, dataset.Row{
			MovieTitle:             title,
			Gross:                  1000 + float64(i),
			Duration:               90 + float64(i),
			Budget:                 budget,
			NumCriticForReviews:    50 + float64(i),
			DirectorFacebookLikes:  10 + float64(i),
			CastTotalFacebookLikes: 200 + float64(i),
		})
	}

	out, report := RemoveOutliers(dataset.New(rows), 3)

	assert.Equal(t, 19, out.Len())
	assert.Equal(t, 1, report.Removed)
	assert.NotContains(t, titles(out), "big-budget")
	assert.Empty(t, report.Degenerate)
}

func TestRemoveOutliers_Empty(t *testing.T) {
	out, report := RemoveOutliers(dataset.New(nil), 3)

	assert.Equal(t, 0, out.Len())
	assert.Equal(t, 0, report.Removed)
	require.Len(t, report.Stats, 6)
	for _, cs := range report.Stats {
		assert.True(t, math.IsNaN(cs.Mean))
		assert.True(t, cs.Degenerate())
	}
}
