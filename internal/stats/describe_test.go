package stats

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmstats/internal/dataset"
)

// grossDataset builds rows whose gross column holds values and whose other
// numeric columns hold constants.
func grossDataset(values ...float64) dataset.Dataset {
	rows := make([]dataset.Row, len(values))
	for i, v := range values {
		rows[i] = dataset.Row{
			MovieTitle:             "movie",
			Gross:                  v,
			Duration:               100,
			Budget:                 1e6,
			NumCriticForReviews:    10,
			DirectorFacebookLikes:  10,
			CastTotalFacebookLikes: 10,
		}
	}
	return dataset.New(rows)
}

func TestDescribe_KnownColumn(t *testing.T) {
	ds := grossDataset(2, 4, 4, 4, 5, 5, 7, 9)

	summaries, err := Describe(context.Background(), ds)
	require.NoError(t, err)
	require.Len(t, summaries, 6)

	// Output order matches the schema order.
	assert.Equal(t, "gross", summaries[0].Column)
	assert.Equal(t, "duration", summaries[1].Column)

	g := summaries[0]
	assert.Equal(t, 8, g.Count)
	assert.InDelta(t, 5.0, g.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(32.0/7.0), g.StdDev, 1e-12)
	assert.InDelta(t, 2.0, g.Min, 1e-12)
	assert.InDelta(t, 4.0, g.Q1, 1e-12)
	assert.InDelta(t, 4.5, g.Median, 1e-12)
	assert.InDelta(t, 5.5, g.Q3, 1e-12)
	assert.InDelta(t, 9.0, g.Max, 1e-12)
}

func TestDescribe_Empty(t *testing.T) {
	summaries, err := Describe(context.Background(), dataset.New(nil))
	require.NoError(t, err)
	require.Len(t, summaries, 6)

	for _, s := range summaries {
		assert.Equal(t, 0, s.Count)
		assert.True(t, math.IsNaN(s.Mean), "mean of %s", s.Column)
		assert.True(t, math.IsNaN(s.StdDev))
		assert.True(t, math.IsNaN(s.Min))
		assert.True(t, math.IsNaN(s.Median))
		assert.True(t, math.IsNaN(s.Max))
	}
}

func TestDescribe_SingleRow(t *testing.T) {
	summaries, err := Describe(context.Background(), grossDataset(42))
	require.NoError(t, err)

	g := summaries[0]
	assert.Equal(t, 1, g.Count)
	assert.InDelta(t, 42.0, g.Mean, 1e-12)
	assert.InDelta(t, 42.0, g.Min, 1e-12)
	assert.InDelta(t, 42.0, g.Q1, 1e-12)
	assert.InDelta(t, 42.0, g.Median, 1e-12)
	assert.InDelta(t, 42.0, g.Max, 1e-12)
	// Sample deviation is undefined for one observation.
	assert.True(t, math.IsNaN(g.StdDev))
}

func TestDescribe_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Describe(ctx, grossDataset(1, 2, 3))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		q      float64
		want   float64
	}{
		{name: "first quartile interpolates", sorted: []float64{1, 2, 3, 4}, q: 0.25, want: 1.75},
		{name: "median of even count", sorted: []float64{1, 2, 3, 4}, q: 0.5, want: 2.5},
		{name: "median of odd count", sorted: []float64{1, 2, 3}, q: 0.5, want: 2},
		{name: "zero is min", sorted: []float64{1, 2, 3, 4}, q: 0, want: 1},
		{name: "one is max", sorted: []float64{1, 2, 3, 4}, q: 1, want: 4},
		{name: "single value", sorted: []float64{10}, q: 0.75, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, quantile(tt.sorted, tt.q), 1e-12)
		})
	}
}

func TestQuantile_Empty(t *testing.T) {
	assert.True(t, math.IsNaN(quantile(nil, 0.5)))
}
