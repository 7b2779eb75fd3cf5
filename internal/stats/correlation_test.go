package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmstats/internal/dataset"
)

func TestCorrelationMatrix(t *testing.T) {
	// duration drives gross linearly up and budget linearly down, critics
	// is orthogonal to duration, and director is constant.
	rows := []dataset.Row{
		{MovieTitle: "a", Gross: 2, Duration: 1, Budget: 97, NumCriticForReviews: 1, DirectorFacebookLikes: 5, CastTotalFacebookLikes: 1},
		{MovieTitle: "b", Gross: -2, Duration: -1, Budget: 103, NumCriticForReviews: 1, DirectorFacebookLikes: 5, CastTotalFacebookLikes: 2},
		{MovieTitle: "c", Gross: 2, Duration: 1, Budget: 97, NumCriticForReviews: -1, DirectorFacebookLikes: 5, CastTotalFacebookLikes: 3},
		{MovieTitle: "d", Gross: -2, Duration: -1, Budget: 103, NumCriticForReviews: -1, DirectorFacebookLikes: 5, CastTotalFacebookLikes: 4},
	}

	c := CorrelationMatrix(dataset.New(rows))

	require.Equal(t, dataset.Columns()[1:], c.Columns)

	gross, duration, budget, critics, director := 0, 1, 2, 3, 4

	assert.InDelta(t, 1.0, c.At(gross, duration), 1e-12)
	assert.InDelta(t, -1.0, c.At(budget, duration), 1e-12)
	assert.InDelta(t, 0.0, c.At(critics, duration), 1e-12)

	// Symmetric with a unit diagonal on the varying columns.
	assert.InDelta(t, c.At(duration, budget), c.At(budget, duration), 1e-12)
	assert.InDelta(t, 1.0, c.At(gross, gross), 1e-12)

	// A constant column has no defined correlation with anything.
	assert.True(t, math.IsNaN(c.At(director, gross)))
	assert.True(t, math.IsNaN(c.At(gross, director)))
}

func TestCorrelationMatrix_Empty(t *testing.T) {
	c := CorrelationMatrix(dataset.New(nil))

	require.Len(t, c.R, 6)
	for i := range c.R {
		for j := range c.R[i] {
			assert.True(t, math.IsNaN(c.At(i, j)))
		}
	}
}
