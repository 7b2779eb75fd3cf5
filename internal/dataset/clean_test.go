package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "filmstats/internal/errors"
)

func TestDropIncomplete(t *testing.T) {
	nan := math.NaN()
	d := New([]Row{
		makeRow("Keep A", 1, 2, 3, 4, 5, 6),
		makeRow("", 1, 2, 3, 4, 5, 6),
		makeRow("Drop B", nan, 2, 3, 4, 5, 6),
		makeRow("Keep C", 7, 8, 9, 10, 11, 12),
		makeRow("Drop D", 1, 2, nan, 4, 5, 6),
	})

	got := DropIncomplete(d)

	require.Equal(t, 2, got.Len())
	assert.Equal(t, "Keep A", got.Rows()[0].MovieTitle)
	assert.Equal(t, "Keep C", got.Rows()[1].MovieTitle)

	// Input dataset is unchanged.
	assert.Equal(t, 5, d.Len())
}

func TestDropIncomplete_Idempotent(t *testing.T) {
	d := New([]Row{
		makeRow("A", 1, 2, 3, 4, 5, 6),
		makeRow("B", math.NaN(), 2, 3, 4, 5, 6),
		makeRow("C", 7, 8, 9, 10, 11, 12),
	})

	once := DropIncomplete(d)
	twice := DropIncomplete(once)

	assert.Equal(t, once.Rows(), twice.Rows())
}

func TestDropDuplicates(t *testing.T) {
	a := makeRow("A", 1, 2, 3, 4, 5, 6)
	b := makeRow("B", 7, 8, 9, 10, 11, 12)
	// Same title as A but different values: not a duplicate.
	almostA := makeRow("A", 1, 2, 3, 4, 5, 7)

	d := New([]Row{a, b, a, almostA, b, a})

	got := DropDuplicates(d)

	// N=6 rows with D=3 repeats beyond first occurrences leaves N-D=3.
	require.Equal(t, 3, got.Len())
	assert.Equal(t, []Row{a, b, almostA}, got.Rows())
}

func TestDropDuplicates_Idempotent(t *testing.T) {
	a := makeRow("A", 1, 2, 3, 4, 5, 6)
	b := makeRow("B", 7, 8, 9, 10, 11, 12)
	d := New([]Row{a, b, a})

	once := DropDuplicates(d)
	twice := DropDuplicates(once)

	assert.Equal(t, once.Rows(), twice.Rows())
}

func TestDropDuplicates_AllDistinct(t *testing.T) {
	d := New([]Row{
		makeRow("A", 1, 2, 3, 4, 5, 6),
		makeRow("B", 1, 2, 3, 4, 5, 6.5),
		makeRow("C", 1, 2, 3, 4, 5, 7),
	})

	got := DropDuplicates(d)
	assert.Equal(t, d.Rows(), got.Rows())
}

func TestCoerceInt(t *testing.T) {
	t.Run("integral column is normalized", func(t *testing.T) {
		d := New([]Row{
			makeRow("A", 5000000.0, 90, 1, 1, 1, 1),
			makeRow("B", 0, 91, 1, 1, 1, 1),
			makeRow("C", 76000000.0, 92, 1, 1, 1, 1),
		})

		got, err := CoerceInt(d, Target())
		require.NoError(t, err)
		assert.Equal(t, []float64{5000000, 0, 76000000}, got.Column(Target()))

		// The original dataset is untouched.
		assert.Equal(t, 3, d.Len())
	})

	t.Run("fractional value fails", func(t *testing.T) {
		d := New([]Row{
			makeRow("A", 100, 90, 1, 1, 1, 1),
			makeRow("B", 100.5, 91, 1, 1, 1, 1),
		})

		_, err := CoerceInt(d, Target())
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypePrecondition))
		assert.Contains(t, err.Error(), "gross")
		assert.Contains(t, err.Error(), "row 2")
		assert.Contains(t, err.Error(), "100.5")
	})

	t.Run("missing value fails", func(t *testing.T) {
		d := New([]Row{makeRow("A", math.NaN(), 90, 1, 1, 1, 1)})

		_, err := CoerceInt(d, Target())
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypePrecondition))
	})

	t.Run("infinite value fails", func(t *testing.T) {
		d := New([]Row{makeRow("A", math.Inf(1), 90, 1, 1, 1, 1)})

		_, err := CoerceInt(d, Target())
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypePrecondition))
	})

	t.Run("other columns untouched", func(t *testing.T) {
		d := New([]Row{makeRow("A", 100, 90.5, 1, 1, 1, 1)})

		got, err := CoerceInt(d, Target())
		require.NoError(t, err)
		assert.Equal(t, []float64{90.5}, got.Column(Predictors()[0]))
	})
}
