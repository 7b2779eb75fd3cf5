// Package dataset defines the typed movie table and the pipeline's
// row-level transformations: country filtering, projection onto the
// retained columns, missing-value and duplicate removal, and integer
// coercion.
//
// The working table is a value type: every transformation returns a new
// Dataset and leaves its input untouched.
package dataset

import "math"

// Column names of the working dataset, in projection and export order.
const (
	ColMovieTitle             = "movie_title"
	ColGross                  = "gross"
	ColDuration               = "duration"
	ColBudget                 = "budget"
	ColNumCriticForReviews    = "num_critic_for_reviews"
	ColDirectorFacebookLikes  = "director_facebook_likes"
	ColCastTotalFacebookLikes = "cast_total_facebook_likes"

	// ColCountry exists only in the source schema; the filter consumes it
	// and projection drops it.
	ColCountry = "country"
)

// Columns returns the retained column names in fixed order.
func Columns() []string {
	return []string{
		ColMovieTitle,
		ColGross,
		ColDuration,
		ColBudget,
		ColNumCriticForReviews,
		ColDirectorFacebookLikes,
		ColCastTotalFacebookLikes,
	}
}

// SourceColumns returns every column a source table must provide: the
// retained columns plus country.
func SourceColumns() []string {
	return append(Columns(), ColCountry)
}

// Row is one movie in the working dataset. Numeric fields hold NaN while
// the source value is missing; after cleaning every numeric field is an
// exact integer stored as float64.
type Row struct {
	MovieTitle             string
	Gross                  float64
	Duration               float64
	Budget                 float64
	NumCriticForReviews    float64
	DirectorFacebookLikes  float64
	CastTotalFacebookLikes float64
}

// Complete reports whether every field has a concrete value.
func (r Row) Complete() bool {
	return r.MovieTitle != "" &&
		!math.IsNaN(r.Gross) &&
		!math.IsNaN(r.Duration) &&
		!math.IsNaN(r.Budget) &&
		!math.IsNaN(r.NumCriticForReviews) &&
		!math.IsNaN(r.DirectorFacebookLikes) &&
		!math.IsNaN(r.CastTotalFacebookLikes)
}

// Record is one source row before projection: the retained fields plus the
// country consumed by the filter stage.
type Record struct {
	Country string
	Row
}

// NumericColumn is a typed accessor for one numeric column, letting
// statistics and regression iterate columns without string lookups.
type NumericColumn struct {
	Name string
	Get  func(Row) float64
	set  func(*Row, float64)
}

// NumericColumns returns accessors for the six numeric columns in schema
// order.
func NumericColumns() []NumericColumn {
	return []NumericColumn{
		{
			Name: ColGross,
			Get:  func(r Row) float64 { return r.Gross },
			set:  func(r *Row, v float64) { r.Gross = v },
		},
		{
			Name: ColDuration,
			Get:  func(r Row) float64 { return r.Duration },
			set:  func(r *Row, v float64) { r.Duration = v },
		},
		{
			Name: ColBudget,
			Get:  func(r Row) float64 { return r.Budget },
			set:  func(r *Row, v float64) { r.Budget = v },
		},
		{
			Name: ColNumCriticForReviews,
			Get:  func(r Row) float64 { return r.NumCriticForReviews },
			set:  func(r *Row, v float64) { r.NumCriticForReviews = v },
		},
		{
			Name: ColDirectorFacebookLikes,
			Get:  func(r Row) float64 { return r.DirectorFacebookLikes },
			set:  func(r *Row, v float64) { r.DirectorFacebookLikes = v },
		},
		{
			Name: ColCastTotalFacebookLikes,
			Get:  func(r Row) float64 { return r.CastTotalFacebookLikes },
			set:  func(r *Row, v float64) { r.CastTotalFacebookLikes = v },
		},
	}
}

// Target returns the accessor for the regression target column, gross.
func Target() NumericColumn {
	return NumericColumns()[0]
}

// Predictors returns accessors for the five regression predictors: the
// numeric columns minus gross.
func Predictors() []NumericColumn {
	return NumericColumns()[1:]
}

// Dataset is an ordered collection of rows with the fixed 7-column schema.
type Dataset struct {
	rows []Row
}

// New creates a dataset over rows. The slice is owned by the dataset
// afterwards.
func New(rows []Row) Dataset {
	return Dataset{rows: rows}
}

// Len returns the number of rows.
func (d Dataset) Len() int {
	return len(d.rows)
}

// Rows returns the underlying rows. Callers must treat the slice as
// read-only; transformations always build fresh slices.
func (d Dataset) Rows() []Row {
	return d.rows
}

// Columns returns the dataset's column names in order.
func (d Dataset) Columns() []string {
	return Columns()
}

// Column extracts one numeric column as a fresh slice in row order.
func (d Dataset) Column(col NumericColumn) []float64 {
	out := make([]float64, len(d.rows))
	for i, r := range d.rows {
		out[i] = col.Get(r)
	}
	return out
}
