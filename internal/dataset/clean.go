package dataset

import (
	"fmt"
	"math"

	apperrors "filmstats/internal/errors"
)

// DropIncomplete returns only the complete rows, preserving order.
// Applying it to an already-complete dataset returns an equal dataset.
func DropIncomplete(d Dataset) Dataset {
	rows := make([]Row, 0, len(d.rows))
	for _, r := range d.rows {
		if r.Complete() {
			rows = append(rows, r)
		}
	}
	return New(rows)
}

// DropDuplicates removes exact-duplicate rows, keeping the first occurrence
// of each distinct row and preserving order of first occurrence. Rows are
// compared by field-wise value equality; run it after DropIncomplete so NaN
// never participates in the comparison.
func DropDuplicates(d Dataset) Dataset {
	seen := make(map[Row]struct{}, len(d.rows))
	rows := make([]Row, 0, len(d.rows))
	for _, r := range d.rows {
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		rows = append(rows, r)
	}
	return New(rows)
}

// CoerceInt reinterprets one numeric column as integer-valued. Every value
// must already be integral; a missing, infinite, or fractional value is a
// precondition violation reported with the first offending row. Values are
// normalized so later formatting renders them without a decimal point.
func CoerceInt(d Dataset, col NumericColumn) (Dataset, error) {
	rows := make([]Row, len(d.rows))
	copy(rows, d.rows)
	for i := range rows {
		v := col.Get(rows[i])
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return Dataset{}, apperrors.NewPreconditionError(
				fmt.Sprintf("column %s is not integer-valued: row %d (%s) holds %v",
					col.Name, i+1, rows[i].MovieTitle, v)).
				WithContext("column", col.Name).
				WithContext("row", i+1)
		}
		col.set(&rows[i], math.Trunc(v))
	}
	return New(rows), nil
}
