package exporter

import (
	"math"
	"strconv"
)

// formatNumeric renders a value for CSV output. Integral values drop the
// decimal point, so a coerced gross of 760505847.0 exports as 760505847.
func formatNumeric(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
