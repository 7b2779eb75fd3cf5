package regression

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

func formatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// RenderFit writes the fit headline and a per-term coefficient table.
func RenderFit(w io.Writer, fit *Fit) {
	fmt.Fprintf(w, "observations: %d  rank: %d  residual df: %d\n", fit.N, fit.Rank, fit.DFResid)
	fmt.Fprintf(w, "r-squared: %s  adjusted r-squared: %s\n\n", formatValue(fit.R2), formatValue(fit.AdjR2))

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"term", "coefficient", "std err", "t", "P>|t|"})
	for _, term := range fit.Terms {
		table.Append([]string{
			term.Name,
			formatValue(term.Coefficient),
			formatValue(term.StdErr),
			formatValue(term.TStat),
			formatValue(term.PValue),
		})
	}
	table.Render()
}

// RenderVIFs writes one row per predictor with its inflation factor.
func RenderVIFs(w io.Writer, vifs []VIF) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"predictor", "vif", "r2"})
	for _, v := range vifs {
		table.Append([]string{v.Predictor, formatValue(v.Value), formatValue(v.RSquared)})
	}
	table.Render()
}
