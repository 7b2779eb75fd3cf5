package stats

import (
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// formatStat renders a statistic for table output: integral values have no
// decimals, everything else two, NaN stays visible as NaN.
func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// RenderSummaries writes the descriptive statistics table to w.
func RenderSummaries(w io.Writer, summaries []Summary) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"})
	for _, s := range summaries {
		table.Append([]string{
			s.Column,
			strconv.Itoa(s.Count),
			formatStat(s.Mean),
			formatStat(s.StdDev),
			formatStat(s.Min),
			formatStat(s.Q1),
			formatStat(s.Median),
			formatStat(s.Q3),
			formatStat(s.Max),
		})
	}
	table.Render()
}

// RenderCorrelations writes the correlation matrix to w.
func RenderCorrelations(w io.Writer, c Correlations) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeader(append([]string{""}, c.Columns...))
	for i, name := range c.Columns {
		row := make([]string, 0, len(c.Columns)+1)
		row = append(row, name)
		for j := range c.Columns {
			v := c.At(i, j)
			if math.IsNaN(v) {
				row = append(row, "NaN")
			} else {
				row = append(row, strconv.FormatFloat(v, 'f', 3, 64))
			}
		}
		table.Append(row)
	}
	table.Render()
}
