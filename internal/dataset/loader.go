package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "filmstats/internal/errors"
)

// Loader reads a source table into typed records. Column names are resolved
// against the header exactly once; every later access is by field.
type Loader struct {
	sheet  string
	logger *slog.Logger
}

// NewLoader creates a loader. sheet names the XLSX worksheet to read and is
// ignored for CSV input; empty selects the first sheet. A nil logger falls
// back to slog.Default().
func NewLoader(sheet string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{sheet: sheet, logger: logger}
}

// Load reads the table at path, choosing the format by file extension:
// .xlsx is read as a workbook, anything else as CSV.
func (l *Loader) Load(ctx context.Context, path string) ([]Record, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return l.loadXLSX(ctx, path)
	}
	return l.loadCSV(ctx, path)
}

// columnIndex holds the resolved header position of every required column.
type columnIndex struct {
	country  int
	title    int
	gross    int
	duration int
	budget   int
	critics  int
	director int
	cast     int
}

// resolveColumns maps the required source columns onto header positions.
// Missing columns are a configuration error naming every absent column.
func resolveColumns(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\uFEFF")
		}
		name = strings.TrimSpace(name)
		if _, exists := pos[name]; !exists {
			pos[name] = i
		}
	}

	var missing []string
	lookup := func(name string) int {
		i, ok := pos[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}

	idx := columnIndex{
		country:  lookup(ColCountry),
		title:    lookup(ColMovieTitle),
		gross:    lookup(ColGross),
		duration: lookup(ColDuration),
		budget:   lookup(ColBudget),
		critics:  lookup(ColNumCriticForReviews),
		director: lookup(ColDirectorFacebookLikes),
		cast:     lookup(ColCastTotalFacebookLikes),
	}
	if len(missing) > 0 {
		return columnIndex{}, apperrors.NewConfigError(
			fmt.Sprintf("source table is missing required columns: %s",
				strings.Join(missing, ", ")), nil).
			WithContext("missing", missing)
	}
	return idx, nil
}

// cellAt returns the trimmed cell at position i, or "" when the row is
// shorter. XLSX readers drop trailing empty cells, so short rows are
// ordinary missing values, not errors.
func cellAt(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

// parseNumeric interprets one numeric cell. An empty cell is a missing
// value (NaN); anything else must parse as a number.
func parseNumeric(fields []string, i int, name string, rowNum int) (float64, error) {
	raw := cellAt(fields, i)
	if raw == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.NewParsingError(
			fmt.Sprintf("row %d: column %s: %q is not a number", rowNum, name, raw), err).
			WithContext("row", rowNum).
			WithContext("column", name)
	}
	return v, nil
}

// buildRecord converts one source row into a typed record. rowNum is the
// 1-based position in the file including the header, for error reporting.
func buildRecord(fields []string, idx columnIndex, rowNum int) (Record, error) {
	rec := Record{Country: cellAt(fields, idx.country)}
	rec.MovieTitle = cellAt(fields, idx.title)

	numeric := []struct {
		pos  int
		name string
		dst  *float64
	}{
		{idx.gross, ColGross, &rec.Gross},
		{idx.duration, ColDuration, &rec.Duration},
		{idx.budget, ColBudget, &rec.Budget},
		{idx.critics, ColNumCriticForReviews, &rec.NumCriticForReviews},
		{idx.director, ColDirectorFacebookLikes, &rec.DirectorFacebookLikes},
		{idx.cast, ColCastTotalFacebookLikes, &rec.CastTotalFacebookLikes},
	}
	for _, c := range numeric {
		v, err := parseNumeric(fields, c.pos, c.name, rowNum)
		if err != nil {
			return Record{}, err
		}
		*c.dst = v
	}
	return rec, nil
}

func (l *Loader) loadCSV(ctx context.Context, path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("input file %s", path), err)
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("open input file %s", path), err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, apperrors.NewParsingError(fmt.Sprintf("input file %s is empty", path), nil)
		}
		return nil, apperrors.NewParsingError("read header row", err)
	}
	idx, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	rowNum := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.ParseError already carries the line number.
			return nil, apperrors.NewParsingError("read input row", err)
		}
		rowNum++
		rec, err := buildRecord(fields, idx, rowNum)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	l.logger.InfoContext(ctx, "loaded source table",
		slog.String("path", path),
		slog.String("format", "csv"),
		slog.Int("rows", len(records)),
		slog.Int("source_columns", len(header)))
	return records, nil
}
