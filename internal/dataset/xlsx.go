package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/xuri/excelize/v2"

	apperrors "filmstats/internal/errors"
)

// loadXLSX reads the configured worksheet of a workbook through the same
// record-building path as CSV input.
func (l *Loader) loadXLSX(ctx context.Context, path string) ([]Record, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("input file %s", path), err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("open workbook %s", path), err)
	}
	defer f.Close()

	sheet := l.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("read worksheet %q", sheet), err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError(fmt.Sprintf("worksheet %q is empty", sheet), nil)
	}

	idx, err := resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows)-1)
	for i, fields := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := buildRecord(fields, idx, i+2)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	l.logger.InfoContext(ctx, "loaded source table",
		slog.String("path", path),
		slog.String("format", "xlsx"),
		slog.String("sheet", sheet),
		slog.Int("rows", len(records)))
	return records, nil
}
