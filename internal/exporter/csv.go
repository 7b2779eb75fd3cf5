package exporter

import (
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"

	"filmstats/internal/dataset"
	apperrors "filmstats/internal/errors"
)

// Options configures CSV writing behavior.
type Options struct {
	Delimiter rune
	BOM       bool // prefix the file with a UTF-8 BOM for Excel compatibility
}

// CSVWriter writes cleaned datasets as CSV files.
type CSVWriter struct {
	opts   Options
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance.
func NewCSVWriter(opts Options, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	return &CSVWriter{opts: opts, logger: logger}
}

// WriteDataset writes the dataset to path with a header row followed by one
// row per record, fields in schema order and no index column.
func (w *CSVWriter) WriteDataset(ctx context.Context, path string, ds dataset.Dataset) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.NewStorageError("create output directory", err).WithContext("path", dir)
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("create output file", err).WithContext("path", path)
	}
	defer file.Close()

	if w.opts.BOM {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return apperrors.NewStorageError("write BOM", err).WithContext("path", path)
		}
	}

	writer := csv.NewWriter(file)
	writer.Comma = w.opts.Delimiter

	if err := writer.Write(dataset.Columns()); err != nil {
		return apperrors.NewStorageError("write header", err).WithContext("path", path)
	}

	numeric := dataset.NumericColumns()
	record := make([]string, 0, len(numeric)+1)
	for i, row := range ds.Rows() {
		if err := ctx.Err(); err != nil {
			return err
		}
		record = record[:0]
		record = append(record, row.MovieTitle)
		for _, col := range numeric {
			record = append(record, formatNumeric(col.Get(row)))
		}
		if err := writer.Write(record); err != nil {
			return apperrors.NewStorageError("write record", err).
				WithContext("path", path).
				WithContext("row", i)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewStorageError("flush output file", err).WithContext("path", path)
	}
	if err := file.Close(); err != nil {
		return apperrors.NewStorageError("close output file", err).WithContext("path", path)
	}

	w.logger.InfoContext(ctx, "wrote cleaned dataset",
		slog.String("path", path),
		slog.Int("rows", ds.Len()))
	return nil
}
