package ingest

import (
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sebastian-gm/hr-data-insights/internal/errors"
	"github.com/sebastian-gm/hr-data-insights/pkg/contracts/domain"
)

// ReadXLSX loads the raw HR dataset from an Excel workbook. The reader scans
// the sheets in order and uses the first one whose header row carries the
// required columns; HR exports sometimes hide the data behind a cover sheet.
func ReadXLSX(path string) ([]domain.RawRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewIngestionError("cannot open input workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	var lastErr error
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}
		headers, err := canonicalizeHeaders(rows[0])
		if err != nil {
			lastErr = err
			continue
		}

		records := make([]domain.RawRecord, 0, len(rows)-1)
		for _, row := range rows[1:] {
			if emptyRow(row) {
				continue
			}
			records = append(records, rowToRecord(headers, row))
		}
		return records, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, errors.NewIngestionError("workbook has no usable sheet", nil).
		WithContext("path", path)
}

// ReadFile dispatches on the file extension: .xlsx opens as a workbook,
// anything else reads as CSV.
func ReadFile(path string) ([]domain.RawRecord, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path)
	}
	return ReadCSV(path)
}

// emptyRow reports whether every cell in the row is blank. Excel ranges
// often trail off into rows of empty cells; those are not records.
func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
