package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/sebastian-gm/hr-data-insights/internal/errors"
	"github.com/sebastian-gm/hr-data-insights/pkg/contracts/domain"
)

// ReadCSV loads the raw HR dataset from a CSV file. The first row is the
// header; every later row becomes one RawRecord keyed by the canonical
// column names. Structural problems (unreadable file, missing required
// column) abort with an ingestion error; cell-level problems do not, they
// are the pipeline's job to find.
func ReadCSV(path string) ([]domain.RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIngestionError("cannot open input dataset", err).
			WithContext("path", path)
	}
	defer file.Close()

	records, err := ReadCSVFrom(file)
	if err != nil {
		var appErr *errors.AppError
		if e, ok := err.(*errors.AppError); ok {
			appErr = e
		} else {
			appErr = errors.NewIngestionError("cannot read input dataset", err)
		}
		return nil, appErr.WithContext("path", path)
	}
	return records, nil
}

// ReadCSVFrom reads the raw dataset from an arbitrary stream.
func ReadCSVFrom(r io.Reader) ([]domain.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = false

	headerRow, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewIngestionError("input dataset is empty", nil)
	}
	if err != nil {
		return nil, errors.NewIngestionError("cannot read header row", err)
	}

	headers, err := canonicalizeHeaders(headerRow)
	if err != nil {
		return nil, err
	}

	var records []domain.RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewIngestionError(
				fmt.Sprintf("cannot read data row %d", len(records)+1), err)
		}
		records = append(records, rowToRecord(headers, row))
	}
	return records, nil
}
