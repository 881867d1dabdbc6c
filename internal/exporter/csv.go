package exporter

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sebastian-gm/hr-data-insights/internal/errors"
	"github.com/sebastian-gm/hr-data-insights/pkg/contracts/domain"
)

// dateFormat is how calendar dates appear in exported files.
const dateFormat = "2006-01-02"

// employeeHeaders is the column order of the exported canonical table.
var employeeHeaders = []string{
	"employee_id", "first_name", "last_name", "birthdate", "hire_date",
	"termdate", "gender", "race", "department", "jobtitle", "location",
	"location_city", "location_state", "age", "tenure_years",
}

// findingHeaders is the column order of the exported findings feed.
var findingHeaders = []string{"record_id", "row", "kind", "severity", "message", "raw_value"}

// CSVWriter persists pipeline output as CSV files.
type CSVWriter struct {
	logger *slog.Logger
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteEmployees writes the canonical employee table. The row order of the
// input is preserved, so identical pipeline runs produce byte-identical
// files.
func (w *CSVWriter) WriteEmployees(path string, records []domain.EmployeeRecord) error {
	rows := make([][]string, 0, len(records))
	for i := range records {
		rows = append(rows, employeeRow(&records[i]))
	}
	return w.WriteCSV(path, WriteOptions{
		Headers:   employeeHeaders,
		Records:   rows,
		BOMPrefix: true,
	})
}

// WriteFindings writes the findings feed, one line per finding.
func (w *CSVWriter) WriteFindings(path string, findings []domain.Finding) error {
	rows := make([][]string, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, []string{
			f.RecordID,
			strconv.Itoa(f.Row),
			string(f.Kind),
			string(f.Severity),
			f.Message,
			f.RawValue,
		})
	}
	return w.WriteCSV(path, WriteOptions{
		Headers: findingHeaders,
		Records: rows,
	})
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(path string, options WriteOptions) error {
	w.logger.Info("writing CSV file",
		slog.String("path", path),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create output directory", err).
			WithContext("path", path)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create output file", err).
			WithContext("path", path)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8.
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return errors.NewStorageError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return errors.NewStorageError("failed to write header row", err)
		}
	}
	for _, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return errors.NewStorageError("failed to write record", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewStorageError("failed to flush CSV output", err)
	}
	return nil
}

func employeeRow(record *domain.EmployeeRecord) []string {
	return []string{
		record.EmployeeID,
		record.FirstName,
		record.LastName,
		formatDate(record.Birthdate),
		formatDate(record.HireDate),
		formatDate(record.TermDate),
		record.Gender,
		record.Race,
		record.Department,
		record.JobTitle,
		record.Location,
		record.LocationCity,
		record.LocationState,
		formatInt(record.Age),
		formatFloat(record.TenureYears),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateFormat)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}
