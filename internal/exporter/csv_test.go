package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastian-gm/hr-data-insights/pkg/contracts/domain"
)

func dateptr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func intptr(v int) *int { return &v }

func floatptr(v float64) *float64 { return &v }

func sampleRecords() []domain.EmployeeRecord {
	return []domain.EmployeeRecord{
		{
			EmployeeID:  "001",
			FirstName:   "Ada",
			LastName:    "Lovelace",
			Birthdate:   dateptr(1990, time.June, 15),
			HireDate:    dateptr(2015, time.March, 1),
			Gender:      "Female",
			Department:  "Engineering",
			JobTitle:    "Engineer",
			Age:         intptr(33),
			TenureYears: floatptr(8.8),
		},
		{
			EmployeeID: "002",
			FirstName:  "Grace",
			LastName:   "Hopper",
			Birthdate:  dateptr(1985, time.December, 9),
			HireDate:   dateptr(2010, time.July, 1),
			TermDate:   dateptr(2020, time.January, 31),
			Gender:     "Female",
			Department: "Engineering",
		},
	}
}

func TestCSVWriter_WriteEmployees(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "employees.csv")

	writer := NewCSVWriter(nil)
	require.NoError(t, writer.WriteEmployees(path, sampleRecords()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), "\xEF\xBB\xBF"), "employee export should carry a UTF-8 BOM")

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\xEF\xBB\xBF")))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, employeeHeaders, rows[0])

	first := rows[1]
	assert.Equal(t, "001", first[0])
	assert.Equal(t, "Ada", first[1])
	assert.Equal(t, "1990-06-15", first[3])
	assert.Equal(t, "2015-03-01", first[4])
	assert.Equal(t, "", first[5], "absent termdate renders as empty string")
	assert.Equal(t, "33", first[13])
	assert.Equal(t, "8.8", first[14])

	second := rows[2]
	assert.Equal(t, "2020-01-31", second[5])
	assert.Equal(t, "", second[13], "absent age renders as empty string")
	assert.Equal(t, "", second[14], "absent tenure renders as empty string")
}

func TestCSVWriter_WriteFindings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "findings.csv")

	findings := []domain.Finding{
		{
			RecordID: "002",
			Row:      3,
			Kind:     domain.FindingDuplicateID,
			Severity: domain.SeverityWarning,
			Message:  "duplicate employee_id",
			RawValue: "002",
		},
		{
			RecordID: "005",
			Row:      6,
			Kind:     domain.FindingUnparsableDate,
			Severity: domain.SeverityWarning,
			Message:  "unparsable hire_date",
			RawValue: "not-a-date",
		},
	}

	writer := NewCSVWriter(nil)
	require.NoError(t, writer.WriteFindings(path, findings))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(string(data), "\xEF\xBB\xBF"), "findings feed is plain UTF-8")

	reader := csv.NewReader(strings.NewReader(string(data)))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, findingHeaders, rows[0])
	assert.Equal(t, []string{"002", "3", "duplicate_id", "warning", "duplicate employee_id", "002"}, rows[1])
	assert.Equal(t, []string{"005", "6", "unparsable_date", "warning", "unparsable hire_date", "not-a-date"}, rows[2])
}

func TestCSVWriter_WriteEmployees_Deterministic(t *testing.T) {
	dir := t.TempDir()
	records := sampleRecords()
	writer := NewCSVWriter(nil)

	pathA := filepath.Join(dir, "a.csv")
	pathB := filepath.Join(dir, "b.csv")
	require.NoError(t, writer.WriteEmployees(pathA, records))
	require.NoError(t, writer.WriteEmployees(pathB, records))

	a, err := os.ReadFile(pathA)
	require.NoError(t, err)
	b, err := os.ReadFile(pathB)
	require.NoError(t, err)
	assert.Equal(t, a, b, "identical input must produce byte-identical output")
}

func TestCSVWriter_WriteCSV_BadDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	writer := NewCSVWriter(nil)
	err := writer.WriteEmployees(filepath.Join(blocker, "nested", "out.csv"), sampleRecords())
	assert.Error(t, err)
}
