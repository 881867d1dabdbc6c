package dataprocessing

import (
	"fmt"
	"time"

	"github.com/sebastian-gm/hr-data-insights/pkg/contracts/domain"
)

// Normalize converts one raw row at the given input position into an
// EmployeeRecord plus the per-field findings produced along the way. A field
// that fails to parse degrades to absence with a warning finding; the record
// itself is always emitted, even when the employee ID is missing (dedup and
// filtering are caller decisions). Normalize never fails.
func Normalize(raw domain.RawRecord, row int) (domain.EmployeeRecord, []domain.Finding) {
	var findings []domain.Finding

	id, ok := ParseIdentifier(raw[domain.ColumnEmployeeID])
	if !ok {
		findings = append(findings, domain.Finding{
			Row:      row,
			Kind:     domain.FindingMissingRequiredField,
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("row %d has no %s value", row, domain.ColumnEmployeeID),
			RawValue: raw[domain.ColumnEmployeeID],
		})
	}

	record := domain.EmployeeRecord{EmployeeID: id}
	record.FirstName, _ = ParseName(raw[domain.ColumnFirstName])
	record.LastName, _ = ParseName(raw[domain.ColumnLastName])
	record.Gender, _ = ParseText(raw[domain.ColumnGender])
	record.Race, _ = ParseText(raw[domain.ColumnRace])
	record.Department, _ = ParseText(raw[domain.ColumnDepartment])
	record.JobTitle, _ = ParseText(raw[domain.ColumnJobTitle])
	record.Location, _ = ParseText(raw[domain.ColumnLocation])
	record.LocationCity, _ = ParseText(raw[domain.ColumnLocationCity])
	record.LocationState, _ = ParseText(raw[domain.ColumnLocationState])

	record.Birthdate, findings = normalizeDate(raw, domain.ColumnBirthdate, id, row, findings)
	record.HireDate, findings = normalizeDate(raw, domain.ColumnHireDate, id, row, findings)
	record.TermDate, findings = normalizeDate(raw, domain.ColumnTermDate, id, row, findings)

	return record, findings
}

// normalizeDate parses one date column. Sentinel and blank values are normal
// absence; only a non-empty value that matches no accepted shape yields an
// unparsable_date finding.
func normalizeDate(raw domain.RawRecord, column, id string, row int, findings []domain.Finding) (*time.Time, []domain.Finding) {
	value := raw[column]
	if t, ok := ParseDate(value); ok {
		return &t, findings
	}
	if trimmed, nonEmpty := ParseIdentifier(value); nonEmpty && !isSentinelDate(trimmed) {
		findings = append(findings, domain.Finding{
			RecordID: id,
			Row:      row,
			Kind:     domain.FindingUnparsableDate,
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("%s value %q matches no accepted date format", column, trimmed),
			RawValue: value,
		})
	}
	return nil, findings
}

func isSentinelDate(s string) bool {
	return len(s) >= len(zeroDateSentinel) && s[:len(zeroDateSentinel)] == zeroDateSentinel
}
