package dataprocessing

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/sebastian-gm/hr-data-insights/pkg/contracts/domain"
)

// DefaultAgeCeiling is the highest derived age that passes validation.
const DefaultAgeCeiling = 100

// Validator runs the cross-field and cross-record checks over a full
// canonical sequence. Every rule is evaluated independently; findings
// describe records, they never change them.
type Validator struct {
	logger     *slog.Logger
	ageCeiling int
}

// ValidatorConfig holds configuration options for the Validator.
type ValidatorConfig struct {
	AgeCeiling int // Highest plausible derived age; 0 means DefaultAgeCeiling
}

// NewValidator creates a validator with the given configuration.
func NewValidator(logger *slog.Logger, config ValidatorConfig) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	if config.AgeCeiling <= 0 {
		config.AgeCeiling = DefaultAgeCeiling
	}
	return &Validator{
		logger:     logger,
		ageCeiling: config.AgeCeiling,
	}
}

// Validate checks the canonical sequence against the reference date and
// returns every finding the rules produce, stably sorted by employee ID and
// finding kind so that reruns are diff-able. Records must be in input order;
// the row index of each finding is the record's position in the sequence.
func (v *Validator) Validate(records []domain.EmployeeRecord, asOf time.Time) []domain.Finding {
	findings := make([]domain.Finding, 0)

	// Duplicate detection groups by ID in a single pass. The first
	// occurrence in input order is the primary; every later occurrence
	// gets its own finding.
	firstSeen := make(map[string]int, len(records))
	for i := range records {
		record := &records[i]
		if record.EmployeeID != "" {
			if primary, seen := firstSeen[record.EmployeeID]; seen {
				findings = append(findings, domain.Finding{
					RecordID: record.EmployeeID,
					Row:      i,
					Kind:     domain.FindingDuplicateID,
					Severity: domain.SeverityError,
					Message:  fmt.Sprintf("employee_id %q already appears at row %d", record.EmployeeID, primary),
				})
			} else {
				firstSeen[record.EmployeeID] = i
			}
		}

		findings = append(findings, v.checkChronology(record, i, asOf)...)
		findings = append(findings, v.checkAgeBounds(record, i)...)
	}

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].RecordID != findings[j].RecordID {
			return findings[i].RecordID < findings[j].RecordID
		}
		return findings[i].Kind < findings[j].Kind
	})

	v.logger.Debug("validation complete",
		slog.Int("record_count", len(records)),
		slog.Int("finding_count", len(findings)))

	return findings
}

// checkChronology verifies the date ordering within one record: hire on or
// after birth, termination on or after hire. A termination date beyond the
// reference date is not an error; the employee simply counts as active, and
// an informational finding keeps the anomaly visible.
func (v *Validator) checkChronology(record *domain.EmployeeRecord, row int, asOf time.Time) []domain.Finding {
	var findings []domain.Finding

	if record.Birthdate != nil && record.HireDate != nil && record.HireDate.Before(*record.Birthdate) {
		findings = append(findings, domain.Finding{
			RecordID: record.EmployeeID,
			Row:      row,
			Kind:     domain.FindingInvalidChronology,
			Severity: domain.SeverityWarning,
			Message: fmt.Sprintf("hire_date %s precedes birthdate %s",
				record.HireDate.Format("2006-01-02"), record.Birthdate.Format("2006-01-02")),
		})
	}

	if record.HireDate != nil && record.TermDate != nil && record.TermDate.Before(*record.HireDate) {
		findings = append(findings, domain.Finding{
			RecordID: record.EmployeeID,
			Row:      row,
			Kind:     domain.FindingInvalidChronology,
			Severity: domain.SeverityWarning,
			Message: fmt.Sprintf("termdate %s precedes hire_date %s",
				record.TermDate.Format("2006-01-02"), record.HireDate.Format("2006-01-02")),
		})
	}

	if record.TermDate != nil && record.TermDate.After(asOf) {
		findings = append(findings, domain.Finding{
			RecordID: record.EmployeeID,
			Row:      row,
			Kind:     domain.FindingInvalidChronology,
			Severity: domain.SeverityInfo,
			Message: fmt.Sprintf("termdate %s is after the reference date %s; employee treated as active",
				record.TermDate.Format("2006-01-02"), asOf.Format("2006-01-02")),
		})
	}

	return findings
}

// checkAgeBounds flags derived ages outside the plausible range. The age
// value itself is left as derived; findings surface anomalies, they do not
// rewrite data.
func (v *Validator) checkAgeBounds(record *domain.EmployeeRecord, row int) []domain.Finding {
	if record.Age == nil {
		return nil
	}
	age := *record.Age
	if age >= 0 && age <= v.ageCeiling {
		return nil
	}
	return []domain.Finding{{
		RecordID: record.EmployeeID,
		Row:      row,
		Kind:     domain.FindingAgeOutOfBounds,
		Severity: domain.SeverityWarning,
		Message:  fmt.Sprintf("derived age %d is outside the plausible range 0-%d", age, v.ageCeiling),
	}}
}
