package dataprocessing

import (
	"math"
	"time"

	"github.com/sebastian-gm/hr-data-insights/pkg/contracts/domain"
)

const daysPerYear = 365.25

// Derive returns a copy of the record with the age and tenure fields
// populated relative to the explicit reference date. The reference date is
// always a parameter so that runs replay deterministically; "now" is only
// ever supplied at the orchestration boundary.
func Derive(record domain.EmployeeRecord, asOf time.Time) domain.EmployeeRecord {
	derived := record
	derived.Age = deriveAge(record.Birthdate, asOf)
	derived.TenureYears = deriveTenure(record.HireDate, record.TermDate, asOf)
	return derived
}

// deriveAge computes whole years between birthdate and asOf. The count is
// not clamped: an implausible birthdate yields an implausible age, which the
// validation engine flags rather than rewrites.
func deriveAge(birthdate *time.Time, asOf time.Time) *int {
	if birthdate == nil {
		return nil
	}
	age := asOf.Year() - birthdate.Year()
	if asOf.Month() < birthdate.Month() ||
		(asOf.Month() == birthdate.Month() && asOf.Day() < birthdate.Day()) {
		age--
	}
	return &age
}

// deriveTenure computes years of service to one decimal place. Employment
// ends at the termination date when it has already passed, otherwise it runs
// through asOf; a future termination date does not yet end the tenure clock.
// A negative span (termination before hire) yields absence.
func deriveTenure(hireDate, termDate *time.Time, asOf time.Time) *float64 {
	if hireDate == nil {
		return nil
	}
	end := asOf
	if termDate != nil && !termDate.After(asOf) {
		end = *termDate
	}
	days := end.Sub(*hireDate).Hours() / 24
	if days < 0 {
		return nil
	}
	tenure := math.Round(days/daysPerYear*10) / 10
	return &tenure
}
