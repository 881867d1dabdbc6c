package domain

import (
	"time"
)

// RawRecord is one untyped row as read from the source dataset: a mapping of
// canonical column name to the raw cell value. No invariants hold; values may
// be empty, sentinel placeholders, or malformed.
type RawRecord map[string]string

// Column names of the HR dataset after header canonicalization.
const (
	ColumnEmployeeID    = "employee_id"
	ColumnFirstName     = "first_name"
	ColumnLastName      = "last_name"
	ColumnBirthdate     = "birthdate"
	ColumnGender        = "gender"
	ColumnRace          = "race"
	ColumnDepartment    = "department"
	ColumnJobTitle      = "jobtitle"
	ColumnLocation      = "location"
	ColumnHireDate      = "hire_date"
	ColumnTermDate      = "termdate"
	ColumnLocationCity  = "location_city"
	ColumnLocationState = "location_state"
)

// RequiredColumns are the columns that must exist in the raw dataset. A
// missing required column is a structural failure, not a data-quality issue.
var RequiredColumns = []string{
	ColumnEmployeeID,
	ColumnBirthdate,
	ColumnHireDate,
	ColumnGender,
	ColumnDepartment,
}

// EmployeeRecord is one employee after normalization. String fields use the
// empty string for absence; date and numeric fields use nil pointers.
// Records are created once by the normalizer and never mutated afterwards;
// derivation returns a copy.
type EmployeeRecord struct {
	EmployeeID    string     `json:"employee_id" csv:"employee_id"`
	FirstName     string     `json:"first_name,omitempty" csv:"first_name"`
	LastName      string     `json:"last_name,omitempty" csv:"last_name"`
	Birthdate     *time.Time `json:"birthdate,omitempty" csv:"birthdate"`
	HireDate      *time.Time `json:"hire_date,omitempty" csv:"hire_date"`
	TermDate      *time.Time `json:"termdate,omitempty" csv:"termdate"`
	Gender        string     `json:"gender,omitempty" csv:"gender"`
	Race          string     `json:"race,omitempty" csv:"race"`
	Department    string     `json:"department,omitempty" csv:"department"`
	JobTitle      string     `json:"jobtitle,omitempty" csv:"jobtitle"`
	Location      string     `json:"location,omitempty" csv:"location"`
	LocationCity  string     `json:"location_city,omitempty" csv:"location_city"`
	LocationState string     `json:"location_state,omitempty" csv:"location_state"`
	Age           *int       `json:"age,omitempty" csv:"age"`
	TenureYears   *float64   `json:"tenure_years,omitempty" csv:"tenure_years"`
}

// Terminated reports whether the employee counts as terminated relative to
// the reference date. A termination date after asOf means the employee is
// still active for all downstream aggregate logic.
func (e *EmployeeRecord) Terminated(asOf time.Time) bool {
	return e.TermDate != nil && !e.TermDate.After(asOf)
}

// Adult reports whether the record passes the aggregate-view age filter:
// age absent or at least the given minimum.
func (e *EmployeeRecord) Adult(minimumAge int) bool {
	return e.Age == nil || *e.Age >= minimumAge
}
