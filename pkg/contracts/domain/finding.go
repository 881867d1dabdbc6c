package domain

// FindingKind classifies a data-quality signal.
type FindingKind string

const (
	FindingDuplicateID          FindingKind = "duplicate_id"
	FindingInvalidChronology    FindingKind = "invalid_chronology"
	FindingAgeOutOfBounds       FindingKind = "age_out_of_bounds"
	FindingUnparsableDate       FindingKind = "unparsable_date"
	FindingMissingRequiredField FindingKind = "missing_required_field"
)

// Severity expresses how serious a finding is. Findings never stop the run;
// severity only drives alerting and dashboard display downstream.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Finding is one structured data-quality signal emitted by the pipeline.
// Findings are side-channel output: they describe a record, they never
// rewrite it. Row is the zero-based position of the record in the input,
// which attributes a finding even when the employee ID itself is missing.
type Finding struct {
	RecordID string      `json:"record_id,omitempty"`
	Row      int         `json:"row"`
	Kind     FindingKind `json:"kind"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
	RawValue string      `json:"raw_value,omitempty"`
}
