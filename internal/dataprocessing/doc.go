// Package dataprocessing implements the HR data-cleaning pipeline: field
// parsing, record normalization, derived-attribute calculation and
// cross-record validation.
//
// # Architecture
//
// The package is organized around four components, leaf first:
//
//  1. Field parsers: pure functions turning raw cells into typed values or
//     explicit absence (ParseDate, ParseIdentifier, ParseText, ParseName)
//  2. Normalizer: applies the field parsers across one raw row (Normalize)
//  3. Derivation: age and tenure relative to an explicit reference date (Derive)
//  4. Validator: duplicate IDs, chronology and age-bound checks (Validator)
//
// The Pipeline type owns the flow through these stages and guarantees that
// output order matches input order and that identical input plus an
// identical reference date reproduces identical output.
//
// # Data Flow
//
//	RawRecord rows -> Normalize -> Derive -> Validate -> {EmployeeRecord table, Finding feed}
//
// # Error Handling
//
// Malformed field values are a normal condition of this dataset: they
// degrade to absent values with warning findings and never abort a run.
// Structural problems with the input (unreadable file, missing required
// column) are caught upstream in the ingest package before rows reach this
// package.
package dataprocessing
