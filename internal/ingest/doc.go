// Package ingest reads the raw HR dataset into RawRecord rows. It owns the
// structural side of the contract with the upstream source: header
// canonicalization (BOM stripping, snake_case, the id -> employee_id
// rename) and the required-column check. CSV and XLSX inputs produce
// identical row streams, so the pipeline never knows which format the data
// arrived in.
package ingest
