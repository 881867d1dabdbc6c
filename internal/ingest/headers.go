package ingest

import (
	"strings"
	"unicode"

	"github.com/sebastian-gm/hr-data-insights/internal/errors"
	"github.com/sebastian-gm/hr-data-insights/pkg/contracts/domain"
)

// headerRenames maps source column labels to their canonical names.
var headerRenames = map[string]string{
	"id": domain.ColumnEmployeeID,
}

// CanonicalizeHeader transforms a raw column label into its canonical
// snake_case form. Source exports carry a UTF-8 BOM on the first column and
// inconsistent separators ("first name", "first-name", "First/Name"), all of
// which collapse to the same canonical name.
func CanonicalizeHeader(label string) string {
	replacer := strings.NewReplacer("/", "_", "-", "_", " ", "_")
	cleaned := replacer.Replace(strings.TrimSpace(label))
	cleaned = strings.Map(func(r rune) rune {
		if r == '\ufeff' || !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, cleaned)
	cleaned = strings.ToLower(cleaned)

	if renamed, ok := headerRenames[cleaned]; ok {
		return renamed
	}
	return cleaned
}

// canonicalizeHeaders maps every label and verifies the required columns are
// all present. A missing required column means the contract with the
// upstream source is broken, so the whole run must abort.
func canonicalizeHeaders(labels []string) ([]string, error) {
	headers := make([]string, len(labels))
	seen := make(map[string]bool, len(labels))
	for i, label := range labels {
		headers[i] = CanonicalizeHeader(label)
		seen[headers[i]] = true
	}

	var missing []string
	for _, required := range domain.RequiredColumns {
		if !seen[required] {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewIngestionError(
			"dataset is missing required columns: "+strings.Join(missing, ", "), nil).
			WithContext("missing_columns", missing)
	}
	return headers, nil
}

// rowToRecord zips one data row against the canonical headers. Short rows
// leave trailing columns absent; extra cells beyond the header are dropped.
func rowToRecord(headers []string, row []string) domain.RawRecord {
	record := make(domain.RawRecord, len(headers))
	for i, header := range headers {
		if header == "" {
			continue
		}
		if i < len(row) {
			record[header] = row[i]
		}
	}
	return record
}
