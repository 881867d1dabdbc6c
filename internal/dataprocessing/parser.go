package dataprocessing

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Raw date shapes accepted by ParseDate, tried in priority order. The first
// shape carries a time-of-day and timezone suffix; only the date part is
// retained.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"01-02-2006",
}

// zeroDateSentinel is the placeholder the source system writes for "no date".
const zeroDateSentinel = "0000-00-00"

var titleCaser = cases.Title(language.English)

// ParseDate normalizes a raw date cell into a UTC calendar date. The second
// return value is false when the cell carries no date: empty or
// whitespace-only input, the all-zero sentinel, or a shape outside the
// accepted formats. Malformed dates are a normal condition of this dataset,
// so ParseDate never returns an error.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(stripArtifacts(raw))
	if s == "" || strings.HasPrefix(s, zeroDateSentinel) {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		candidate := s
		if strings.ContainsRune(layout, ' ') {
			// Timestamp shape: keep the date and time fields, drop any
			// trailing timezone suffix ("2019-03-05 00:00:00 UTC").
			fields := strings.Fields(s)
			if len(fields) < 2 {
				continue
			}
			candidate = fields[0] + " " + fields[1]
		}
		if t, err := time.Parse(layout, candidate); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// ParseIdentifier normalizes a raw identifier cell. Encoding artifacts such
// as a UTF-8 BOM are stripped before trimming so that identifiers compare
// equal regardless of how the source file was exported. Returns false when
// nothing remains after cleanup.
func ParseIdentifier(raw string) (string, bool) {
	s := strings.TrimSpace(stripArtifacts(raw))
	if s == "" {
		return "", false
	}
	return s, true
}

// ParseText normalizes a free-text cell: strips encoding artifacts, trims
// surrounding whitespace and collapses internal runs of whitespace to a
// single space. Returns false when the cell is empty after cleanup.
func ParseText(raw string) (string, bool) {
	s := strings.TrimSpace(stripArtifacts(raw))
	if s == "" {
		return "", false
	}
	return strings.Join(strings.Fields(s), " "), true
}

// ParseName normalizes a person-name cell like ParseText and then applies
// English title casing, so "  mark" and "MARK" both canonicalize to "Mark".
func ParseName(raw string) (string, bool) {
	s, ok := ParseText(raw)
	if !ok {
		return "", false
	}
	return titleCaser.String(s), true
}

// stripArtifacts removes byte-order marks and zero-width characters that
// leak into cells when spreadsheets round-trip through different encodings.
func stripArtifacts(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\ufeff', '\u200b', '\u200c', '\u200d':
			return -1
		}
		return r
	}, s)
}
