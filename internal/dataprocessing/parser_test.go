package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_AcceptedFormats(t *testing.T) {
	want := time.Date(2019, 3, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
	}{
		{name: "timestamp with timezone suffix", raw: "2019-03-05 00:00:00 UTC"},
		{name: "timestamp with offset suffix", raw: "2019-03-05 00:00:00 +0000"},
		{name: "iso date", raw: "2019-03-05"},
		{name: "us slash date", raw: "03/05/2019"},
		{name: "us dash date", raw: "03-05-2019"},
		{name: "padded iso date", raw: "  2019-03-05  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.raw)
			require.True(t, ok)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseDate_Absent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "whitespace only", raw: "   "},
		{name: "zero sentinel", raw: "0000-00-00"},
		{name: "zero sentinel with time", raw: "0000-00-00 00:00:00 UTC"},
		{name: "free text", raw: "not a date"},
		{name: "unsupported format", raw: "5 March 2019"},
		{name: "impossible month", raw: "2019-13-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseDate(tt.raw)
			assert.False(t, ok)
		})
	}
}

func TestParseDate_DropsTimeOfDay(t *testing.T) {
	got, ok := ParseDate("2021-07-19 14:22:09 UTC")
	require.True(t, ok)
	assert.Equal(t, time.Date(2021, 7, 19, 0, 0, 0, 0, time.UTC), got)
}

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{name: "plain", raw: "E100", want: "E100", wantOK: true},
		{name: "surrounding whitespace", raw: "  E100 ", want: "E100", wantOK: true},
		{name: "utf8 bom prefix", raw: "\ufeffE100", want: "E100", wantOK: true},
		{name: "zero width space", raw: "E1\u200b00", want: "E100", wantOK: true},
		{name: "empty", raw: "", want: "", wantOK: false},
		{name: "whitespace only", raw: " \t ", want: "", wantOK: false},
		{name: "bom only", raw: "\ufeff", want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseIdentifier(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseText_CollapsesWhitespace(t *testing.T) {
	got, ok := ParseText("  Research  and   Development ")
	require.True(t, ok)
	assert.Equal(t, "Research and Development", got)
}

func TestParseName_TitleCases(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "lowercase", raw: "alicia", want: "Alicia"},
		{name: "uppercase", raw: "MARK", want: "Mark"},
		{name: "padded", raw: "  mark", want: "Mark"},
		{name: "two words", raw: "mary jane", want: "Mary Jane"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseName(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := ParseName("   ")
	assert.False(t, ok)
}
