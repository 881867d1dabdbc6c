package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastian-gm/hr-data-insights/internal/dataprocessing"
	"github.com/sebastian-gm/hr-data-insights/pkg/contracts/domain"
)

func dateptr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func testResult() *dataprocessing.Result {
	return &dataprocessing.Result{
		RunID: "run-1",
		AsOf:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Records: []domain.EmployeeRecord{
			{
				EmployeeID: "001",
				FirstName:  "Ada",
				Department: "Engineering",
				HireDate:   dateptr(2015, time.March, 1),
			},
			{
				EmployeeID: "002",
				FirstName:  "Grace",
				Department: "Sales",
				HireDate:   dateptr(2018, time.June, 1),
				TermDate:   dateptr(2022, time.April, 30),
			},
			{
				EmployeeID: "003",
				FirstName:  "Joan",
				Department: "Engineering",
				HireDate:   dateptr(2020, time.January, 15),
				TermDate:   dateptr(2030, time.December, 31),
			},
		},
		Findings: []domain.Finding{
			{RecordID: "002", Row: 1, Kind: domain.FindingDuplicateID, Severity: domain.SeverityWarning, Message: "duplicate employee_id"},
			{RecordID: "003", Row: 2, Kind: domain.FindingInvalidChronology, Severity: domain.SeverityInfo, Message: "termination date is in the future"},
		},
	}
}

func performRequest(t *testing.T, handler http.Handler, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var body map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestDatasetHandler_GetRun(t *testing.T) {
	handler := NewDatasetHandler(testResult(), nil)

	rec, body := performRequest(t, handler.Routes(), "/run")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "run-1", body["run_id"])
	assert.Equal(t, "2024-01-01", body["as_of"])
	assert.Equal(t, float64(3), body["record_count"])
	assert.Equal(t, float64(2), body["finding_count"])
}

func TestDatasetHandler_GetEmployees(t *testing.T) {
	handler := NewDatasetHandler(testResult(), nil)

	tests := []struct {
		name string
		path string
		want int
	}{
		{name: "all", path: "/employees", want: 3},
		{name: "by department", path: "/employees?department=engineering", want: 2},
		{name: "active includes future termination", path: "/employees?status=active", want: 2},
		{name: "terminated", path: "/employees?status=terminated", want: 1},
		{name: "combined filters", path: "/employees?department=Sales&status=terminated", want: 1},
		{name: "no match", path: "/employees?department=Finance", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := performRequest(t, handler.Routes(), tt.path)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, float64(tt.want), body["count"])
		})
	}
}

func TestDatasetHandler_GetEmployees_InvalidStatus(t *testing.T) {
	handler := NewDatasetHandler(testResult(), nil)

	rec, body := performRequest(t, handler.Routes(), "/employees?status=fired")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_STATUS", body["error_code"])
}

func TestDatasetHandler_GetEmployee(t *testing.T) {
	handler := NewDatasetHandler(testResult(), nil)

	rec, body := performRequest(t, handler.Routes(), "/employees/002")
	assert.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Grace", data["first_name"])

	rec, body = performRequest(t, handler.Routes(), "/employees/999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "EMPLOYEE_NOT_FOUND", body["error_code"])
}

func TestDatasetHandler_GetFindings(t *testing.T) {
	handler := NewDatasetHandler(testResult(), nil)

	tests := []struct {
		name string
		path string
		want int
	}{
		{name: "all", path: "/findings", want: 2},
		{name: "by severity", path: "/findings?severity=warning", want: 1},
		{name: "by kind", path: "/findings?kind=invalid_chronology", want: 1},
		{name: "severity and kind", path: "/findings?severity=info&kind=duplicate_id", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := performRequest(t, handler.Routes(), tt.path)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, float64(tt.want), body["count"])
		})
	}
}
