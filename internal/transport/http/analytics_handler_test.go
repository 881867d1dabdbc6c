package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastian-gm/hr-data-insights/internal/analytics"
)

func testReport() *analytics.Report {
	avg := 3.5
	return &analytics.Report{
		GenderBreakdown: []analytics.CountRow{
			{Key: "Female", EmployeeCount: 2},
			{Key: "Male", EmployeeCount: 1},
		},
		DepartmentTurnover: []analytics.TurnoverRow{
			{Department: "Sales", TotalHeadcount: 1, TerminatedCount: 1, TurnoverRate: 1},
		},
		AverageTerminatedTenure: &avg,
	}
}

func TestAnalyticsHandler_GetReport(t *testing.T) {
	handler := NewAnalyticsHandler(testReport(), nil)

	rec, body := performRequest(t, handler.Routes(), "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	breakdown := data["gender_breakdown"].([]interface{})
	assert.Len(t, breakdown, 2)
}

func TestAnalyticsHandler_GetView(t *testing.T) {
	handler := NewAnalyticsHandler(testReport(), nil)

	rec, body := performRequest(t, handler.Routes(), "/gender-breakdown")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gender-breakdown", body["view"])
	rows := body["data"].([]interface{})
	require.Len(t, rows, 2)
	first := rows[0].(map[string]interface{})
	assert.Equal(t, "Female", first["key"])
	assert.Equal(t, float64(2), first["employee_count"])
}

func TestAnalyticsHandler_GetView_Unknown(t *testing.T) {
	handler := NewAnalyticsHandler(testReport(), nil)

	rec, body := performRequest(t, handler.Routes(), "/payroll-forecast")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "VIEW_NOT_FOUND", body["error_code"])
}

func TestAnalyticsHandler_AllViewsRegistered(t *testing.T) {
	handler := NewAnalyticsHandler(testReport(), nil)

	views := []string{
		"gender-breakdown",
		"race-breakdown",
		"age-distribution",
		"age-gender-breakdown",
		"location-distribution",
		"location-state-distribution",
		"jobtitle-distribution",
		"department-gender-distribution",
		"average-terminated-tenure",
		"department-turnover",
		"department-tenure-distribution",
		"headcount-trend",
	}

	for _, view := range views {
		t.Run(view, func(t *testing.T) {
			rec, _ := performRequest(t, handler.Routes(), "/"+view)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}
