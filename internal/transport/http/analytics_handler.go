package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/sebastian-gm/hr-data-insights/internal/analytics"
	apierrors "github.com/sebastian-gm/hr-data-insights/internal/errors"
	"github.com/sebastian-gm/hr-data-insights/internal/middleware"
)

// AnalyticsHandler serves the aggregate views computed at startup.
type AnalyticsHandler struct {
	report *analytics.Report
	views  map[string]func() interface{}
	logger *slog.Logger
}

// NewAnalyticsHandler creates an analytics handler over a computed report.
func NewAnalyticsHandler(report *analytics.Report, logger *slog.Logger) *AnalyticsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &AnalyticsHandler{
		report: report,
		logger: logger.With(slog.String("handler", "analytics")),
	}
	h.views = map[string]func() interface{}{
		"gender-breakdown":               func() interface{} { return report.GenderBreakdown },
		"race-breakdown":                 func() interface{} { return report.RaceBreakdown },
		"age-distribution":               func() interface{} { return report.AgeDistribution },
		"age-gender-breakdown":           func() interface{} { return report.AgeGenderBreakdown },
		"location-distribution":          func() interface{} { return report.LocationDistribution },
		"location-state-distribution":    func() interface{} { return report.LocationStateDistribution },
		"jobtitle-distribution":          func() interface{} { return report.JobTitleDistribution },
		"department-gender-distribution": func() interface{} { return report.DepartmentGenderDistribution },
		"average-terminated-tenure":      func() interface{} { return report.AverageTerminatedTenure },
		"department-turnover":            func() interface{} { return report.DepartmentTurnover },
		"department-tenure-distribution": func() interface{} { return report.DepartmentTenureDistribution },
		"headcount-trend":                func() interface{} { return report.HeadcountTrend },
	}
	return h
}

// Routes returns the analytics routes.
func (h *AnalyticsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetReport)
	r.Get("/{view}", h.GetView)

	return r
}

// GetReport handles GET /api/analytics. It returns the full report.
func (h *AnalyticsHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   h.report,
	})
}

// GetView handles GET /api/analytics/{view}. View names use kebab case,
// for example department-turnover or headcount-trend.
func (h *AnalyticsHandler) GetView(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	view := chi.URLParam(r, "view")

	viewFn, ok := h.views[view]
	if !ok {
		h.logger.WarnContext(r.Context(), "unknown analytics view requested",
			slog.String("request_id", reqID),
			slog.String("view", view),
		)
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, apierrors.ErrViewNotFound)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"view":   view,
		"data":   viewFn(),
	})
}
