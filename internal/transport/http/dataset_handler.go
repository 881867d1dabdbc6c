package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/sebastian-gm/hr-data-insights/internal/dataprocessing"
	apierrors "github.com/sebastian-gm/hr-data-insights/internal/errors"
	"github.com/sebastian-gm/hr-data-insights/internal/middleware"
	"github.com/sebastian-gm/hr-data-insights/pkg/contracts/domain"
)

// DatasetHandler serves the canonical employee table and the findings feed
// from one pipeline run.
type DatasetHandler struct {
	result *dataprocessing.Result
	byID   map[string]int
	logger *slog.Logger
}

// NewDatasetHandler creates a dataset handler over an immutable run result.
// Lookup by employee_id resolves to the first occurrence of the identifier,
// matching how the validator designates the primary record among duplicates.
func NewDatasetHandler(result *dataprocessing.Result, logger *slog.Logger) *DatasetHandler {
	if logger == nil {
		logger = slog.Default()
	}
	byID := make(map[string]int, len(result.Records))
	for i, record := range result.Records {
		if record.EmployeeID == "" {
			continue
		}
		if _, seen := byID[record.EmployeeID]; !seen {
			byID[record.EmployeeID] = i
		}
	}
	return &DatasetHandler{
		result: result,
		byID:   byID,
		logger: logger.With(slog.String("handler", "dataset")),
	}
}

// Routes returns the dataset routes.
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/run", h.GetRun)
	r.Get("/employees", h.GetEmployees)
	r.Get("/employees/{id}", h.GetEmployee)
	r.Get("/findings", h.GetFindings)

	return r
}

// GetRun handles GET /api/data/run. It reports run metadata without the
// record payload.
func (h *DatasetHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"run_id":        h.result.RunID,
		"as_of":         h.result.AsOf.Format("2006-01-02"),
		"record_count":  len(h.result.Records),
		"finding_count": len(h.result.Findings),
	})
}

// GetEmployees handles GET /api/data/employees. Optional query parameters
// filter the table: department (exact, case-insensitive) and status
// (active or terminated relative to the run's reference date).
func (h *DatasetHandler) GetEmployees(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	department := r.URL.Query().Get("department")
	status := r.URL.Query().Get("status")
	if status != "" && status != "active" && status != "terminated" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, apierrors.NewAPIError(
			http.StatusBadRequest,
			"INVALID_STATUS",
			"status must be one of: active, terminated",
		))
		return
	}

	records := h.result.Records
	if department != "" || status != "" {
		records = filterEmployees(records, department, status, h.result.AsOf)
	}

	h.logger.InfoContext(r.Context(), "serving employees",
		slog.String("request_id", reqID),
		slog.String("department", department),
		slog.String("status", status),
		slog.Int("count", len(records)),
	)

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   records,
		"count":  len(records),
	})
}

// GetEmployee handles GET /api/data/employees/{id}.
func (h *DatasetHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	idx, ok := h.byID[id]
	if !ok {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, apierrors.NewAPIError(
			http.StatusNotFound,
			"EMPLOYEE_NOT_FOUND",
			"No employee with the given identifier",
		))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   h.result.Records[idx],
	})
}

// GetFindings handles GET /api/data/findings. Optional query parameters
// filter by severity and kind.
func (h *DatasetHandler) GetFindings(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	severity := r.URL.Query().Get("severity")
	kind := r.URL.Query().Get("kind")

	findings := h.result.Findings
	if severity != "" || kind != "" {
		filtered := make([]domain.Finding, 0, len(findings))
		for _, f := range findings {
			if severity != "" && string(f.Severity) != severity {
				continue
			}
			if kind != "" && string(f.Kind) != kind {
				continue
			}
			filtered = append(filtered, f)
		}
		findings = filtered
	}

	h.logger.InfoContext(r.Context(), "serving findings",
		slog.String("request_id", reqID),
		slog.String("severity", severity),
		slog.String("kind", kind),
		slog.Int("count", len(findings)),
	)

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   findings,
		"count":  len(findings),
	})
}

func filterEmployees(records []domain.EmployeeRecord, department, status string, asOf time.Time) []domain.EmployeeRecord {
	filtered := make([]domain.EmployeeRecord, 0, len(records))
	for i := range records {
		record := &records[i]
		if department != "" && !strings.EqualFold(record.Department, department) {
			continue
		}
		if status == "active" && record.Terminated(asOf) {
			continue
		}
		if status == "terminated" && !record.Terminated(asOf) {
			continue
		}
		filtered = append(filtered, *record)
	}
	return filtered
}
