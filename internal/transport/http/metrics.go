package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sebastian-gm/hr-data-insights/internal/dataprocessing"
)

// Metrics holds the Prometheus instruments for the serving surface.
type Metrics struct {
	registry *prometheus.Registry

	recordsTotal  prometheus.Gauge
	findingsTotal *prometheus.GaugeVec
	requestsTotal *prometheus.CounterVec
	requestDur    *prometheus.HistogramVec
}

// NewMetrics creates a metrics set on a fresh registry. The registry also
// carries the standard Go runtime and process collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		recordsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hr_pipeline_records_total",
			Help: "Number of employee records in the served dataset.",
		}),
		findingsTotal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hr_pipeline_findings_total",
			Help: "Number of validation findings in the served dataset by severity.",
		}, []string{"severity"}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Number of HTTP requests by method and status code.",
		}, []string{"method", "code"}),
		requestDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
	registry.MustRegister(m.recordsTotal, m.findingsTotal, m.requestsTotal, m.requestDur)
	return m
}

// ObserveRun records the dataset-level gauges for a pipeline run.
func (m *Metrics) ObserveRun(result *dataprocessing.Result) {
	m.recordsTotal.Set(float64(len(result.Records)))
	bySeverity := make(map[string]int)
	for _, f := range result.Findings {
		bySeverity[string(f.Severity)]++
	}
	for severity, count := range bySeverity {
		m.findingsTotal.WithLabelValues(severity).Set(float64(count))
	}
}

// Handler returns the /metrics endpoint handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Instrument is HTTP middleware that counts requests and observes latency.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		timer := prometheus.NewTimer(m.requestDur.WithLabelValues(r.Method))

		next.ServeHTTP(ww, r)

		timer.ObserveDuration()
		m.requestsTotal.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
	})
}
