// Package http exposes the results of a pipeline run over a read-only JSON
// API. Handlers follow the chi router pattern: each handler owns a Routes()
// method returning a chi.Router that the top-level router mounts under its
// path prefix. The served dataset is immutable; every response is derived
// from the single Result produced at startup.
package http
