// ABOUTME: Route table for the journal HTTP API.
// ABOUTME: Uses method-qualified ServeMux patterns and wraps them in middleware.
package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Routes returns the fully wrapped HTTP handler.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health/records", h.listRecords)
	mux.HandleFunc("POST /api/health/records", h.addRecord)
	mux.HandleFunc("DELETE /api/health/records", h.clearRecords)
	mux.HandleFunc("DELETE /api/health/records/{date}", h.deleteRecord)
	mux.HandleFunc("GET /api/health/analysis", h.analysis)
	mux.HandleFunc("GET /api/health/analysis/per_run", h.perRun)
	mux.HandleFunc("GET /api/health/tips", h.tips)
	mux.HandleFunc("GET /api/health/stats", h.stats)
	mux.HandleFunc("GET /api/health/coach", h.coachSummary)
	mux.HandleFunc("GET /metrics", h.metrics)
	mux.HandleFunc("GET /healthz", h.healthz)

	return Chain(mux, RecoveryMiddleware(h.logger), LoggingMiddleware(h.logger))
}

// NewServer builds an http.Server for addr.
func NewServer(addr string, h *Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          zap.NewStdLog(h.logger),
	}
}
