// Package http exposes the dashboard service to the presentation adapter as
// a small JSON API: normalized aggregates out, new rows in. Rendering is
// somebody else's job.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"financehq/internal/services"
)

const handlerTimeout = 10 * time.Second

type Server struct {
	http.Server
	dash *services.Dashboard

	now func() time.Time
}

func NewServer(addr string, dash *services.Dashboard) *Server {
	s := &Server{dash: dash, now: time.Now}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/overview", s.handleOverview)
	mux.HandleFunc("/api/periods", s.handlePeriods)
	mux.HandleFunc("/api/transactions", s.handleAddTransaction)
	mux.HandleFunc("/api/time-entries", s.handleAddTimeEntry)
	mux.HandleFunc("/api/refresh", s.handleRefresh)

	s.Server = http.Server{
		Addr:    addr,
		Handler: withRequestLog(mux),
	}
	return s
}

// Handler returns the wrapped mux, for tests.
func (s *Server) Handler() http.Handler {
	return s.Server.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.InfoContext(r.Context(), "Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), handlerTimeout)
}
