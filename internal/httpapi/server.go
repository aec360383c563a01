// Package httpapi exposes the expense ledger over a small JSON API.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/engine"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/service"
)

// Server wraps an http.Server with the ledger's routes.
type Server struct {
	httpServer *http.Server
	storage    service.Storage
	engine     *engine.AlertEngine
	logger     *slog.Logger
	started    time.Time
}

// NewServer creates a server listening on addr, backed by the given
// storage and alert engine.
func NewServer(addr string, storage service.Storage, alertEngine *engine.AlertEngine, logger *slog.Logger) *Server {
	s := &Server{
		storage: storage,
		engine:  alertEngine,
		logger:  logger,
		started: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/expenses", s.withRequestLog(s.handleExpenses))
	mux.HandleFunc("/budgets", s.withRequestLog(s.handleBudgets))
	mux.HandleFunc("/reports/monthly", s.withRequestLog(s.handleMonthlyReport))
	mux.HandleFunc("/reports/compare", s.withRequestLog(s.handleCompare))
	mux.HandleFunc("/alerts", s.withRequestLog(s.handleAlerts))
	mux.HandleFunc("/healthz", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s
}

// Handler returns the server's root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe starts serving requests. It blocks until the server
// stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server, waiting for in-flight
// requests up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// withRequestLog logs each request with its duration and status.
func (s *Server) withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
