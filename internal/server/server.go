// Package server exposes the facet engine over HTTP: a JSON evaluation
// endpoint, category listing, health, and Prometheus metrics. All request
// state is rebuilt per request; the shared engine and catalog are read-only.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aigentincubator/sales-ctonet/internal/facet"
	"github.com/aigentincubator/sales-ctonet/internal/version"
)

// Server is the hardware selector HTTP server.
type Server struct {
	httpServer *http.Server
	engine     *facet.Engine
	logger     *zap.Logger
	mux        *http.ServeMux
	metrics    *metrics
}

// New creates a Server serving the given engine on addr.
func New(addr string, engine *facet.Engine, logger *zap.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		engine:  engine,
		logger:  logger,
		mux:     mux,
		metrics: newMetrics(),
	}

	s.registerRoutes()
	return s
}

// registerRoutes sets up the API surface.
func (s *Server) registerRoutes() {
	s.mux.Handle("GET /api/v1/health", s.instrument("health", s.handleHealth))
	s.mux.Handle("GET /api/v1/categories", s.instrument("categories", s.handleCategories))
	s.mux.Handle("GET /api/v1/products", s.instrument("products", s.handleProducts))
	s.mux.Handle("GET /metrics", s.metrics.handler())
}

// instrument wraps a handler with access logging and request metrics. Each
// request gets a uuid carried in the log line and the response header.
func (s *Server) instrument(route string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.New().String()
		w.Header().Set("X-Request-ID", reqID)

		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		h(rec, r)

		elapsed := time.Since(start)
		s.metrics.observe(route, rec.code, elapsed)
		s.logger.Debug("request",
			zap.String("request_id", reqID),
			zap.String("route", route),
			zap.String("path", r.URL.RequestURI()),
			zap.Int("status", rec.code),
			zap.Duration("elapsed", elapsed),
		)
	})
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "ctonet",
		"version": version.Map(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Ctonet-Version", version.Short())
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
