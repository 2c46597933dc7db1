// Package server exposes the assessment API over HTTP: classification,
// active thresholds, the glossary, and the usual health and metrics
// endpoints. It is designed to sit behind a browser UI, so CORS is part of
// the router.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/agriprofessor/soiladvisor/internal/classifier"
	"github.com/agriprofessor/soiladvisor/internal/observability"
)

// Options configures the HTTP server.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// RateLimitRPS caps inbound requests per second across all clients.
	// Zero disables limiting.
	RateLimitRPS float64
	// CORSOrigins lists allowed origins for browser clients.
	CORSOrigins []string
}

// Server wraps the HTTP listener around a classifier.
type Server struct {
	httpServer *http.Server
	classifier *classifier.Classifier
	metrics    *observability.Metrics
	clock      clockwork.Clock
}

// New assembles the router and returns a server ready to Start.
func New(opts Options, cls *classifier.Classifier, metrics *observability.Metrics, clock clockwork.Clock) *Server {
	s := &Server{
		classifier: cls,
		metrics:    metrics,
		clock:      clock,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	if opts.RateLimitRPS > 0 {
		r.Use(rateLimit(opts.RateLimitRPS))
	}

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/assessments", s.handleAssess)
		r.Get("/thresholds", s.handleThresholds)
		r.Get("/glossary", s.handleGlossary)
	})

	s.httpServer = &http.Server{
		Addr:         opts.Addr,
		Handler:      r,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	zap.L().Info("http server starting", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
