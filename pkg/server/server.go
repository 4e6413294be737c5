// Package server exposes diagram parsing over HTTP.
//
// Routes:
//
//	POST /v1/parse     body: diagram file text
//	                   200 {"drawings": [...], "errors": [...], "hash": "...", "cached": bool}
//	                   "drawings" is omitted when the document is unreadable.
//	POST /v1/validate  body: one drawing object
//	                   200 {"valid": bool, "errors": [...]}
//	POST /v1/resolve   body: {"drawings": [...], "endpoint": {...}}
//	                   200 {"x": n, "y": n}, or 422 when the end point
//	                   cannot be resolved
//	GET  /healthz      200 {"status": "ok", "version": "...", "commit": "...", "date": "..."}
//
// Parse results go through the pipeline cache, keyed by body hash.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/vnav/pkg/observability"
	"github.com/matzehuels/vnav/pkg/pipeline"
	"github.com/matzehuels/vnav/pkg/schema"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 8 << 20

// Config configures a Server.
type Config struct {
	Addr    string
	Runner  *pipeline.Runner
	Options pipeline.Options
	Logger  *log.Logger
}

// Server is the HTTP API.
type Server struct {
	cfg      Config
	registry *schema.Registry
	router   chi.Router
	logger   *log.Logger
}

// New builds a server and its routes.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Options.Source == "" {
		cfg.Options.Source = "api"
	}

	s := &Server{
		cfg:      cfg,
		registry: cfg.Options.Parser().Registry,
		logger:   cfg.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json", "text/plain", "application/octet-stream"))
		r.Post("/parse", s.handleParse)
		r.Post("/validate", s.handleValidate)
		r.Post("/resolve", s.handleResolve)
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// instrument reports each request to the HTTP hooks and logs it.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		hooks.OnResponse(r.Context(), r.Method, route, ww.Status(), time.Since(start))
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start))
	})
}
