// Package web provides the HTTP server and handlers for the entry form.
package web

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/formdesk/internal/catalog"
	"github.com/JonMunkholm/formdesk/internal/config"
	"github.com/JonMunkholm/formdesk/internal/metrics"
	"github.com/JonMunkholm/formdesk/internal/web/middleware"
)

//go:embed static
var staticFiles embed.FS

// Server is the HTTP server for the entry form.
type Server struct {
	cfg      *config.Config
	options  *catalog.Catalog
	metrics  *metrics.Metrics
	sessions *SessionRegistry
	limiter  *middleware.RateLimiter
	router   *chi.Mux
	server   *http.Server
}

// NewServer creates a Server. It starts the session janitor and, when
// enabled, the rate limiter's cleanup; Shutdown stops both.
func NewServer(cfg *config.Config, options *catalog.Catalog, m *metrics.Metrics) *Server {
	s := &Server{
		cfg:      cfg,
		options:  options,
		metrics:  m,
		sessions: NewSessionRegistry(cfg.Session.IdleTimeout, cfg.Session.MaxSessions, m.ActiveSessions),
		router:   chi.NewRouter(),
	}
	s.sessions.StartJanitor(cfg.Session.SweepInterval)
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Latency(s.metrics.RequestLatency))
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(middleware.SecurityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		s.limiter = middleware.NewRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute)
		s.router.Use(s.limiter.Handler)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/api/options", s.handleAPIOptions)
	if s.cfg.Metrics.Enabled {
		s.router.Method(http.MethodGet, s.cfg.Metrics.Path, s.metrics.Handler())
	}

	s.router.Group(func(r chi.Router) {
		r.Use(s.withSession)

		// Page
		r.Get("/", s.handlePage)
		r.Post("/form", s.handleFormUpdate)
		r.Post("/form/submit", s.handleSubmit)
		r.Post("/form/cancel", s.handleCancel)
		r.Post("/entries/{id}/edit", s.handleEdit)
		r.Post("/entries/{id}/delete", s.handleDelete)

		// Export
		r.Get("/export.csv", s.handleExport)

		// API routes
		r.Route("/api", func(r chi.Router) {
			r.Get("/form", s.handleAPIForm)
			r.Get("/entries", s.handleAPIListEntries)
			r.Post("/entries", s.handleAPICreateEntry)
			r.Put("/entries/{id}", s.handleAPIUpdateEntry)
			r.Delete("/entries/{id}", s.handleAPIDeleteEntry)
			r.Get("/summary", s.handleAPISummary)
			r.Post("/validate", s.handleAPIValidate)
		})
	})
}

// Start begins listening for HTTP requests. It returns nil after Shutdown.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server and its background workers.
func (s *Server) Shutdown(ctx context.Context) error {
	defer s.sessions.Close()
	if s.limiter != nil {
		defer s.limiter.Stop()
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// handleHealth reports liveness and the number of page sessions.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}
