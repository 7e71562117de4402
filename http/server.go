// Package http exposes the underwriting calculator, projections and listings
// over a JSON API.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"deal-underwriter/repository"
	"deal-underwriter/service"
)

type Config struct {
	Log          zerolog.Logger
	Port         int
	Underwriting *service.UnderwritingService
	Projections  *service.ProjectionService
	Listings     *service.ListingService
	Cache        repository.CacheRepository // nil disables response caching
	CacheTTL     time.Duration
	RateLimiter  *RateLimiter // nil disables rate limiting
}

type Server struct {
	router   *chi.Mux
	server   *http.Server
	listings *service.ListingService
	log      zerolog.Logger
}

func NewServer(cfg Config) *Server {
	log := cfg.Log.With().Str("component", "http").Logger()

	s := &Server{
		router:   chi.NewRouter(),
		listings: cfg.Listings,
		log:      log,
	}

	cache := newResponseCache(cfg.Cache, cfg.CacheTTL, log)
	underwriting := NewUnderwritingHandler(cfg.Underwriting, cache, log)
	projections := NewProjectionHandler(cfg.Projections, cache, log)
	listings := NewListingHandler(cfg.Listings, log)

	s.setupMiddleware()
	s.setupRoutes(underwriting, projections, listings, cfg.RateLimiter)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(40 * time.Second))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Cache", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes(
	underwriting *UnderwritingHandler,
	projections *ProjectionHandler,
	listings *ListingHandler,
	limiter *RateLimiter,
) {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/listings", func(r chi.Router) {
			r.Get("/", listings.List)
			r.Get("/{id}", listings.Get)
			r.Get("/{id}/defaults", listings.Defaults)
		})

		// Computation endpoints
		r.Group(func(r chi.Router) {
			if limiter != nil {
				r.Use(RateLimitMiddleware(limiter, s.log))
			}
			r.Post("/deals/underwrite", underwriting.Underwrite)
			r.Post("/projections", projections.Project)
		})
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.log, http.StatusOK, map[string]interface{}{
		"status":             "ok",
		"listings":           s.listings.Count(),
		"listings_loaded_at": s.listings.LoadedAt(),
	})
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called. It returns nil after a clean shutdown.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
