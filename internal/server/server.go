// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"sentilytics/internal/adapter/events"
	"sentilytics/internal/config"
	"sentilytics/internal/domain/analysis"
	"sentilytics/internal/ratelimit"
	"sentilytics/internal/server/handlers"
	"sentilytics/internal/service/listening"
	"sentilytics/pkg/logger"
)

// Dependencies are the services the HTTP layer is wired to
type Dependencies struct {
	Sessions *listening.Manager
	Runs     analysis.RunRecorder
	Stream   events.Stream
	Limiter  ratelimit.Limiter
	Logger   logger.Logger
}

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(cfg config.ServerConfig, deps Dependencies) *Server {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(deps.Logger))
	router.Use(middleware.Recoverer)

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	sessionHandler := handlers.NewSessionHandler(deps.Sessions, deps.Limiter, deps.Logger)
	runHandler := handlers.NewRunHandler(deps.Runs, deps.Logger)

	// Routes
	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		// API version
		r.Route("/v1", func(r chi.Router) {
			// Sessions API
			r.Route("/sessions", func(r chi.Router) {
				r.Post("/", sessionHandler.CreateSession)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", sessionHandler.GetSession)
					r.Delete("/", sessionHandler.DeleteSession)
					r.Put("/query", sessionHandler.SetQuery)
					r.Post("/analyze", sessionHandler.Analyze)
					r.Put("/filters", sessionHandler.SetFilters)
					r.Post("/filters/reset", sessionHandler.ResetFilters)
					r.Put("/auto-refresh", sessionHandler.SetAutoRefresh)
				})
			})

			// Run history
			r.Get("/runs", runHandler.ListRuns)
		})
	})

	// WebSocket endpoint for live views
	if deps.Stream != nil {
		router.Get("/ws/sessions/{id}", handlers.ViewWebSocketHandler(deps.Sessions, deps.Stream, deps.Logger))
	}

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// requestLogger routes chi access logs through the slog handler when one is
// available
func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	sl, ok := log.(interface{ Slog() *slog.Logger })
	if !ok {
		return middleware.Logger
	}
	return middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(sl.Slog().Handler(), slog.LevelInfo),
		NoColor: true,
	})
}
