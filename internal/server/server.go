package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"trading-journal-go/internal/journal"
)

// Server is the journal's HTTP API server.
type Server struct {
	router  *chi.Mux
	server  *http.Server
	logger  *zap.Logger
	service *journal.Service
}

// New creates the API server on the given port.
func New(port int, logger *zap.Logger, service *journal.Service) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		logger:  logger.Named("api-server"),
		service: service,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Timeout(30 * time.Second))

	// The journal UI runs in a browser against this local API.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/trades", func(r chi.Router) {
			r.Get("/", s.handleListTrades)
			r.Post("/", s.handleCreateTrade)
			r.Post("/preview", s.handlePreviewTrade)
			r.Delete("/{id}", s.handleDeleteTrade)
			r.Get("/export.csv", s.handleExportCSV)
			r.Get("/export.json", s.handleExportJSON)
			r.Post("/import", s.handleImportTrades)
		})

		r.Route("/alerts", func(r chi.Router) {
			r.Get("/", s.handleListAlerts)
			r.Post("/", s.handleCreateAlert)
			r.Delete("/{id}", s.handleDeleteAlert)
			r.Post("/{id}/trigger", s.handleTriggerAlert)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", s.handleGetSettings)
			r.Put("/", s.handleUpdateSettings)
			r.Post("/push", s.handleTogglePush)
		})

		r.Route("/pairs", func(r chi.Router) {
			r.Get("/", s.handleListPairs)
			r.Post("/", s.handleAddPair)
		})

		r.Get("/conditions/{action}", s.handleSeedConditions)
		r.Get("/statistics", s.handleStatistics)
	})
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("Starting API server", zap.String("address", s.server.Addr))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Stopping API server...")
	return s.server.Shutdown(ctx)
}

// Handler exposes the router, used by tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
