// Package api exposes the bot's HTTP surface: the Telegram webhook endpoint
// and a health check for load balancers.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/doorasi/closingbot/internal/api/handlers"
	"github.com/doorasi/closingbot/internal/api/middleware"
	"github.com/doorasi/closingbot/internal/application/intake"
)

// Config holds HTTP server configuration.
type Config struct {
	Port int
}

// Server is the webhook HTTP server.
type Server struct {
	config     Config
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates the webhook server over the intake service.
func NewServer(cfg Config, svc *intake.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config: cfg,
		router: chi.NewRouter(),
		logger: logger,
	}

	s.router.Use(middleware.Logging(logger))

	s.router.Get("/healthz", handlers.NewHealthHandler().ServeHTTP)
	s.router.Post("/webhook", handlers.NewWebhookHandler(svc, logger).ServeHTTP)

	return s
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting webhook server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down webhook server")

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}
