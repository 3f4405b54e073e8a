package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/wordvault/internal/adapter/rest"
	"github.com/eslsoft/wordvault/internal/infrastructure/config"
	"github.com/eslsoft/wordvault/internal/infrastructure/docstore"
)

// Server represents the application HTTP server
type Server struct {
	config *config.Config
	echo   *echo.Echo
	logger *logrus.Logger
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logrus.Logger, router *rest.Router) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	MustRegisterMetrics(registry)
	docstore.MustRegisterMetrics(registry)

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(RequestLogger(logger))
	e.Use(Metrics())

	e.GET("/healthz", healthz)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	router.Register(e)

	return &Server{
		config: cfg,
		echo:   e,
		logger: logger,
	}
}

func healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := s.config.ListenAddr()
	s.logger.Infof("HTTP server starting on %s", addr)

	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	if err := s.echo.Shutdown(ctx); err != nil {
		return err
	}

	s.logger.Info("Server shutdown complete")
	return nil
}
