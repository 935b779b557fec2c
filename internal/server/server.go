// Package server exposes the observability endpoints: liveness, readiness
// and Prometheus metrics. It serves no user-facing UI.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const readinessTimeout = 5 * time.Second

// Server wraps the echo instance serving /health and /metrics.
type Server struct {
	echo      *echo.Echo
	addr      string
	startTime time.Time
	ready     func(ctx context.Context) error
}

// New creates the observability server. ready is invoked by the readiness
// probe; a nil ready means always ready.
func New(addr string, ready func(ctx context.Context) error) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:      e,
		addr:      addr,
		startTime: time.Now(),
		ready:     ready,
	}

	e.GET("/health/live", s.handleLiveness)
	e.GET("/health/ready", s.handleReadiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return s
}

// Start blocks serving until Shutdown is called.
func (s *Server) Start() error {
	if err := s.echo.Start(s.addr); err != nil {
		return fmt.Errorf("observability server: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleLiveness(c echo.Context) error {
	uptime := time.Since(s.startTime).Seconds()
	return c.JSON(200, map[string]any{
		"status": "ok",
		"uptime": uptime,
	})
}

func (s *Server) handleReadiness(c echo.Context) error {
	if s.ready == nil {
		return c.JSON(200, map[string]string{"status": "ready"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	if err := s.ready(ctx); err != nil {
		return c.JSON(503, map[string]any{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}
	return c.JSON(200, map[string]string{"status": "ready"})
}
