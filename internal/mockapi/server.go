// ============================================================================
// LogMaster - Log Monitoring Dashboard
// ============================================================================
//
// Package:     mockapi
// Description: Fixture backend serving both LogMaster REST surfaces
// Author:      LogMaster Contributors
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package mockapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/logmaster/dashboard/internal/api"
	"github.com/logmaster/dashboard/internal/models"
	"github.com/logmaster/dashboard/pkg/core/version"
	"github.com/rs/zerolog"
)

// DefaultLogCount is the size of the generated dataset
const DefaultLogCount = 500

// Options configures a Server
type Options struct {
	Fixture *Fixture
	Metrics MetricsSource
	Logger  zerolog.Logger
	// AccessLog enables the echo request logger
	AccessLog bool
}

// Server is the mock LogMaster backend
type Server struct {
	echo    *echo.Echo
	fixture *Fixture
	metrics MetricsSource
	log     zerolog.Logger

	mu       sync.RWMutex
	failures map[string]int
}

// New creates a server with its routes registered
func New(opts Options) *Server {
	if opts.Fixture == nil {
		opts.Fixture = NewFixture(DefaultLogCount, nil)
	}
	if opts.Metrics == nil {
		opts.Metrics = DefaultStaticMetrics()
	}

	s := &Server{
		echo:     echo.New(),
		fixture:  opts.Fixture,
		metrics:  opts.Metrics,
		log:      opts.Logger,
		failures: make(map[string]int),
	}
	s.setupRoutes(opts.AccessLog)
	return s
}

// Handler exposes the server for httptest
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Fixture returns the served dataset
func (s *Server) Fixture() *Fixture {
	return s.fixture
}

// Start listens on addr until Shutdown
func (s *Server) Start(addr string) error {
	s.log.Info().Str("addr", addr).Str("version", version.MockAPI).Msg("Starting mock LogMaster API")
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("mock api: %w", err)
	}
	return nil
}

// Shutdown stops the listener gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Stopping mock LogMaster API")
	return s.echo.Shutdown(ctx)
}

// Fail makes every request to path answer with status until Recover
func (s *Server) Fail(path string, status int) {
	s.mu.Lock()
	s.failures[path] = status
	s.mu.Unlock()
}

// Recover clears the failure of path
func (s *Server) Recover(path string) {
	s.mu.Lock()
	delete(s.failures, path)
	s.mu.Unlock()
}

func (s *Server) setupRoutes(accessLog bool) {
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.HTTPErrorHandler = ErrorHandler

	if accessLog {
		s.echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Format: "${time_rfc3339} ${status} ${method} ${uri} (${latency_human})\n",
		}))
	}
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		RequestIDHandler: func(c echo.Context, id string) {
			s.log.Debug().Str("request_id", id).Str("path", c.Request().URL.Path).Msg("mock request")
		},
	}))
	s.echo.Use(s.injectFailures)

	s.echo.GET("/health", s.health)

	v1 := s.echo.Group("/api/v1")
	v1.GET("/stats", s.stats)
	v1.GET("/logs", s.logs)
	v1.GET("/logs/recent", s.recentLogs)
	v1.GET("/system/status", s.systemStatus)
	v1.GET("/system/metrics", s.systemMetrics)
	v1.GET("/files/structure", s.fileStructure)

	legacy := s.echo.Group("/api")
	legacy.GET("/stats/overview", s.overview)
	legacy.GET("/logs/recent", s.legacyRecentLogs)
	legacy.GET("/devices", s.devices)
	legacy.GET("/signatures/status", s.signatures)
	legacy.GET("/archives", s.archives)
	legacy.GET("/compliance/score", s.complianceScore)
	legacy.GET("/system/status", s.serviceHealth)
	legacy.POST("/reports/generate", s.generateReport)
}

func (s *Server) injectFailures(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.RLock()
		status, ok := s.failures[c.Request().URL.Path]
		s.mu.RUnlock()
		if ok {
			return &APIError{Status: status, Code: "INJECTED_FAILURE", Message: http.StatusText(status)}
		}
		return next(c)
	}
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    models.HealthHealthy,
		"service":   "logmaster-mockapi",
		"version":   version.MockAPI,
		"timestamp": time.Now(),
	})
}

func (s *Server) stats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.fixture.Stats(s.metrics.Metrics(c.Request().Context())))
}

func (s *Server) logs(c echo.Context) error {
	limit, err := intParam(c, "limit", 100)
	if err != nil {
		return err
	}
	if limit > 1000 {
		limit = 1000
	}

	logs := s.fixture.Logs(LogQuery{
		IP:        c.QueryParam("ip"),
		Interface: c.QueryParam("interface"),
		Severity:  c.QueryParam("severity"),
		Search:    c.QueryParam("search"),
		Limit:     limit,
	})
	return c.JSON(http.StatusOK, models.LogsResponse{
		Logs:  logs,
		Total: int64(len(logs)),
		Page:  1,
		Limit: limit,
	})
}

func (s *Server) recentLogs(c echo.Context) error {
	logs := s.fixture.Logs(LogQuery{Limit: 10})
	return c.JSON(http.StatusOK, models.LogsResponse{Logs: logs, Count: len(logs)})
}

func (s *Server) systemStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, models.SystemStatus{
		Status:       models.HealthHealthy,
		ConfigStatus: "loaded",
		LogDirectory: "/var/log/logmaster",
		LastCheck:    time.Now(),
		Services: map[string]string{
			"rsyslog":       models.DeviceActive,
			"postgresql":    models.DeviceActive,
			"redis":         models.DeviceActive,
			"elasticsearch": models.DeviceInactive,
			"grafana":       models.DeviceActive,
		},
	})
}

func (s *Server) systemMetrics(c echo.Context) error {
	return c.JSON(http.StatusOK, s.metrics.Metrics(c.Request().Context()))
}

func (s *Server) fileStructure(c echo.Context) error {
	return c.JSON(http.StatusOK, s.fixture.FileStructure())
}

func (s *Server) overview(c echo.Context) error {
	return c.JSON(http.StatusOK, s.fixture.Overview(s.metrics.Disk(c.Request().Context())))
}

func (s *Server) legacyRecentLogs(c echo.Context) error {
	limit, err := intParam(c, "limit", 100)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.fixture.RecentActivity(c.QueryParam("device_id"), limit))
}

func (s *Server) devices(c echo.Context) error {
	return c.JSON(http.StatusOK, s.fixture.Devices())
}

func (s *Server) signatures(c echo.Context) error {
	days, err := intParam(c, "days", 7)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.fixture.Signatures(days))
}

func (s *Server) archives(c echo.Context) error {
	return c.JSON(http.StatusOK, s.fixture.Archives())
}

func (s *Server) complianceScore(c echo.Context) error {
	days, err := intParam(c, "days", 30)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.fixture.ComplianceScore(days))
}

func (s *Server) serviceHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, models.ServiceHealth{
		"database":           "healthy",
		"log_directory":      "healthy",
		"service_postgresql": models.DeviceActive,
		"service_rsyslog":    models.DeviceActive,
		"service_nginx":      models.DeviceInactive,
	})
}

func (s *Server) generateReport(c echo.Context) error {
	req := models.ReportRequest{
		ReportType: c.FormValue("report_type"),
		StartDate:  c.FormValue("start_date"),
		EndDate:    c.FormValue("end_date"),
	}
	switch {
	case req.ReportType == "":
		return NewValidationError("report_type")
	case !validDate(req.StartDate):
		return NewValidationError("start_date")
	case !validDate(req.EndDate):
		return NewValidationError("end_date")
	}

	result := s.fixture.GenerateReport(req)
	s.log.Info().Str("type", req.ReportType).Str("period", result.Period).Msg("Generated report")
	return c.JSON(http.StatusOK, result)
}

func intParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, NewBadRequestError(fmt.Sprintf("invalid %s", name), err)
	}
	return n, nil
}

func validDate(s string) bool {
	_, err := time.Parse(api.DateLayout, s)
	return err == nil
}
