// Package server implements the interactive dashboard: a single-page app
// served over HTTP, backed by a JSON API that runs the pipeline on every
// selection.
//
// Routes:
//
//	GET /                      dashboard page
//	GET /api/system            system figure, legend and system names
//	GET /api/tables?system=S   table figure and details for S
//	GET /api/export            DOT, SVG or JSON export (scope, system, format)
//	GET /healthz               liveness probe
//	GET /metrics               Prometheus metrics
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/matzehuels/warehousemap/pkg/observability"
	"github.com/matzehuels/warehousemap/pkg/pipeline"
)

// Defaults.
const (
	DefaultPort     = 8050
	ShutdownTimeout = 10 * time.Second
)

// Config configures the dashboard server.
type Config struct {
	Host  string // listen host; empty listens on all interfaces
	Port  int
	Debug bool // debug-level logs and indented JSON
}

// Addr returns the listen address.
func (c Config) Addr() string {
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	return net.JoinHostPort(c.Host, fmt.Sprint(port))
}

// Server serves the dashboard for one dataset. The system view is computed
// once by New; table views are computed per request.
type Server struct {
	cfg      Config
	runner   *pipeline.Runner
	logger   *log.Logger
	system   *pipeline.SystemView
	registry *prometheus.Registry
	metrics  *Metrics
	page     *template.Template
}

// New creates a server, registers its metrics as the process-wide
// observability hooks and builds the system view.
func New(ctx context.Context, runner *pipeline.Runner, logger *log.Logger, cfg Config) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := NewMetrics(reg)
	observability.SetPipelineHooks(metrics)
	observability.SetHTTPHooks(metrics)

	page, err := parsePage()
	if err != nil {
		return nil, err
	}

	system, err := runner.SystemView(ctx)
	if err != nil {
		return nil, fmt.Errorf("build system view: %w", err)
	}

	return &Server{
		cfg:      cfg,
		runner:   runner,
		logger:   logger,
		system:   system,
		registry: reg,
		metrics:  metrics,
		page:     page,
	}, nil
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully
// within ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard listening", "url", "http://"+ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down dashboard")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
