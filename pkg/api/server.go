// Package api implements the HTTP surface: run submission, cancellation,
// run inspection, the resumable event stream, and operational endpoints.
package api

import (
	"context"
	"net/http"
	"time"

	echo "github.com/labstack/echo/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/runforge/agentd/pkg/config"
	"github.com/runforge/agentd/pkg/coordinator"
	"github.com/runforge/agentd/pkg/database"
	"github.com/runforge/agentd/pkg/queue"
	"github.com/runforge/agentd/pkg/services"
	"github.com/runforge/agentd/pkg/stream"
)

// Server wires the HTTP handlers to the run service, the coordinator, and
// the worker pool.
type Server struct {
	echo       *echo.Echo
	httpServer *http.Server

	cfg          *config.Settings
	dbClient     *database.Client
	runService   *services.RunService
	coord        *coordinator.RedisCoordinator
	workerPool   *queue.WorkerPool
	streamReader *stream.Reader
}

// NewServer creates the API server and registers all routes.
func NewServer(cfg *config.Settings, dbClient *database.Client, runService *services.RunService, coord *coordinator.RedisCoordinator, workerPool *queue.WorkerPool) *Server {
	s := &Server{
		echo:         echo.New(),
		cfg:          cfg,
		dbClient:     dbClient,
		runService:   runService,
		coord:        coord,
		workerPool:   workerPool,
		streamReader: stream.NewReader(runService, coordSubscriber{coord: coord}, cfg.Stream),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	e := s.echo

	e.Use(securityHeaders())

	// Probe and scrape endpoints stay open: liveness checks and Prometheus
	// carry no credentials.
	e.GET("/health", s.healthHandler)
	e.GET("/health/detail", s.healthDetailHandler)

	metricsHandler := promhttp.Handler()
	e.GET("/metrics", func(c *echo.Context) error {
		metricsHandler.ServeHTTP(c.Response(), c.Request())
		return nil
	})

	e.POST("/runs", requireBearer(s.createRunHandler))
	e.GET("/runs", requireBearer(s.listRunsHandler))
	e.GET("/runs/:id", requireBearer(s.getRunHandler))
	e.POST("/runs/:id/cancel", requireBearer(s.cancelRunHandler))
	e.GET("/runs/:id/events", requireBearer(s.streamEventsHandler))
}

// Start begins serving on the given address. It blocks until the server
// stops.
func (s *Server) Start(addr string) error {
	// The server carries no write timeout: event streams stay open for as
	// long as the client follows a run.
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.echo,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests up
// to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
