package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"absim/app"
	"absim/internal"
)

// Server exposes the simulation service over JSON
type Server struct {
	router     *gin.Engine
	simulation *app.SimulationService
	metrics    *Metrics
	logger     *internal.Logger
}

// NewServer creates a server in the given gin mode ("debug", "release" or
// "test")
func NewServer(simulation *app.SimulationService, logger *internal.Logger, mode string) *Server {
	if mode != "" {
		gin.SetMode(mode)
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	s := &Server{
		router:     gin.New(),
		simulation: simulation,
		metrics:    NewMetrics(),
		logger:     logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Metrics returns the server's run metrics
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Router returns the underlying engine, for tests and embedding
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	})
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))

	api := s.router.Group("/api")
	api.GET("/simulate", s.handleSimulate)
	api.GET("/evaluate", s.handleEvaluate)
	api.GET("/describe", s.handleDescribe)
	api.GET("/export", s.handleExport)
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting absim API on http://%s", addr)
	return s.router.Run(addr)
}
