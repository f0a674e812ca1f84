// Package http exposes the screening service over a REST API for serve
// mode: screening, batch screening, solubility prediction, similarity
// ranking, model introspection, health, and Prometheus metrics.
package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/molscreen/molscreen/internal/application/screening"
	"github.com/molscreen/molscreen/internal/config"
	"github.com/molscreen/molscreen/internal/infrastructure/logging"
	"github.com/molscreen/molscreen/internal/infrastructure/metrics"
	"github.com/molscreen/molscreen/internal/infrastructure/modelstore"
)

// Server is the serve-mode HTTP server.
type Server struct {
	cfg     config.ServerConfig
	engine  *gin.Engine
	srv     *http.Server
	logger  logging.Logger
	metrics *metrics.Metrics
}

// Deps aggregates everything the route tree needs.
type Deps struct {
	Service screening.Service
	Store   *modelstore.Store
	Logger  logging.Logger
	Metrics *metrics.Metrics
}

// New builds the server and its route tree.
func New(cfg config.ServerConfig, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = logging.NewNopLogger()
	}
	gin.SetMode(ginMode(cfg.Mode))

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(deps.Logger))
	if deps.Metrics != nil {
		engine.Use(observeRequests(deps.Metrics))
	}

	h := &handler{
		service: deps.Service,
		store:   deps.Store,
		metrics: deps.Metrics,
	}
	registerRoutes(engine, h, cfg, deps)

	return &Server{
		cfg:     cfg,
		engine:  engine,
		logger:  deps.Logger,
		metrics: deps.Metrics,
		srv: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      engine,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

func ginMode(mode string) string {
	switch mode {
	case "debug":
		return gin.DebugMode
	case "test":
		return gin.TestMode
	default:
		return gin.ReleaseMode
	}
}

// Handler exposes the route tree for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks serving requests until Shutdown is called or the listener
// fails.
func (s *Server) Start() error {
	s.logger.Info("http server listening", logging.Int("port", s.cfg.Port))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	timeout := s.cfg.ShutdownTimeout
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	s.logger.Info("http server shutting down")
	return s.srv.Shutdown(ctx)
}

func registerRoutes(engine *gin.Engine, h *handler, cfg config.ServerConfig, deps Deps) {
	engine.GET("/healthz", h.healthz)
	engine.GET("/readyz", h.readyz)
	if cfg.EnableMetrics && deps.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	v1 := engine.Group("/api/v1")
	{
		v1.POST("/screen", h.screen)
		v1.POST("/screen/batch", h.screenBatch)
		v1.POST("/predict", h.predict)
		v1.POST("/similar", h.similar)
		v1.GET("/model", h.modelInfo)
	}
}
