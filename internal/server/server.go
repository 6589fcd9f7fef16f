package server

import (
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/logtide/logtide/internal/config"
	"github.com/logtide/logtide/internal/logging"
	"github.com/logtide/logtide/internal/monitoring"
	"github.com/logtide/logtide/internal/pipeline"
	"github.com/logtide/logtide/internal/sink"
	"github.com/logtide/logtide/internal/source"
	"github.com/logtide/logtide/internal/ws"
)

// runFactory builds one pipeline run plus its cleanup function.
type runFactory func() (*pipeline.Pipeline, func() error)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	router  *gin.Engine
	cfg     *config.Config
	logger  *logging.Logger
	metrics *monitoring.Metrics
	src     source.Source
	pool    *sql.DB
	newRun  runFactory
}

// NewServer creates a server instance with real collaborators: the
// Docker log source and the shared ClickHouse pool.
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	src, err := source.NewDocker(cfg.Docker.Host, logger)
	if err != nil {
		return nil, fmt.Errorf("init docker source: %w", err)
	}

	pool, err := sink.OpenPool(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store pool: %w", err)
	}

	metrics := monitoring.NewMetrics()

	s := newServer(cfg, logger, metrics, src, pool, nil)
	s.newRun = s.buildRun
	s.routes()
	return s, nil
}

// newServer wires a server without touching external systems. Tests
// inject their own source and run factory.
func newServer(cfg *config.Config, logger *logging.Logger, metrics *monitoring.Metrics, src source.Source, pool *sql.DB, newRun runFactory) *Server {
	gin.SetMode(gin.ReleaseMode)
	return &Server{
		router:  gin.New(),
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		src:     src,
		pool:    pool,
		newRun:  newRun,
	}
}

// buildRun assembles one pipeline run: fresh broker and store sinks
// behind a dispatcher. The store sink shares the pool; the broker
// writer belongs to the run and is closed by the cleanup function.
func (s *Server) buildRun() (*pipeline.Pipeline, func() error) {
	broker := sink.NewBroker(s.cfg.Broker)
	store := sink.NewStore(s.pool, s.cfg.Store.Table)
	dispatcher := sink.NewDispatcher(s.logger, s.metrics, broker, store)
	return pipeline.New(s.src, dispatcher, s.logger, s.metrics), dispatcher.Close
}

func (s *Server) routes() {
	s.router.Use(gin.Recovery())
	s.router.Use(monitoring.Middleware(s.metrics))
	s.router.Use(corsMiddleware())

	s.router.GET("/", s.root)
	s.router.GET("/health", s.health)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/logs", s.startTail)

	wsHandler := ws.NewHandler(ws.RunFactory(s.newRun), s.logger, s.metrics)
	s.router.GET("/logs/stream", func(c *gin.Context) {
		sourceID, win, ok := s.tailParams(c)
		if !ok {
			return
		}
		wsHandler.Stream(c, sourceID, win)
	})
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := s.cfg.Server.Host + ":" + s.cfg.Server.Port
	s.logger.Info("starting log routing service on " + addr)
	return s.router.Run(addr)
}

// Close cleans up shared resources.
func (s *Server) Close() error {
	if closer, ok := s.src.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			s.logger.Warn("error closing docker source: " + err.Error())
		}
	}
	if s.pool != nil {
		return s.pool.Close()
	}
	return nil
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
