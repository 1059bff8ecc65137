package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parcelfs/parcelfs/internal/config"
	"github.com/parcelfs/parcelfs/internal/logging"
	"github.com/parcelfs/parcelfs/internal/monitoring"
	"github.com/parcelfs/parcelfs/internal/providers/filesystem"
	"github.com/parcelfs/parcelfs/internal/service"
	"github.com/parcelfs/parcelfs/internal/shared/paths"
	"github.com/parcelfs/parcelfs/internal/storage"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	registry *service.Registry
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
	srv      *http.Server
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Development = cfg.Logging.Development
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("Initializing server",
		zap.String("port", cfg.Server.Port),
		zap.String("app", cfg.App.Name),
	)

	var metrics *monitoring.Metrics
	if cfg.Metrics.Enabled {
		metrics = monitoring.NewMetrics()
		logger.Info("Metrics collection initialized")
	}

	dirs := paths.Resolve(cfg.App.Name)
	if err := dirs.EnsureAll(); err != nil {
		return nil, fmt.Errorf("failed to prepare application directories: %w", err)
	}
	logger.Info("Application directories ready",
		zap.String("cache", dirs.Cache),
		zap.String("data", dirs.Data),
		zap.String("temp", dirs.Temp),
	)

	store := storage.NewDiskStore()
	registry := service.NewRegistry()
	fsProvider := filesystem.NewProvider(store, dirs, logger.Named("filesystem"))
	if err := registry.Register(fsProvider); err != nil {
		return nil, fmt.Errorf("failed to register filesystem provider: %w", err)
	}
	logger.Info("Registered filesystem provider",
		zap.Int("tools", len(fsProvider.Definition().Tools)),
	)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(logger.Named("http")))
	if metrics != nil {
		router.Use(monitoring.Middleware(metrics))
	}
	router.Use(CORS(DefaultCORSConfig()))

	s := &Server{
		router:   router,
		registry: registry,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}
	s.registerRoutes()

	logger.Info("Server initialized")
	return s, nil
}

// Run starts the HTTP server and blocks until shutdown
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	defer s.logger.Sync()

	if s.metrics != nil {
		s.metrics.Close()
	}
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
