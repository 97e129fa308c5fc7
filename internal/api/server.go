// Package api wires the HTTP surface: router construction, middleware
// and graceful lifecycle around the allocation and usage handlers.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/api/handlers"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/api/middleware"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/application/service"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/config"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/infrastructure/storage"
)

// Server is the HTTP API server.
type Server struct {
	cfg    config.Config
	logger *slog.Logger
	router *gin.Engine
	http   *http.Server
}

// NewServer builds the router and handlers over the given repository and
// dataset service.
func NewServer(cfg config.Config, datasets *service.DatasetService, repo storage.Repository, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.API.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	s := &Server{
		cfg:    cfg,
		logger: logger,
		router: router,
	}
	s.registerRoutes(datasets, repo)
	return s
}

func (s *Server) registerRoutes(datasets *service.DatasetService, repo storage.Repository) {
	health := handlers.NewHealthHandler()
	proportions := handlers.NewProportionsHandler(datasets, s.cfg.Allocation.MinProportionPercent)
	allocations := handlers.NewAllocationsHandler(datasets)
	transactions := handlers.NewTransactionsHandler(datasets, repo)
	usage := handlers.NewUsageHandler(datasets)
	stats := handlers.NewStatsHandler(datasets)
	meta := handlers.NewMetaHandler(datasets)
	refresh := handlers.NewRefreshHandler(datasets)

	// Health is reachable at the root for probes as well as under /api.
	s.router.GET("/health", health.Get)

	api := s.router.Group("/api")
	{
		api.GET("/health", health.Get)

		api.GET("/proportions", proportions.Get)
		api.POST("/allocations", allocations.Create)

		api.GET("/transactions", transactions.List)
		api.POST("/transactions", transactions.Create)

		api.GET("/usage/overview", usage.Overview)
		api.GET("/usage/monthly", usage.Monthly)
		api.GET("/usage/top-items", usage.TopItems)
		api.GET("/stats", stats.Get)

		api.GET("/items", meta.Items)
		api.GET("/departments", meta.Departments)
		api.GET("/categories", meta.Categories)

		api.POST("/dataset/refresh", refresh.Refresh)
	}
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start begins serving and blocks until the listener fails or the server
// is shut down.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.API.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "port", s.cfg.API.Port)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	s.logger.Info("shutting down API server")
	return s.http.Shutdown(ctx)
}
