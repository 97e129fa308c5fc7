package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/api"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/application/service"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/config"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/infrastructure/storage"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/observability"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()

	cfg := config.LoadOrEnvWithPath(*configPath)
	logger := observability.NewLogger(cfg.Observability.Logging)

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Error("failed to open ledger database", "path", cfg.Storage.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	datasets := service.NewDatasetService(store, cfg.Dataset, logger)

	// Warm the snapshot so the first request does not pay for the load.
	if snap, err := datasets.Snapshot(); err != nil {
		logger.Warn("initial dataset load failed, serving lazily", "error", err)
	} else {
		logger.Info("dataset loaded", "transactions", snap.Len())
	}

	server := api.NewServer(*cfg, datasets, store, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("received shutdown signal", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}
