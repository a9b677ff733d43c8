// Command initstore creates the tables for the configured store backend.
// Running it again is a no-op.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"eventcrm/config"
	"eventcrm/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	backend, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer backend.Close()

	if backend.Provisioner == nil {
		logger.Info("backend needs no provisioning", "backend", cfg.StoreBackend)
		return
	}
	if err := backend.Provision(ctx); err != nil {
		logger.Error("failed to provision store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	logger.Info("store provisioned", "backend", cfg.StoreBackend, "collections", repository.Collections)
}
