// Package app wires configuration, logging and the router into a running
// process. Both server binaries go through Main.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/IgnacioJofreGrra/deceroacien-core/internal/config"
	"github.com/IgnacioJofreGrra/deceroacien-core/internal/gcp"
	"github.com/IgnacioJofreGrra/deceroacien-core/internal/logging"
	"github.com/IgnacioJofreGrra/deceroacien-core/internal/server"
)

// Main runs the server until SIGINT or SIGTERM and returns the exit code.
func Main(args []string, apiOnly bool) int {
	cfg, err := config.Load(args, apiOnly)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	logger := logging.New(cfg.LogLevel)
	logger.Info("Configuration loaded",
		"gcp_project_id", cfg.GCPProjectID,
		"supabase_url_set", cfg.SupabaseURL != "",
		"supabase_anon_key_set", cfg.SupabaseAnonKey != "",
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Preflight {
		if err := gcp.Preflight(ctx, cfg.GCPProjectID, logger); err != nil {
			logger.Warn("GCP preflight failed", "error", err)
		}
	}

	if err := server.New(cfg, logger).Run(ctx); err != nil {
		logger.Error("Server failed", "error", err)
		return 1
	}

	logger.Info("Main process exiting")
	return 0
}
