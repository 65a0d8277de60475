/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/discovery-preflight/pkg/config"
	"github.com/NVIDIA/discovery-preflight/pkg/logging"
	"github.com/NVIDIA/discovery-preflight/pkg/server"
	pipeline "github.com/NVIDIA/discovery-preflight/pkg/validator"
)

const (
	name           = "preflight-api-server"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/discovery-preflight/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Routes returns the API handlers keyed by path.
func Routes(h *ValidateHandler) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/validate": h.HandleValidate,
	}
}

// Serve starts the API server and blocks until shutdown.
// It configures logging, opens the host table, sets up routes, and handles
// graceful shutdown.
func Serve(ctx context.Context, cfg *config.Config) error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	syncer, closeStore, err := pipeline.OpenSynchronizer(cfg.Hosts)
	if err != nil {
		return fmt.Errorf("failed to open host table: %w", err)
	}
	defer func() {
		if cerr := closeStore(); cerr != nil {
			slog.Warn("failed to close host table", "error", cerr)
		}
	}()

	opts := append(pipeline.OptionsFromConfig(cfg),
		pipeline.WithVersion(version),
		pipeline.WithSynchronizer(syncer),
	)

	// Create and run server
	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithConfig(server.FromSettings(cfg.Server)),
		server.WithHandler(Routes(NewValidateHandler(opts...))),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
