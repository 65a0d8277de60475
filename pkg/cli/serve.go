/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/discovery-preflight/pkg/api"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the validation API over HTTP",
		Description: `Starts the HTTP API:
  POST /v1/validate  run the pipeline for {"projectDir": "...", "dryRun": false}
  GET  /health       liveness
  GET  /ready        readiness
  GET  /metrics      Prometheus metrics

Server settings come from the server section of the tool configuration.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "listen port; overrides configuration",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if p := cmd.Int("port"); p > 0 {
				cfg.Server.Port = p
			}
			return api.Serve(ctx, cfg)
		},
	}
}
