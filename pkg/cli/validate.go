/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	pipeline "github.com/NVIDIA/discovery-preflight/pkg/validator"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Run the preflight pipeline for one or more project directories",
		Description: `Validates each project directory in order:
  - required configuration artifacts and credentials are present
  - the software manifest decodes to a mapping
  - the discovery mechanism is supported
  - the node mapping file is well formed (mapping mechanism only)
  - admin and BMC host entries are merged into the host table
  - telemetry sections are complete for every enabled feature

Projects run concurrently and share one host table. The command exits 1
when any project fails.

# Examples

  preflight validate --project /opt/omnia/input/project_default
  preflight validate -p ./site-a -p ./site-b --dry-run --format json`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "project",
				Aliases:  []string{"p"},
				Required: true,
				Usage:    "project directory (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "compute host table changes without writing them",
			},
			&cli.StringFlag{
				Name:  "hosts-backend",
				Usage: "host table backend (file, sqlite, memory); overrides configuration",
			},
			&cli.StringFlag{
				Name:  "hosts-path",
				Usage: "host table path; overrides configuration",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "maximum projects validated at once; overrides configuration",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if v := cmd.String("hosts-backend"); v != "" {
				cfg.Hosts.Backend = v
			}
			if v := cmd.String("hosts-path"); v != "" {
				cfg.Hosts.Path = v
			}
			if v := cmd.Int("concurrency"); v > 0 {
				cfg.Validation.Concurrency = v
			}
			if cmd.Bool("dry-run") {
				cfg.Validation.DryRun = true
			}

			syncer, closeStore, err := pipeline.OpenSynchronizer(cfg.Hosts)
			if err != nil {
				return fmt.Errorf("failed to open host table: %w", err)
			}
			defer func() {
				if err := closeStore(); err != nil {
					slog.Warn("failed to close host table", "error", err)
				}
			}()

			v := pipeline.New(append(pipeline.OptionsFromConfig(cfg),
				pipeline.WithVersion(version),
				pipeline.WithSynchronizer(syncer),
			)...)

			results, err := v.RunAll(ctx, cmd.StringSlice("project"))
			if err != nil {
				return fmt.Errorf("validation aborted: %w", err)
			}

			if err := writeOutput(ctx, cmd, results); err != nil {
				return err
			}

			failed := 0
			for _, res := range results {
				if !res.Succeeded() {
					failed++
					slog.Warn("project failed validation",
						"project", res.ProjectDir,
						"phase", res.FailedPhase,
						"errors", res.Summary.Errors)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d projects: %w", failed, len(results), errFailed)
			}
			return nil
		},
	}
}
