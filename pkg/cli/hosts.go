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

	"github.com/NVIDIA/discovery-preflight/pkg/hosts"
	"github.com/NVIDIA/discovery-preflight/pkg/mapping"
	pipeline "github.com/NVIDIA/discovery-preflight/pkg/validator"
)

func hostsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "hosts",
		EnableShellCompletion: true,
		Usage:                 "Show the host table changes a mapping file would make",
		Description: `Validates a mapping file and merges its admin and BMC entries into the
configured host table. Nothing is written unless --apply is set.

Each entry is reported as appended, replaced (with the previous address) or
unchanged. Other names already bound to the same address are reported as
warnings.

# Examples

  preflight hosts --file pxe_mapping_file.csv
  preflight hosts -f nodes.csv --hosts-path ./hosts --apply`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Required: true,
				Usage:    "mapping CSV file path",
			},
			&cli.BoolFlag{
				Name:  "apply",
				Usage: "write the changes to the host table",
			},
			&cli.StringFlag{
				Name:  "hosts-backend",
				Usage: "host table backend (file, sqlite, memory); overrides configuration",
			},
			&cli.StringFlag{
				Name:  "hosts-path",
				Usage: "host table path; overrides configuration",
			},
			&cli.StringFlag{
				Name:  "bmc-suffix",
				Usage: "suffix appended to host names for BMC entries; overrides configuration",
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
			if v := cmd.String("bmc-suffix"); v != "" {
				cfg.Hosts.BMCSuffix = v
			}

			path := cmd.String("file")
			parsed, err := mapping.ParseFile(path)
			if err != nil {
				return fmt.Errorf("failed to read mapping file %q: %w", path, err)
			}

			res := mapping.NewValidator(mapping.WithBMCSuffix(cfg.Hosts.BMCSuffix)).Validate(parsed.Rows, true)
			if res.Findings.HasFatal() {
				report := mapping.NewReport(path, parsed, res, version)
				if err := writeOutput(ctx, cmd, report); err != nil {
					return err
				}
				return fmt.Errorf("%s: %w", path, errFailed)
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

			sr, err := syncer.Sync(ctx, res.Accepted, !cmd.Bool("apply"))
			if err != nil {
				return fmt.Errorf("failed to update host table: %w", err)
			}

			return writeOutput(ctx, cmd, hosts.NewPlan(sr, syncer.BMCSuffix(), version))
		},
	}
}
