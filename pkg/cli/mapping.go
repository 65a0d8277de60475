/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/discovery-preflight/pkg/defaults"
	"github.com/NVIDIA/discovery-preflight/pkg/mapping"
)

func mappingCmd() *cli.Command {
	return &cli.Command{
		Name:                  "mapping",
		EnableShellCompletion: true,
		Usage:                 "Check a node mapping file on its own",
		Description: `Parses and validates a PXE node mapping CSV without a project directory:
  - every column is present and non-empty
  - MAC, IPv4 and host name syntax
  - service tags, host names, MACs and IPs are unique across rows
  - no host name equals another node's BMC host name
  - a node's admin and BMC addresses differ

The report lists accepted records and every finding. The command exits 1
when any row is rejected.

# Examples

  preflight mapping --file pxe_mapping_file.csv
  preflight mapping -f nodes.csv --format table`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Required: true,
				Usage:    "mapping CSV file path",
			},
			&cli.StringFlag{
				Name:  "bmc-suffix",
				Value: defaults.BMCSuffix,
				Usage: "suffix appended to host names for BMC entries",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			path := cmd.String("file")
			parsed, err := mapping.ParseFile(path)
			if err != nil {
				return fmt.Errorf("failed to read mapping file %q: %w", path, err)
			}

			res := mapping.NewValidator(mapping.WithBMCSuffix(cmd.String("bmc-suffix"))).Validate(parsed.Rows, true)
			report := mapping.NewReport(path, parsed, res, version)

			if err := writeOutput(ctx, cmd, report); err != nil {
				return err
			}
			if !report.Valid {
				return fmt.Errorf("%s: %w", path, errFailed)
			}
			return nil
		},
	}
}
