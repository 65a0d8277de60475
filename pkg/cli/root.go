/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/discovery-preflight/pkg/config"
	"github.com/NVIDIA/discovery-preflight/pkg/logging"
	"github.com/NVIDIA/discovery-preflight/pkg/serializer"
)

const (
	name           = "preflight"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/discovery-preflight/pkg/cli.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"

	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("output format (%v)", serializer.SupportedFormats()),
	}
)

// Execute runs the root command with os.Args and exits non-zero on failure.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Pre-provisioning validation for bare-metal cluster projects",
		Version:               fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "tool configuration file (default: ./preflight.yaml, $HOME/.preflight, /etc/preflight)",
				Sources: cli.EnvVars("PREFLIGHT_CONFIG"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "output logs in JSON format",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := logging.LevelFromEnv()
			if cmd.Bool("debug") {
				level = slog.LevelDebug
			}
			logging.SetDefaultCLILogger(level, cmd.Bool("log-json"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			validateCmd(),
			mappingCmd(),
			hostsCmd(),
			serveCmd(),
		},
		Action: commandLister,
	}
}

// commandLister prints the visible subcommands of cmd.
func commandLister(_ context.Context, cmd *cli.Command) error {
	if cmd == nil || len(cmd.Commands) == 0 {
		return nil
	}
	fmt.Fprintf(os.Stdout, "%s commands:\n", cmd.Name)
	for _, c := range cmd.Commands {
		if c.Hidden {
			continue
		}
		fmt.Fprintf(os.Stdout, "  %-10s %s\n", c.Name, c.Usage)
	}
	return nil
}

// loadConfig resolves tool settings from --config, the environment and
// defaults, and applies logging settings unless --debug overrides them.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if !cmd.Bool("debug") && os.Getenv(logging.EnvLogLevel) == "" {
		logging.SetDefaultCLILogger(logging.ParseLevel(cfg.Logging.Level),
			cmd.Bool("log-json") || cfg.Logging.Format == "json")
	}
	return cfg, nil
}
