/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the command-line interface for the preflight tool.
//
// # Overview
//
// The preflight CLI validates cluster project directories before bare-metal
// provisioning starts. It is designed for administrators preparing node
// discovery input: configuration artifacts, the PXE node mapping file and
// the host resolution table.
//
// # Commands
//
// validate - Run the full pipeline for one or more projects:
//
//	preflight validate --project DIR [--project DIR...] [--dry-run]
//
// Checks artifact and credential presence, the software manifest, the
// discovery mechanism, the mapping file, merges admin and BMC host entries
// into the host table and checks telemetry settings. Projects run
// concurrently and share one host table.
//
// mapping - Check a mapping file on its own:
//
//	preflight mapping --file pxe_mapping_file.csv
//
// hosts - Show or apply the host table changes for a mapping file:
//
//	preflight hosts --file pxe_mapping_file.csv [--apply]
//
// serve - Serve the validation API:
//
//	preflight serve [--port 8080]
//
// # Global Flags
//
//	--config, -c   Tool configuration file
//	--debug        Enable debug logging
//	--log-json     Output logs in JSON format
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// Commands that emit documents also accept:
//
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: yaml, json, table (default: yaml)
//
// # Exit Codes
//
//	0  every check passed
//	1  a project or mapping file failed validation
//	2  usage, configuration or runtime error
package cli
