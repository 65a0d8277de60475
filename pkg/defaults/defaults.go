/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package defaults

import "time"

// Server timeouts.
const (
	ServerReadTimeout     = 10 * time.Second
	ServerWriteTimeout    = 60 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Server limits.
const (
	ServerPort           = 8080
	ServerRateLimit      = 100 // requests per second per client
	ServerRateLimitBurst = 200
	ServerMaxBodyBytes   = 1 << 20
)

// ValidateHandlerTimeout bounds a single validation run served over HTTP.
// It stays below ServerWriteTimeout so the error response can be written.
const ValidateHandlerTimeout = 50 * time.Second

// Pipeline.
const (
	// Concurrency is the number of projects validated at once.
	Concurrency = 4

	HostsPath        = "/etc/hosts"
	BMCSuffix        = "-bmc"
	SoftwareManifest = "software_config.json"
	MappingFile      = "pxe_mapping_file.csv"
)
