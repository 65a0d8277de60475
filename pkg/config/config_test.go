/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "file", cfg.Hosts.Backend)
	assert.Equal(t, "/etc/hosts", cfg.Hosts.Path)
	assert.Equal(t, "-bmc", cfg.Hosts.BMCSuffix)
	assert.Equal(t, "software_config.json", cfg.Project.SoftwareManifest)
	assert.Equal(t, 4, cfg.Validation.Concurrency)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preflight.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
hosts:
  backend: sqlite
  path: /var/lib/preflight/hosts.db
validation:
  concurrency: 8
project:
  credentials: [bmc_password]
server:
  read_timeout: 5s
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Hosts.Backend)
	assert.Equal(t, "/var/lib/preflight/hosts.db", cfg.Hosts.Path)
	assert.Equal(t, "-bmc", cfg.Hosts.BMCSuffix)
	assert.Equal(t, 8, cfg.Validation.Concurrency)
	assert.Equal(t, []string{"bmc_password"}, cfg.Project.Credentials)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PREFLIGHT_HOSTS_BACKEND", "memory")
	t.Setenv("PREFLIGHT_VALIDATION_CONCURRENCY", "2")
	t.Setenv("PREFLIGHT_LOGGING_LEVEL", "DEBUG")

	path := filepath.Join(t.TempDir(), "preflight.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hosts:\n  backend: file\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Hosts.Backend)
	assert.Equal(t, 2, cfg.Validation.Concurrency)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown backend", "hosts:\n  backend: ldap\n"},
		{"zero concurrency", "validation:\n  concurrency: 0\n"},
		{"bad port", "server:\n  port: 70000\n"},
		{"bad log format", "logging:\n  format: xml\n"},
		{"file backend without path", "hosts:\n  path: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "preflight.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}
