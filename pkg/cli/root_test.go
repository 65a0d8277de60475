/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/discovery-preflight/pkg/manifest"
)

const csvHeader = "FUNCTIONAL_GROUP_NAME,SERVICE_TAG,HOSTNAME,ADMIN_MAC,ADMIN_IP,BMC_MAC,BMC_IP\n"

func csvRow(i int) string {
	return fmt.Sprintf("compute,SVC%d,node%d,aa:bb:cc:dd:ee:%02x,172.16.107.%d,aa:bb:cc:dd:ff:%02x,172.17.107.%d\n",
		i, i, i, i, i, i)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func writeProject(t *testing.T, mappingCSV string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range manifest.RequiredArtifacts() {
		writeFile(t, dir, n, "placeholder: true\n")
	}
	writeFile(t, dir, manifest.DefaultSoftwareManifest, `{"cluster_os_type": "rhel", "softwares": []}`)
	writeFile(t, dir, manifest.ArtifactProvisionConfig, "discovery_mechanism: mapping\n")
	writeFile(t, dir, manifest.ArtifactTelemetryConfig, "idrac_telemetry_support: false\nldms_support: false\n")
	writeFile(t, dir, "pxe_mapping_file.csv", mappingCSV)
	return dir
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	return newRootCmd().Run(context.Background(), append([]string{name}, args...))
}

func readJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

func TestCommandStructure(t *testing.T) {
	tests := []struct {
		cmd   *cli.Command
		name  string
		flags []string
	}{
		{validateCmd(), "validate", []string{"project", "dry-run", "hosts-backend", "hosts-path", "concurrency", "output", "format"}},
		{mappingCmd(), "mapping", []string{"file", "bmc-suffix", "output", "format"}},
		{hostsCmd(), "hosts", []string{"file", "apply", "hosts-backend", "hosts-path", "bmc-suffix", "output", "format"}},
		{serveCmd(), "serve", []string{"port"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.cmd.Name != tt.name {
				t.Errorf("Name = %v, want %v", tt.cmd.Name, tt.name)
			}
			if tt.cmd.Usage == "" {
				t.Error("Usage should not be empty")
			}
			if tt.cmd.Description == "" {
				t.Error("Description should not be empty")
			}
			for _, flagName := range tt.flags {
				found := false
				for _, flag := range tt.cmd.Flags {
					if hasName(flag, flagName) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("required flag %q not found", flagName)
				}
			}
			if tt.cmd.Action == nil {
				t.Error("Action should not be nil")
			}
		})
	}
}

func TestRootCmd(t *testing.T) {
	root := newRootCmd()
	assert.Equal(t, name, root.Name)
	for _, flagName := range []string{"config", "debug", "log-json"} {
		found := false
		for _, flag := range root.Flags {
			found = found || hasName(flag, flagName)
		}
		assert.True(t, found, "flag %q", flagName)
	}
	assert.Len(t, root.Commands, 4)
}

func TestCommandLister(_ *testing.T) {
	_ = commandLister(context.Background(), nil)

	cmd := &cli.Command{Name: "test"}
	_ = commandLister(context.Background(), cmd)

	rootCmd := &cli.Command{
		Name: "root",
		Commands: []*cli.Command{
			{Name: "visible1", Hidden: false},
			{Name: "hidden", Hidden: true},
			{Name: "visible2", Hidden: false},
		},
	}
	_ = commandLister(context.Background(), rootCmd)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"failed checks", fmt.Errorf("2 of 3 projects: %w", errFailed), 1},
		{"exit coder", cli.Exit("bad", 3), 3},
		{"other error", errors.New("boom"), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestMappingCmd(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "report.json")

	t.Run("valid", func(t *testing.T) {
		file := writeFile(t, dir, "ok.csv", csvHeader+csvRow(1)+csvRow(2))
		require.NoError(t, run(t, "mapping", "--file", file, "--format", "json", "--output", out))

		var report struct {
			Kind     string           `json:"kind"`
			Valid    bool             `json:"valid"`
			Accepted []map[string]any `json:"accepted"`
		}
		readJSON(t, out, &report)
		assert.Equal(t, "MappingReport", report.Kind)
		assert.True(t, report.Valid)
		assert.Len(t, report.Accepted, 2)
	})

	t.Run("duplicate ip", func(t *testing.T) {
		bad := strings.Replace(csvRow(2), "172.16.107.2", "172.16.107.1", 1)
		file := writeFile(t, dir, "bad.csv", csvHeader+csvRow(1)+bad)

		err := run(t, "mapping", "--file", file, "--format", "json", "--output", out)
		require.Error(t, err)
		assert.ErrorIs(t, err, errFailed)

		var report struct {
			Valid    bool             `json:"valid"`
			Findings []map[string]any `json:"findings"`
		}
		readJSON(t, out, &report)
		assert.False(t, report.Valid)
		require.Len(t, report.Findings, 1)
		assert.Equal(t, "DuplicateKey", report.Findings[0]["kind"])
	})

	t.Run("hostname taken by a bmc name", func(t *testing.T) {
		file := writeFile(t, dir, "bmc.csv", csvHeader+
			strings.Replace(csvRow(1), ",node1,", ",node2-ipmi,", 1)+csvRow(2))

		require.NoError(t, run(t, "mapping", "--file", file, "--format", "json", "--output", out))

		err := run(t, "mapping", "--file", file, "--bmc-suffix", "-ipmi", "--format", "json", "--output", out)
		require.ErrorIs(t, err, errFailed)

		var report struct {
			Findings []map[string]any `json:"findings"`
		}
		readJSON(t, out, &report)
		require.Len(t, report.Findings, 1)
		assert.Equal(t, "DuplicateKey", report.Findings[0]["kind"])
		assert.Equal(t, "hostname", report.Findings[0]["field"])
	})

	t.Run("missing file", func(t *testing.T) {
		err := run(t, "mapping", "--file", filepath.Join(dir, "nope.csv"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, errFailed)
	})

	t.Run("unknown format", func(t *testing.T) {
		file := writeFile(t, dir, "fmt.csv", csvHeader+csvRow(1))
		err := run(t, "mapping", "--file", file, "--format", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown output format")
	})
}

func TestHostsCmd(t *testing.T) {
	dir := t.TempDir()
	hostsPath := writeFile(t, dir, "hosts", "127.0.0.1 localhost\n")
	file := writeFile(t, dir, "nodes.csv", csvHeader+csvRow(1))
	out := filepath.Join(dir, "plan.json")

	require.NoError(t, run(t, "hosts", "--file", file, "--hosts-backend", "file", "--hosts-path", hostsPath,
		"--format", "json", "--output", out))

	var plan struct {
		Kind     string `json:"kind"`
		DryRun   bool   `json:"dryRun"`
		Appended int    `json:"appended"`
	}
	readJSON(t, out, &plan)
	assert.Equal(t, "HostsPlan", plan.Kind)
	assert.True(t, plan.DryRun)
	assert.Equal(t, 2, plan.Appended)

	data, err := os.ReadFile(hostsPath)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1 localhost\n", string(data), "dry run must not write")

	require.NoError(t, run(t, "hosts", "--file", file, "--hosts-backend", "file", "--hosts-path", hostsPath,
		"--bmc-suffix", "-ipmi", "--apply", "--format", "json", "--output", out))

	data, err = os.ReadFile(hostsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "node1-ipmi")
	assert.Contains(t, string(data), "172.16.107.1")
}

func TestValidateCmd(t *testing.T) {
	dir := t.TempDir()
	hostsPath := filepath.Join(dir, "hosts")
	out := filepath.Join(dir, "results.json")

	good := writeProject(t, csvHeader+csvRow(1))
	bad := writeProject(t, csvHeader+strings.Replace(csvRow(2), "aa:bb:cc:dd:ee:02", "zz", 1))

	t.Run("all pass", func(t *testing.T) {
		require.NoError(t, run(t, "validate", "--project", good,
			"--hosts-backend", "file", "--hosts-path", hostsPath, "--format", "json", "--output", out))

		var results []map[string]any
		readJSON(t, out, &results)
		require.Len(t, results, 1)
		assert.Equal(t, "Succeeded", results[0]["state"])

		data, err := os.ReadFile(hostsPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "node1-bmc")
	})

	t.Run("one fails", func(t *testing.T) {
		err := run(t, "validate", "-p", good, "-p", bad,
			"--hosts-backend", "memory", "--format", "json", "--output", out)
		require.Error(t, err)
		assert.ErrorIs(t, err, errFailed)
		assert.Equal(t, 1, exitCode(err))

		var results []map[string]any
		readJSON(t, out, &results)
		require.Len(t, results, 2)
		assert.Equal(t, "Succeeded", results[0]["state"])
		assert.Equal(t, "Failed", results[1]["state"])
		assert.Equal(t, "mapping", results[1]["failedPhase"])
	})
}

func hasName(flag cli.Flag, name string) bool {
	if flag == nil {
		return false
	}
	names := flag.Names()
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
