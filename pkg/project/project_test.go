/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/NVIDIA/discovery-preflight/pkg/errors"
	"github.com/NVIDIA/discovery-preflight/pkg/finding"
	"github.com/NVIDIA/discovery-preflight/pkg/manifest"
	"github.com/NVIDIA/discovery-preflight/pkg/telemetry"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileLoader_Provisioning(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, manifest.ArtifactProvisionConfig,
		"discovery_mechanism: \" mapping \"\npxe_mapping_file_path: inventory/nodes.csv\n")

	p, err := NewFileLoader().Provisioning(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "mapping", p.DiscoveryMechanism)
	assert.Equal(t, "inventory/nodes.csv", p.MappingFilePath)
}

func TestFileLoader_ProvisioningErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFileLoader().Provisioning(context.Background(), dir)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))

	writeFile(t, dir, manifest.ArtifactProvisionConfig, "discovery_mechanism: [unterminated\n")
	_, err = NewFileLoader().Provisioning(context.Background(), dir)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidFormat))
}

func TestFileLoader_MappingPath(t *testing.T) {
	l := NewFileLoader()

	assert.Equal(t, filepath.Join("/proj", DefaultMappingFile), l.MappingPath("/proj", nil))
	assert.Equal(t, filepath.Join("/proj", "a.csv"), l.MappingPath("/proj", &Provisioning{MappingFilePath: "a.csv"}))
	assert.Equal(t, "/srv/a.csv", l.MappingPath("/proj", &Provisioning{MappingFilePath: "/srv/a.csv"}))

	l.MappingFile = "custom.csv"
	assert.Equal(t, filepath.Join("/proj", "custom.csv"), l.MappingPath("/proj", &Provisioning{}))
}

func TestFileLoader_Mapping(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "nodes.csv",
		"FUNCTIONAL_GROUP_NAME,SERVICE_TAG,HOSTNAME,ADMIN_MAC,ADMIN_IP,BMC_MAC,BMC_IP\n"+
			"compute,SVC1,node1,aa:bb:cc:dd:ee:01,172.16.107.1,aa:bb:cc:dd:ff:01,172.17.107.1\n")

	p, err := NewFileLoader().Mapping(context.Background(), dir, &Provisioning{MappingFilePath: "nodes.csv"})
	require.NoError(t, err)
	require.Len(t, p.Rows, 1)

	_, err = NewFileLoader().Mapping(context.Background(), dir, &Provisioning{MappingFilePath: "missing.csv"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
}

func TestFileLoader_Telemetry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, manifest.ArtifactTelemetryConfig, `
idrac_telemetry_support: true
ldms_support: false
idrac_telemetry:
  metrics_interval: -5
ldms:
  port: 10001
`)

	cfg, err := NewFileLoader().Telemetry(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, cfg.IDRACTelemetrySupport)
	assert.False(t, cfg.LDMSSupport)
	require.NotNil(t, cfg.IDRAC)
	assert.Equal(t, -5, cfg.IDRAC.MetricsInterval)
	require.NotNil(t, cfg.LDMS)
	assert.Equal(t, 10001, cfg.LDMS.Port)
	assert.Equal(t, []string{"idrac_telemetry", "idrac_telemetry_support", "ldms", "ldms_support"}, cfg.Keys)
}

func TestFileLoader_TelemetryKeepsRawScalars(t *testing.T) {
	tests := []struct {
		name     string
		interval string
		port     string
		fields   []string
	}{
		{name: "integers", interval: "30", port: "10001"},
		{name: "fractional interval", interval: "1.5", port: "10001", fields: []string{telemetry.FieldMetricsInterval}},
		{name: "boolean interval", interval: "true", port: "10001", fields: []string{telemetry.FieldMetricsInterval}},
		{name: "quoted interval", interval: `"30"`, port: "10001", fields: []string{telemetry.FieldMetricsInterval}},
		{name: "non-numeric interval", interval: "abc", port: "10001", fields: []string{telemetry.FieldMetricsInterval}},
		{name: "quoted port", interval: "30", port: `"10001"`, fields: []string{telemetry.FieldPort}},
		{name: "fractional port", interval: "30", port: "10001.5", fields: []string{telemetry.FieldPort}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, manifest.ArtifactTelemetryConfig, fmt.Sprintf(`
idrac_telemetry_support: true
ldms_support: true
idrac_telemetry:
  metrics_interval: %s
ldms:
  port: %s
`, tt.interval, tt.port))

			cfg, err := NewFileLoader().Telemetry(context.Background(), dir)
			require.NoError(t, err)

			findings := telemetry.Validate(cfg, telemetry.Flags(cfg))
			require.Len(t, findings, len(tt.fields))
			for i, f := range findings {
				assert.Equal(t, finding.KindInvalidConfiguration, f.Kind)
				assert.Equal(t, tt.fields[i], f.Field)
			}
		})
	}
}

func TestFileLoader_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileLoader().Telemetry(ctx, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnvCredentials(t *testing.T) {
	c := NewEnvCredentials()
	assert.Equal(t, "PREFLIGHT_CREDENTIAL_BMC_PASSWORD", c.EnvName("bmc-password"))

	t.Setenv("PREFLIGHT_CREDENTIAL_BMC_PASSWORD", "secret")
	t.Setenv("PREFLIGHT_CREDENTIAL_PROVISION_PASSWORD", "")

	assert.True(t, c.Has("bmc_password"))
	assert.False(t, c.Has("provision_password"))
	assert.False(t, c.Has("switch_password"))
}

func TestStaticCredentials(t *testing.T) {
	c := StaticCredentials{"bmc_password": "x", "empty": ""}
	assert.True(t, c.Has("bmc_password"))
	assert.False(t, c.Has("empty"))
	assert.False(t, c.Has("missing"))
}
