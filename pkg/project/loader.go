/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package project

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/NVIDIA/discovery-preflight/pkg/defaults"
	apperrors "github.com/NVIDIA/discovery-preflight/pkg/errors"
	"github.com/NVIDIA/discovery-preflight/pkg/manifest"
	"github.com/NVIDIA/discovery-preflight/pkg/mapping"
	"github.com/NVIDIA/discovery-preflight/pkg/telemetry"
)

// DefaultMappingFile is used when the provisioning config names no mapping file.
const DefaultMappingFile = defaults.MappingFile

// Provisioning holds the settings read from the provisioning config.
type Provisioning struct {
	DiscoveryMechanism string `json:"discoveryMechanism" yaml:"discovery_mechanism" mapstructure:"discovery_mechanism"`
	MappingFilePath    string `json:"mappingFilePath,omitempty" yaml:"pxe_mapping_file_path,omitempty" mapstructure:"pxe_mapping_file_path"`
}

// Loader supplies parsed configuration objects for a project directory.
type Loader interface {
	Provisioning(ctx context.Context, dir string) (*Provisioning, error)
	MappingPath(dir string, prov *Provisioning) string
	Mapping(ctx context.Context, dir string, prov *Provisioning) (*mapping.Parsed, error)
	Telemetry(ctx context.Context, dir string) (*telemetry.Config, error)
}

// FileLoader loads project configuration from files.
type FileLoader struct {
	// MappingFile is used when the provisioning config names no mapping file.
	MappingFile string
}

// NewFileLoader returns a FileLoader with defaults.
func NewFileLoader() *FileLoader {
	return &FileLoader{MappingFile: DefaultMappingFile}
}

// Provisioning implements Loader.
func (l *FileLoader) Provisioning(ctx context.Context, dir string) (*Provisioning, error) {
	p := &Provisioning{}
	if _, err := readArtifact(ctx, filepath.Join(dir, manifest.ArtifactProvisionConfig), p); err != nil {
		return nil, err
	}
	p.DiscoveryMechanism = strings.TrimSpace(p.DiscoveryMechanism)
	p.MappingFilePath = strings.TrimSpace(p.MappingFilePath)
	return p, nil
}

// MappingPath resolves the mapping file location for dir.
func (l *FileLoader) MappingPath(dir string, prov *Provisioning) string {
	path := ""
	if prov != nil {
		path = prov.MappingFilePath
	}
	if path == "" {
		path = l.MappingFile
	}
	if path == "" {
		path = DefaultMappingFile
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return path
}

// Mapping implements Loader.
func (l *FileLoader) Mapping(ctx context.Context, dir string, prov *Provisioning) (*mapping.Parsed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return mapping.ParseFile(l.MappingPath(dir, prov))
}

// Telemetry implements Loader.
func (l *FileLoader) Telemetry(ctx context.Context, dir string) (*telemetry.Config, error) {
	cfg := &telemetry.Config{}
	v, err := readArtifact(ctx, filepath.Join(dir, manifest.ArtifactTelemetryConfig), cfg)
	if err != nil {
		return nil, err
	}
	for k := range v.AllSettings() {
		cfg.Keys = append(cfg.Keys, k)
	}
	sort.Strings(cfg.Keys)
	return cfg, nil
}

// readArtifact decodes the YAML document at path into out.
func readArtifact(ctx context.Context, path string, out any) (*viper.Viper, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.WrapWithContext(apperrors.ErrCodeNotFound, "artifact not found", err,
				map[string]any{"path": path})
		}
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidFormat, "failed to parse artifact", err,
			map[string]any{"path": path})
	}

	if err := v.Unmarshal(out); err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidFormat, "failed to decode artifact", err,
			map[string]any{"path": path})
	}
	return v, nil
}
