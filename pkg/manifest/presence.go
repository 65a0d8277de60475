/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package manifest

import (
	"log/slog"
	"path/filepath"

	"github.com/NVIDIA/discovery-preflight/pkg/finding"
)

// Required artifact names, in check order.
const (
	ArtifactClusterConfig      = "omnia_config.yml"
	ArtifactNetworkSpec        = "network_spec.yml"
	ArtifactStorageConfig      = "storage_config.yml"
	ArtifactTelemetryConfig    = "telemetry_config.yml"
	ArtifactSecurityConfig     = "security_config.yml"
	ArtifactHighAvailability   = "high_availability_config.yml"
	ArtifactLocalRepoConfig    = "local_repo_config.yml"
	ArtifactRegistryCredential = "user_registry_credential.yml"
	ArtifactProvisionConfig    = "provision_config.yml"
)

// RequiredArtifacts returns the default list of artifacts that must exist
// before discovery may proceed.
func RequiredArtifacts() []string {
	return []string{
		ArtifactClusterConfig,
		ArtifactNetworkSpec,
		ArtifactStorageConfig,
		ArtifactTelemetryConfig,
		ArtifactSecurityConfig,
		ArtifactHighAvailability,
		ArtifactLocalRepoConfig,
		ArtifactRegistryCredential,
		ArtifactProvisionConfig,
	}
}

// ArtifactStatus is the presence result for one artifact.
type ArtifactStatus struct {
	Name    string `json:"name" yaml:"name"`
	Path    string `json:"path" yaml:"path"`
	Present bool   `json:"present" yaml:"present"`
}

// PresenceReport is the outcome of a presence check.
type PresenceReport struct {
	Artifacts  []ArtifactStatus `json:"artifacts" yaml:"artifacts"`
	AllPresent bool             `json:"allPresent" yaml:"allPresent"`
}

// Presence returns the per-artifact flags keyed by file name.
func (r *PresenceReport) Presence() map[string]bool {
	m := make(map[string]bool, len(r.Artifacts))
	for _, a := range r.Artifacts {
		m[a.Name] = a.Present
	}
	return m
}

// PresenceChecker confirms that a list of artifacts exists under a directory.
type PresenceChecker struct {
	FS        FileSystem
	Artifacts []string
}

// NewPresenceChecker returns a checker for RequiredArtifacts.
func NewPresenceChecker(fsys FileSystem) *PresenceChecker {
	return &PresenceChecker{FS: fsys, Artifacts: RequiredArtifacts()}
}

// Check looks for every artifact under dir. All artifacts are checked even
// after one is missing; each missing one yields a MissingArtifact finding.
func (c *PresenceChecker) Check(dir string) (*PresenceReport, finding.List) {
	report := &PresenceReport{
		Artifacts:  make([]ArtifactStatus, 0, len(c.Artifacts)),
		AllPresent: true,
	}
	var findings finding.List

	for _, name := range c.Artifacts {
		path := filepath.Join(dir, name)
		present := c.FS.Exists(path)
		report.Artifacts = append(report.Artifacts, ArtifactStatus{Name: name, Path: path, Present: present})
		if !present {
			report.AllPresent = false
			findings = append(findings, finding.Newf(finding.KindMissingArtifact, name,
				"required artifact %q not found in %s", name, dir))
			slog.Debug("artifact missing", "artifact", name, "path", path)
		}
	}

	return report, findings
}
