/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/NVIDIA/discovery-preflight/pkg/discovery"
	apperrors "github.com/NVIDIA/discovery-preflight/pkg/errors"
	"github.com/NVIDIA/discovery-preflight/pkg/finding"
	"github.com/NVIDIA/discovery-preflight/pkg/hosts"
	"github.com/NVIDIA/discovery-preflight/pkg/manifest"
	"github.com/NVIDIA/discovery-preflight/pkg/telemetry"
)

// hostTableSubject is the finding subject for host table failures.
const hostTableSubject = "host-table"

type phaseOutput struct {
	status   PhaseStatus
	reason   string
	findings finding.List
}

func passed(findings finding.List) phaseOutput {
	return phaseOutput{status: PhaseStatusPassed, findings: findings}
}

func skipped(reason string, findings finding.List) phaseOutput {
	return phaseOutput{status: PhaseStatusSkipped, reason: reason, findings: findings}
}

type phase struct {
	name Phase
	run  func(context.Context, *Context) phaseOutput
}

// phases returns the pipeline in execution order.
func (v *Validator) phases() []phase {
	return []phase{
		{PhasePresence, v.checkPresence},
		{PhaseSoftware, v.checkSoftware},
		{PhaseMechanism, v.resolveMechanism},
		{PhaseMapping, v.validateMapping},
		{PhaseHosts, v.syncHosts},
		{PhaseTelemetry, v.validateTelemetry},
	}
}

func (v *Validator) checkPresence(_ context.Context, vc *Context) phaseOutput {
	checker := &manifest.PresenceChecker{FS: v.fs, Artifacts: vc.Artifacts}
	report, findings := checker.Check(vc.ProjectDir)
	vc.Presence = report.Presence()

	if v.credentials != nil {
		for _, name := range v.credentialNames {
			if !v.credentials.Has(name) {
				findings = append(findings, finding.Newf(finding.KindMissingArtifact, name,
					"credential %q was not supplied", name))
			}
		}
	}
	return passed(findings)
}

func (v *Validator) checkSoftware(_ context.Context, vc *Context) phaseOutput {
	sv := &manifest.SoftwareValidator{FS: v.fs, Name: v.softwareManifest}
	doc, findings := sv.Validate(vc.ProjectDir)
	vc.Software = doc
	return passed(findings)
}

func (v *Validator) resolveMechanism(ctx context.Context, vc *Context) phaseOutput {
	prov, err := v.loader.Provisioning(ctx, vc.ProjectDir)
	if err != nil {
		return passed(finding.List{loadFinding(manifest.ArtifactProvisionConfig, err)})
	}
	vc.Provisioning = prov

	res, findings := discovery.Resolve(prov.DiscoveryMechanism)
	if res == nil {
		return passed(findings)
	}
	vc.Mechanism = res.Mechanism
	vc.MappingRequired = res.MappingRequired

	if !res.MappingRequired && prov.MappingFilePath != "" {
		path := v.loader.MappingPath(vc.ProjectDir, prov)
		if v.fs.Exists(path) {
			findings = append(findings, finding.Warning(finding.KindInvalidConfiguration, filepath.Base(path),
				fmt.Sprintf("mapping file is ignored because discovery mechanism is %q", res.Mechanism)))
		}
	}
	return passed(findings)
}

func (v *Validator) validateMapping(ctx context.Context, vc *Context) phaseOutput {
	if !vc.MappingRequired {
		return skipped(fmt.Sprintf("discovery mechanism %q does not use a mapping file", vc.Mechanism), nil)
	}

	parsed, err := v.loader.Mapping(ctx, vc.ProjectDir, vc.Provisioning)
	if err != nil {
		subject := filepath.Base(v.loader.MappingPath(vc.ProjectDir, vc.Provisioning))
		return passed(finding.List{loadFinding(subject, err)})
	}
	vc.Mapping = parsed

	findings := append(finding.List{}, parsed.Warnings...)
	vc.MappingResult = v.mappings.Validate(parsed.Rows, true)
	findings = append(findings, vc.MappingResult.Findings...)
	return passed(findings)
}

func (v *Validator) syncHosts(ctx context.Context, vc *Context) phaseOutput {
	if !vc.MappingRequired || vc.MappingResult == nil {
		return skipped("no validated mapping records", nil)
	}

	res, err := v.synchronizer.Sync(ctx, vc.MappingResult.Accepted, v.dryRun)
	if err != nil {
		kind := finding.KindStorageWriteFailure
		var se *hosts.SyncError
		if errors.As(err, &se) && se.Op == hosts.OpRead {
			kind = finding.KindStorageReadFailure
		}
		return passed(finding.List{finding.New(kind, hostTableSubject, err.Error())})
	}
	vc.Sync = res
	return passed(res.Warnings)
}

func (v *Validator) validateTelemetry(ctx context.Context, vc *Context) phaseOutput {
	cfg, err := v.loader.Telemetry(ctx, vc.ProjectDir)
	if err != nil {
		return passed(finding.List{loadFinding(telemetry.ArtifactName, err)})
	}
	vc.Telemetry = cfg
	vc.Flags = telemetry.Flags(cfg)

	findings := telemetry.CheckKeys(cfg.Keys)
	if !vc.Flags.Any() {
		return skipped("iDRAC telemetry and LDMS are disabled", findings)
	}
	return passed(append(findings, telemetry.Validate(cfg, vc.Flags)...))
}

// loadFinding converts a loader error into a finding against subject.
func loadFinding(subject string, err error) finding.Finding {
	kind := finding.KindMalformedArtifact
	if apperrors.IsCode(err, apperrors.ErrCodeNotFound) {
		kind = finding.KindMissingArtifact
	}
	return finding.New(kind, subject, err.Error())
}
