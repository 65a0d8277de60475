/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/discovery-preflight/pkg/defaults"
	"github.com/NVIDIA/discovery-preflight/pkg/finding"
	"github.com/NVIDIA/discovery-preflight/pkg/header"
	"github.com/NVIDIA/discovery-preflight/pkg/hosts"
	"github.com/NVIDIA/discovery-preflight/pkg/manifest"
	"github.com/NVIDIA/discovery-preflight/pkg/mapping"
	"github.com/NVIDIA/discovery-preflight/pkg/project"
)

// DefaultConcurrency bounds RunAll when no concurrency is configured.
const DefaultConcurrency = defaults.Concurrency

// Validator runs the preflight pipeline for project directories.
type Validator struct {
	// Version is the validator version (typically the CLI version).
	Version string

	fs               manifest.FileSystem
	artifacts        []string
	softwareManifest string
	loader           project.Loader
	credentials      project.CredentialProvider
	credentialNames  []string
	synchronizer     *hosts.Synchronizer
	mappings         *mapping.Validator
	dryRun           bool
	concurrency      int
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithVersion returns an Option that sets the Validator version string.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.Version = version
	}
}

// WithFileSystem sets the filesystem used for artifact checks.
func WithFileSystem(fsys manifest.FileSystem) Option {
	return func(v *Validator) {
		v.fs = fsys
	}
}

// WithArtifacts replaces the list of required artifacts.
func WithArtifacts(names ...string) Option {
	return func(v *Validator) {
		v.artifacts = names
	}
}

// WithSoftwareManifest sets the software manifest file name.
func WithSoftwareManifest(name string) Option {
	return func(v *Validator) {
		if name != "" {
			v.softwareManifest = name
		}
	}
}

// WithLoader sets the configuration loader.
func WithLoader(l project.Loader) Option {
	return func(v *Validator) {
		v.loader = l
	}
}

// WithCredentials requires each named credential to be supplied by p.
func WithCredentials(p project.CredentialProvider, names ...string) Option {
	return func(v *Validator) {
		v.credentials = p
		v.credentialNames = names
	}
}

// WithSynchronizer sets the host table synchronizer. Runs that share a
// Synchronizer have their table updates serialized.
func WithSynchronizer(s *hosts.Synchronizer) Option {
	return func(v *Validator) {
		v.synchronizer = s
	}
}

// WithDryRun computes host table changes without writing them.
func WithDryRun(dryRun bool) Option {
	return func(v *Validator) {
		v.dryRun = dryRun
	}
}

// WithConcurrency bounds the number of projects RunAll validates at once.
func WithConcurrency(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.concurrency = n
		}
	}
}

// New creates a new Validator with the provided options. Without
// WithSynchronizer, host entries are merged into an in-memory table.
func New(opts ...Option) *Validator {
	v := &Validator{
		fs:               manifest.OSFileSystem{},
		artifacts:        manifest.RequiredArtifacts(),
		softwareManifest: manifest.DefaultSoftwareManifest,
		loader:           project.NewFileLoader(),
		concurrency:      DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.synchronizer == nil {
		v.synchronizer = hosts.NewSynchronizer(hosts.NewMemoryStore(nil))
	}
	v.mappings = mapping.NewValidator(mapping.WithBMCSuffix(v.synchronizer.BMCSuffix()))
	return v
}

// Run validates one project directory. Validation problems are reported as
// findings in the Result; an error is returned only when ctx is done.
func (v *Validator) Run(ctx context.Context, dir string) (*Result, error) {
	start := time.Now()

	result := &Result{
		RunID:      uuid.New().String(),
		ProjectDir: dir,
		DryRun:     v.dryRun,
		Findings:   finding.List{},
	}
	result.Init(header.KindValidationResult, v.Version)

	vc := &Context{
		ProjectDir: dir,
		Artifacts:  v.artifacts,
		State:      StatePending,
	}

	log := slog.With("project", dir, "run", result.RunID)
	log.Debug("starting validation")

	v.transition(vc, StateRunning)

	for _, p := range v.phases() {
		if vc.State.IsTerminal() {
			result.Phases = append(result.Phases, PhaseReport{Name: p.name, Status: PhaseStatusNotRun})
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		vc.Phase = p.name
		phaseStart := time.Now()
		out := p.run(ctx, vc)
		elapsed := time.Since(phaseStart)
		phaseDuration.WithLabelValues(string(p.name)).Observe(elapsed.Seconds())

		vc.Findings = append(vc.Findings, out.findings...)
		report := PhaseReport{
			Name:     p.name,
			Status:   out.status,
			Findings: len(out.findings),
			Duration: elapsed,
			Reason:   out.reason,
		}

		if out.findings.HasFatal() {
			report.Status = PhaseStatusFailed
			result.FailedPhase = p.name
			v.transition(vc, StateFailed)
			log.Warn("validation phase failed",
				"phase", p.name,
				"findings", len(out.findings),
				"duration", elapsed)
		} else {
			log.Debug("validation phase completed",
				"phase", p.name,
				"status", report.Status,
				"findings", len(out.findings),
				"duration", elapsed)
		}
		result.Phases = append(result.Phases, report)
	}

	if !vc.State.IsTerminal() {
		v.transition(vc, StateSucceeded)
	}

	v.finish(result, vc, time.Since(start))

	log.Debug("validation completed",
		"state", result.State,
		"errors", result.Summary.Errors,
		"warnings", result.Summary.Warnings,
		"duration", result.Summary.Duration)

	return result, nil
}

// RunAll validates each directory, up to the configured concurrency at a
// time. Results are returned in the order of dirs.
func (v *Validator) RunAll(ctx context.Context, dirs []string) ([]*Result, error) {
	results := make([]*Result, len(dirs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)

	for i, dir := range dirs {
		g.Go(func() error {
			res, err := v.Run(gctx, dir)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// transition moves the context to state.
func (v *Validator) transition(vc *Context, state State) {
	slog.Debug("validation state transition",
		"project", vc.ProjectDir,
		"from", vc.State,
		"to", state,
		"phase", vc.Phase)
	vc.State = state
}

// finish copies the context into the result and records metrics.
func (v *Validator) finish(result *Result, vc *Context, elapsed time.Duration) {
	result.State = vc.State
	result.Findings = append(result.Findings, vc.Findings...)
	result.Mechanism = vc.Mechanism
	result.Presence = vc.Presence

	if vc.Telemetry != nil {
		flags := vc.Flags
		result.Telemetry = &flags
	}

	// the host table was updated, so what was committed is reported even if
	// a later phase failed
	if vc.Sync != nil {
		result.Records = vc.MappingResult.Accepted
		result.Entries = vc.Sync.Entries
		result.Changes = vc.Sync.Changes
		result.Summary.Records = len(result.Records)
		result.Summary.Entries = len(result.Entries)
		result.Summary.Replaced = vc.Sync.Replaced
		result.Summary.Appended = vc.Sync.Appended
		result.Summary.Unchanged = vc.Sync.Unchanged
	}

	result.Summary.Errors = vc.Findings.Count(finding.SeverityError)
	result.Summary.Warnings = vc.Findings.Count(finding.SeverityWarning)
	result.Summary.Duration = elapsed

	validationDuration.Observe(elapsed.Seconds())
	validationTotal.WithLabelValues(string(result.State)).Inc()
	for _, f := range vc.Findings {
		findingsTotal.WithLabelValues(string(f.Kind)).Inc()
	}
}

// IsCanceled reports whether err came from a done context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
