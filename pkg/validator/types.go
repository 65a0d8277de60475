/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"time"

	"github.com/NVIDIA/discovery-preflight/pkg/discovery"
	"github.com/NVIDIA/discovery-preflight/pkg/finding"
	"github.com/NVIDIA/discovery-preflight/pkg/header"
	"github.com/NVIDIA/discovery-preflight/pkg/hosts"
	"github.com/NVIDIA/discovery-preflight/pkg/mapping"
	"github.com/NVIDIA/discovery-preflight/pkg/project"
	"github.com/NVIDIA/discovery-preflight/pkg/telemetry"
)

// State is the pipeline state.
type State string

const (
	StatePending   State = "Pending"
	StateRunning   State = "Running"
	StateSucceeded State = "Succeeded"
	StateFailed    State = "Failed"
)

// IsTerminal reports whether no further transition is possible.
func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// Phase names, in execution order.
type Phase string

const (
	PhasePresence  Phase = "presence"
	PhaseSoftware  Phase = "software-manifest"
	PhaseMechanism Phase = "mechanism"
	PhaseMapping   Phase = "mapping"
	PhaseHosts     Phase = "hosts"
	PhaseTelemetry Phase = "telemetry"
)

// Phases returns all phases in execution order.
func Phases() []Phase {
	return []Phase{PhasePresence, PhaseSoftware, PhaseMechanism, PhaseMapping, PhaseHosts, PhaseTelemetry}
}

// PhaseStatus is the outcome of one phase.
type PhaseStatus string

const (
	PhaseStatusPassed  PhaseStatus = "passed"
	PhaseStatusFailed  PhaseStatus = "failed"
	PhaseStatusSkipped PhaseStatus = "skipped"
	PhaseStatusNotRun  PhaseStatus = "not-run"
)

// PhaseReport describes one phase of a run.
type PhaseReport struct {
	Name     Phase         `json:"name" yaml:"name"`
	Status   PhaseStatus   `json:"status" yaml:"status"`
	Findings int           `json:"findings" yaml:"findings"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	// Reason explains a skipped phase.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Context is the state shared by the phases of one run. Each run gets its
// own Context; phases read what earlier phases wrote.
type Context struct {
	ProjectDir string
	Artifacts  []string
	State      State
	// Phase is the running phase, or the last one that ran.
	Phase Phase

	// presence
	Presence map[string]bool

	// software manifest
	Software map[string]any

	// mechanism
	Provisioning    *project.Provisioning
	Mechanism       discovery.Mechanism
	MappingRequired bool

	// mapping
	Mapping       *mapping.Parsed
	MappingResult *mapping.Result

	// hosts
	Sync *hosts.SyncResult

	// telemetry
	Telemetry *telemetry.Config
	Flags     telemetry.FeatureFlags

	Findings finding.List
}

// Summary aggregates a run.
type Summary struct {
	Errors    int           `json:"errors" yaml:"errors"`
	Warnings  int           `json:"warnings" yaml:"warnings"`
	Records   int           `json:"records" yaml:"records"`
	Entries   int           `json:"entries" yaml:"entries"`
	Replaced  int           `json:"replaced" yaml:"replaced"`
	Appended  int           `json:"appended" yaml:"appended"`
	Unchanged int           `json:"unchanged" yaml:"unchanged"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// Result is the outcome of one pipeline run.
type Result struct {
	header.Header `json:",inline" yaml:",inline"`

	RunID      string `json:"runId" yaml:"runId"`
	ProjectDir string `json:"projectDir" yaml:"projectDir"`
	State      State  `json:"state" yaml:"state"`
	// FailedPhase names the phase that halted the run.
	FailedPhase Phase `json:"failedPhase,omitempty" yaml:"failedPhase,omitempty"`
	DryRun      bool  `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`

	Mechanism discovery.Mechanism     `json:"mechanism,omitempty" yaml:"mechanism,omitempty"`
	Presence  map[string]bool         `json:"presence,omitempty" yaml:"presence,omitempty"`
	Telemetry *telemetry.FeatureFlags `json:"telemetry,omitempty" yaml:"telemetry,omitempty"`

	Phases   []PhaseReport `json:"phases" yaml:"phases"`
	Findings finding.List  `json:"findings" yaml:"findings"`

	// Records and Entries are set once the host table phase has completed.
	Records []mapping.Record `json:"records,omitempty" yaml:"records,omitempty"`
	Entries []hosts.Entry    `json:"entries,omitempty" yaml:"entries,omitempty"`
	Changes []hosts.Change   `json:"changes,omitempty" yaml:"changes,omitempty"`

	Summary Summary `json:"summary" yaml:"summary"`
}

// Succeeded reports whether the run ended in StateSucceeded.
func (r *Result) Succeeded() bool {
	return r.State == StateSucceeded
}

// Phase returns the report for name.
func (r *Result) Phase(name Phase) (PhaseReport, bool) {
	for _, p := range r.Phases {
		if p.Name == name {
			return p, true
		}
	}
	return PhaseReport{}, false
}
