/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package discovery resolves which node-discovery mechanism a project uses
// and whether a node mapping dataset is therefore required.
package discovery

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/NVIDIA/discovery-preflight/pkg/finding"
)

// Mechanism is a node-discovery method.
type Mechanism string

const (
	MechanismMapping     Mechanism = "mapping"
	MechanismBMCScan     Mechanism = "bmc-scan"
	MechanismSwitchBased Mechanism = "switch-based"
)

// SettingName is the configuration key holding the mechanism.
const SettingName = "discovery_mechanism"

// maxSuggestDistance bounds how far a typo may be from a known mechanism to
// be offered as a suggestion.
const maxSuggestDistance = 3

// SupportedMechanisms returns the known mechanisms in a stable order.
func SupportedMechanisms() []Mechanism {
	return []Mechanism{MechanismMapping, MechanismBMCScan, MechanismSwitchBased}
}

// IsValid reports whether m is a known mechanism.
func (m Mechanism) IsValid() bool {
	for _, s := range SupportedMechanisms() {
		if m == s {
			return true
		}
	}
	return false
}

// RequiresMapping reports whether the mechanism consumes a mapping dataset.
func (m Mechanism) RequiresMapping() bool {
	return m == MechanismMapping
}

// Resolution is the outcome of resolving a mechanism setting.
type Resolution struct {
	Mechanism       Mechanism `json:"mechanism" yaml:"mechanism"`
	MappingRequired bool      `json:"mappingRequired" yaml:"mappingRequired"`
}

// Resolve normalizes raw (trimmed, lower-cased) and decides whether mapping
// validation is required. Unknown or empty values yield a fatal
// InvalidConfiguration finding and a nil resolution.
func Resolve(raw string) (*Resolution, finding.List) {
	m := Mechanism(strings.ToLower(strings.TrimSpace(raw)))
	if !m.IsValid() {
		detail := fmt.Sprintf("unsupported discovery mechanism %q, supported values: %v", raw, SupportedMechanisms())
		if s := Suggest(string(m)); s != "" {
			detail += fmt.Sprintf(" (did you mean %q?)", s)
		}
		return nil, finding.List{{
			Kind:     finding.KindInvalidConfiguration,
			Severity: finding.SeverityError,
			Subject:  SettingName,
			Field:    SettingName,
			Detail:   detail,
		}}
	}
	return &Resolution{Mechanism: m, MappingRequired: m.RequiresMapping()}, nil
}

// Suggest returns the supported mechanism closest to s, or "" if none is
// within maxSuggestDistance edits.
func Suggest(s string) Mechanism {
	if s == "" {
		return ""
	}
	var best Mechanism
	bestDist := maxSuggestDistance + 1
	for _, m := range SupportedMechanisms() {
		if d := levenshtein.ComputeDistance(s, string(m)); d < bestDist {
			best, bestDist = m, d
		}
	}
	return best
}
