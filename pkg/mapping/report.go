/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package mapping

import (
	"github.com/NVIDIA/discovery-preflight/pkg/finding"
	"github.com/NVIDIA/discovery-preflight/pkg/header"
)

// Report is the document emitted for a standalone mapping file check.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	File     string       `json:"file" yaml:"file"`
	Encoding string       `json:"encoding" yaml:"encoding"`
	Valid    bool         `json:"valid" yaml:"valid"`
	Total    int          `json:"total" yaml:"total"`
	Accepted []Record     `json:"accepted" yaml:"accepted"`
	Findings finding.List `json:"findings,omitempty" yaml:"findings,omitempty"`
}

// NewReport combines parse warnings and validation findings for file.
// Warnings never make the report invalid.
func NewReport(file string, parsed *Parsed, res *Result, version string) *Report {
	r := &Report{
		File:     file,
		Encoding: parsed.Encoding,
		Valid:    !res.Findings.HasFatal(),
		Total:    res.Total,
		Accepted: res.Accepted,
	}
	r.Init(header.KindMappingReport, version)
	r.Findings = append(r.Findings, parsed.Warnings...)
	r.Findings = append(r.Findings, res.Findings...)
	return r
}
