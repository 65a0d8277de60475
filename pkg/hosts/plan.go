/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package hosts

import (
	"github.com/NVIDIA/discovery-preflight/pkg/header"
)

// Plan is the document emitted for a host table update, applied or not.
type Plan struct {
	header.Header `json:",inline" yaml:",inline"`

	SyncResult `json:",inline" yaml:",inline"`

	BMCSuffix string `json:"bmcSuffix" yaml:"bmcSuffix"`
}

// NewPlan wraps a sync result as a document.
func NewPlan(res *SyncResult, bmcSuffix, version string) *Plan {
	p := &Plan{BMCSuffix: bmcSuffix, SyncResult: *res}
	p.Init(header.KindHostsPlan, version)
	return p
}
