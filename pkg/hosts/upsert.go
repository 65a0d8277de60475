/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package hosts

import (
	"strings"

	"github.com/NVIDIA/discovery-preflight/pkg/mapping"
)

// Outcome is the effect of upserting one entry.
type Outcome string

const (
	OutcomeAppended  Outcome = "appended"
	OutcomeReplaced  Outcome = "replaced"
	OutcomeUnchanged Outcome = "unchanged"
)

// Change records what an upsert did to one entry.
type Change struct {
	Entry   Entry   `json:"entry" yaml:"entry"`
	Outcome Outcome `json:"outcome" yaml:"outcome"`
	// Previous is the address the name was bound to before a replace.
	Previous string `json:"previous,omitempty" yaml:"previous,omitempty"`
}

// EntriesFor derives the admin and BMC entries of each record, in record
// order. An empty suffix uses DefaultBMCSuffix.
func EntriesFor(records []mapping.Record, bmcSuffix string) []Entry {
	if bmcSuffix == "" {
		bmcSuffix = DefaultBMCSuffix
	}
	entries := make([]Entry, 0, len(records)*2)
	for _, r := range records {
		entries = append(entries,
			Entry{Hostname: r.Hostname, IPAddress: r.AdminIP, Source: SourceAdmin},
			Entry{Hostname: r.Hostname + bmcSuffix, IPAddress: r.BMCIP, Source: SourceBMC},
		)
	}
	return entries
}

// Upsert merges one entry into lines and returns the updated lines.
func Upsert(lines []Line, e Entry) ([]Line, Change) {
	ch := Change{Entry: e, Outcome: OutcomeAppended}

	first := -1
	out := lines[:0:0]
	for _, l := range lines {
		if !strings.EqualFold(l.Hostname(), e.Hostname) {
			out = append(out, l)
			continue
		}
		if first >= 0 {
			// later duplicate binding of the same name
			ch.Outcome = OutcomeReplaced
			continue
		}
		first = len(out)
		if l.IPAddress == e.IPAddress {
			ch.Outcome = OutcomeUnchanged
			out = append(out, l)
			continue
		}
		ch.Outcome = OutcomeReplaced
		ch.Previous = l.IPAddress
		out = append(out, NewLine(e.IPAddress, e.Hostname))
	}

	if first < 0 {
		out = append(out, NewLine(e.IPAddress, e.Hostname))
	}
	return out, ch
}

// conflicts returns the names other than hostname bound to ip.
func conflicts(lines []Line, hostname, ip string) []string {
	var names []string
	for _, l := range lines {
		if l.IsEntry() && l.IPAddress == ip && !strings.EqualFold(l.Hostname(), hostname) {
			names = append(names, l.Hostname())
		}
	}
	return names
}
