/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package hosts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/discovery-preflight/pkg/mapping"
)

func TestEntriesFor(t *testing.T) {
	records := []mapping.Record{
		{Hostname: "node1", AdminIP: "172.16.107.1", BMCIP: "172.17.107.1"},
		{Hostname: "node2", AdminIP: "172.16.107.2", BMCIP: "172.17.107.2"},
	}

	assert.Equal(t, []Entry{
		{Hostname: "node1", IPAddress: "172.16.107.1", Source: SourceAdmin},
		{Hostname: "node1-bmc", IPAddress: "172.17.107.1", Source: SourceBMC},
		{Hostname: "node2", IPAddress: "172.16.107.2", Source: SourceAdmin},
		{Hostname: "node2-bmc", IPAddress: "172.17.107.2", Source: SourceBMC},
	}, EntriesFor(records, ""))

	entries := EntriesFor(records[:1], ".ipmi")
	assert.Equal(t, "node1.ipmi", entries[1].Hostname)
}

func TestUpsert(t *testing.T) {
	base := Parse([]byte("127.0.0.1 localhost\n# nodes\n10.0.0.1 node1 n1\n"))

	tests := []struct {
		name     string
		entry    Entry
		outcome  Outcome
		previous string
		want     string
	}{
		{
			name:    "unchanged keeps aliases",
			entry:   Entry{Hostname: "node1", IPAddress: "10.0.0.1"},
			outcome: OutcomeUnchanged,
			want:    "127.0.0.1 localhost\n# nodes\n10.0.0.1 node1 n1\n",
		},
		{
			name:     "replaced in place",
			entry:    Entry{Hostname: "NODE1", IPAddress: "10.0.0.9"},
			outcome:  OutcomeReplaced,
			previous: "10.0.0.1",
			want:     "127.0.0.1 localhost\n# nodes\n10.0.0.9\tNODE1\n",
		},
		{
			name:    "appended",
			entry:   Entry{Hostname: "node2", IPAddress: "10.0.0.2"},
			outcome: OutcomeAppended,
			want:    "127.0.0.1 localhost\n# nodes\n10.0.0.1 node1 n1\n10.0.0.2\tnode2\n",
		},
		{
			name:    "alias is not a binding",
			entry:   Entry{Hostname: "n1", IPAddress: "10.0.0.1"},
			outcome: OutcomeAppended,
			want:    "127.0.0.1 localhost\n# nodes\n10.0.0.1 node1 n1\n10.0.0.1\tn1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, ch := Upsert(cloneLines(base), tt.entry)
			assert.Equal(t, tt.outcome, ch.Outcome)
			assert.Equal(t, tt.previous, ch.Previous)
			assert.Equal(t, tt.want, string(Render(lines)))
		})
	}
}

func TestUpsert_DropsLaterDuplicates(t *testing.T) {
	lines := Parse([]byte("10.0.0.1 node1\n10.0.0.2 other\n10.0.0.3 node1\n"))

	lines, ch := Upsert(lines, Entry{Hostname: "node1", IPAddress: "10.0.0.1"})
	assert.Equal(t, OutcomeReplaced, ch.Outcome)
	assert.Equal(t, "10.0.0.1 node1\n10.0.0.2 other\n", string(Render(lines)))

	_, ch = Upsert(lines, Entry{Hostname: "node1", IPAddress: "10.0.0.1"})
	assert.Equal(t, OutcomeUnchanged, ch.Outcome)
}

func TestUpsert_DoesNotMutateInput(t *testing.T) {
	lines := Parse([]byte("10.0.0.1 node1\n"))
	before := string(Render(lines))

	out, _ := Upsert(lines, Entry{Hostname: "node1", IPAddress: "10.0.0.2"})
	require.Len(t, out, 1)
	assert.Equal(t, before, string(Render(lines)))
}
