/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package hosts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		ip       string
		hostname string
		aliases  []string
		comment  string
	}{
		{"entry", "10.0.0.1 node1", "10.0.0.1", "node1", []string{"node1"}, ""},
		{"tabs and aliases", "10.0.0.1\tnode1  node1.cluster", "10.0.0.1", "node1", []string{"node1", "node1.cluster"}, ""},
		{"inline comment", "10.0.0.1 node1 # rack 4", "10.0.0.1", "node1", []string{"node1"}, "rack 4"},
		{"comment", "# managed nodes", "", "", nil, "managed nodes"},
		{"blank", "", "", "", nil, ""},
		{"address only", "10.0.0.1", "", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ParseLine(tt.raw)
			assert.Equal(t, tt.ip, l.IPAddress)
			assert.Equal(t, tt.hostname, l.Hostname())
			assert.Equal(t, tt.aliases, l.Hostnames)
			assert.Equal(t, tt.comment, l.Comment)
			assert.Equal(t, tt.raw, l.String())
		})
	}
}

func TestNewLine_String(t *testing.T) {
	assert.Equal(t, "10.0.0.1\tnode1", NewLine("10.0.0.1", "node1").String())
	assert.Equal(t, "10.0.0.1\tnode1 n1", NewLine("10.0.0.1", "node1", "n1").String())
}

func TestParseRender_Verbatim(t *testing.T) {
	content := "127.0.0.1   localhost\r\n# cluster\n\n10.0.0.1\tnode1 n1 # keep\n"

	lines := Parse([]byte(content))
	require.Len(t, lines, 4)
	assert.Equal(t, "127.0.0.1   localhost\n# cluster\n\n10.0.0.1\tnode1 n1 # keep\n", string(Render(lines)))
}
