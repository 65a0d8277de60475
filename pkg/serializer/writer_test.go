/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type entry struct {
	Hostname  string `json:"hostname" yaml:"hostname"`
	IPAddress string `json:"ipAddress" yaml:"ipAddress"`
}

type document struct {
	Kind    string            `json:"kind" yaml:"kind"`
	Labels  map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
	Entries []entry           `json:"entries" yaml:"entries"`
	Note    *string           `json:"note" yaml:"note"`
}

func sampleDocument() document {
	return document{
		Kind:   "HostsPlan",
		Labels: map[string]string{"site": "a"},
		Entries: []entry{
			{Hostname: "node1", IPAddress: "172.16.107.1"},
			{Hostname: "node1-bmc", IPAddress: "172.17.107.1"},
		},
	}
}

func TestWriter_Serialize(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		check  func(t *testing.T, out []byte)
	}{
		{
			name:   "json",
			format: FormatJSON,
			check: func(t *testing.T, out []byte) {
				var got document
				require.NoError(t, json.Unmarshal(out, &got))
				assert.Equal(t, sampleDocument(), got)
			},
		},
		{
			name:   "yaml",
			format: FormatYAML,
			check: func(t *testing.T, out []byte) {
				var got document
				require.NoError(t, yaml.Unmarshal(out, &got))
				assert.Equal(t, sampleDocument(), got)
			},
		},
		{
			name:   "table",
			format: FormatTable,
			check: func(t *testing.T, out []byte) {
				s := string(out)
				assert.Contains(t, s, "FIELD")
				assert.Contains(t, s, "entries[1].hostname")
				assert.Contains(t, s, "node1-bmc")
				assert.Contains(t, s, "labels.site")
				assert.Contains(t, s, "<nil>")
			},
		},
		{
			name:   "unknown falls back to json",
			format: Format("xml"),
			check: func(t *testing.T, out []byte) {
				assert.True(t, json.Valid(out))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewWriter(tt.format, &buf).Serialize(context.Background(), sampleDocument()))
			tt.check(t, buf.Bytes())
		})
	}
}

func TestWriter_SerializeTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatTable, &buf).Serialize(context.Background(), []entry{}))
	assert.Contains(t, buf.String(), tableEmpty)
}

func TestWriter_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := NewWriter(FormatJSON, &buf).Serialize(ctx, sampleDocument())
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestWriter_CloseIsIdempotent(t *testing.T) {
	w := NewStdoutWriter(FormatJSON)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestNewFileWriterOrStdout(t *testing.T) {
	t.Run("stdout paths", func(t *testing.T) {
		for _, path := range []string{"", "  ", "\t", StdoutURI} {
			w, err := NewFileWriterOrStdout(FormatJSON, path)
			require.NoError(t, err, "path %q", path)
			require.NotNil(t, w)
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "plan.yaml")
		w, err := NewFileWriterOrStdout(FormatYAML, path)
		require.NoError(t, err)
		require.NoError(t, w.Serialize(context.Background(), sampleDocument()))

		c, ok := w.(Closer)
		require.True(t, ok)
		require.NoError(t, c.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var got document
		require.NoError(t, yaml.Unmarshal(data, &got))
		assert.Equal(t, "HostsPlan", got.Kind)
	})

	t.Run("missing directory", func(t *testing.T) {
		w, err := NewFileWriterOrStdout(FormatJSON, "/nonexistent/path/file.json")
		require.Error(t, err)
		assert.Nil(t, w)
		assert.Contains(t, err.Error(), "failed to create output file")
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		format  Format
		unknown bool
	}{
		{FormatJSON, false},
		{FormatYAML, false},
		{FormatTable, false},
		{Format("xml"), true},
		{Format(""), true},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.unknown, tt.format.IsUnknown())
		})
	}

	assert.ElementsMatch(t, []string{"json", "yaml", "table"}, SupportedFormats())
}

func TestFlattenNil(t *testing.T) {
	rows := make([][2]string, 0)
	flatten("note", nil, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, [2]string{"note", "<nil>"}, rows[0])
}
