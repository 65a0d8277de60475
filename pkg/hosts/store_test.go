/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package hosts

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/NVIDIA/discovery-preflight/pkg/errors"
)

func TestNewStore(t *testing.T) {
	dir := t.TempDir()

	s, err := NewStore(BackendFile, filepath.Join(dir, "hosts"))
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = NewStore("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultPath, s.(*FileStore).Path)

	s, err = NewStore(BackendMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = NewStore(BackendSQLite, filepath.Join(dir, "hosts.db"))
	require.NoError(t, err)
	require.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.(*SQLiteStore).Close())

	_, err = NewStore("ldap", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest))
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "hosts")
	s := NewFileStore(path)

	lines, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)

	require.NoError(t, os.WriteFile(path, []byte("# header\n10.0.0.1 node1\n"), 0o600))

	lines, err = s.Read(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	lines = append(lines, NewLine("10.0.0.2", "node2"))
	require.NoError(t, s.Write(ctx, lines))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# header\n10.0.0.1 node1\n10.0.0.2\tnode2\n", string(data))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestFileStore_WriteFailure(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "missing-dir", "hosts"))

	err := s.Write(context.Background(), []Line{NewLine("10.0.0.1", "node1")})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeStorageUnavailable))
}

func TestFileStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewFileStore(filepath.Join(t.TempDir(), "hosts"))
	_, err := s.Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Write(ctx, nil), context.Canceled)
}

func TestMemoryStore_Copies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore([]Line{NewLine("10.0.0.1", "node1")})

	lines, err := s.Read(ctx)
	require.NoError(t, err)
	lines[0].Hostnames[0] = "changed"

	again, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "node1", again[0].Hostname())
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "hosts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	lines, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)

	in := Parse([]byte("# managed\n\n10.0.0.1 node1 n1\n"))
	in = append(in, NewLine("10.0.0.2", "node2"))
	require.NoError(t, s.Write(ctx, in))

	out, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(Render(in)), string(Render(out)))

	require.NoError(t, s.Write(ctx, out[:1]))
	out, err = s.Read(ctx)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestNewSQLiteStore_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStore(" ")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest))
}
