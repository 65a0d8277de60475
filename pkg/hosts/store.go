/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package hosts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/NVIDIA/discovery-preflight/pkg/defaults"
	apperrors "github.com/NVIDIA/discovery-preflight/pkg/errors"
)

// Backend names a Store implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// DefaultPath is the file backend's default table.
const DefaultPath = defaults.HostsPath

// NewStore returns the Store for backend. path is the hosts file for the
// file backend and the database for the sqlite backend.
func NewStore(backend Backend, path string) (Store, error) {
	switch backend {
	case BackendFile, "":
		if path == "" {
			path = DefaultPath
		}
		return NewFileStore(path), nil
	case BackendSQLite:
		return NewSQLiteStore(path)
	case BackendMemory:
		return NewMemoryStore(nil), nil
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, fmt.Sprintf("unknown hosts backend %q", backend))
	}
}

// FileStore keeps the table in a file using /etc/hosts syntax.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore for path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Read implements Store.
func (s *FileStore) Read(ctx context.Context) ([]Line, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeStorageUnavailable, "failed to read hosts file", err,
			map[string]any{"path": s.Path})
	}
	return Parse(data), nil
}

// Write implements Store. The new content is written to a temporary file in
// the same directory and renamed over the table.
func (s *FileStore) Write(ctx context.Context, lines []Line) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	wrap := func(msg string, err error) error {
		return apperrors.WrapWithContext(apperrors.ErrCodeStorageUnavailable, msg, err,
			map[string]any{"path": s.Path})
	}

	mode := os.FileMode(0o644)
	if fi, err := os.Stat(s.Path); err == nil {
		mode = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), "."+filepath.Base(s.Path)+".tmp-*")
	if err != nil {
		return wrap("failed to create temporary hosts file", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(Render(lines)); err != nil {
		_ = tmp.Close()
		return wrap("failed to write temporary hosts file", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return wrap("failed to sync temporary hosts file", err)
	}
	if err := tmp.Close(); err != nil {
		return wrap("failed to close temporary hosts file", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return wrap("failed to set hosts file mode", err)
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		return wrap("failed to replace hosts file", err)
	}
	return nil
}

// MemoryStore keeps the table in memory.
type MemoryStore struct {
	mu    sync.Mutex
	lines []Line
}

// NewMemoryStore returns a MemoryStore seeded with lines.
func NewMemoryStore(lines []Line) *MemoryStore {
	return &MemoryStore{lines: cloneLines(lines)}
}

// Read implements Store.
func (s *MemoryStore) Read(ctx context.Context) ([]Line, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLines(s.lines), nil
}

// Write implements Store.
func (s *MemoryStore) Write(ctx context.Context, lines []Line) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = cloneLines(lines)
	return nil
}
