/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package manifest

import (
	"errors"
	"io/fs"
	"os"

	apperrors "github.com/NVIDIA/discovery-preflight/pkg/errors"
	"github.com/NVIDIA/discovery-preflight/pkg/serializer"
)

// FileSystem is the filesystem collaborator used by the checks in this package.
type FileSystem interface {
	// Exists reports whether a regular file exists at path.
	Exists(path string) bool
	// ReadStructured decodes the JSON or YAML document at path into a generic tree.
	ReadStructured(path string) (any, error)
}

// OSFileSystem implements FileSystem on the local disk.
type OSFileSystem struct{}

// Exists implements FileSystem.
func (OSFileSystem) Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// ReadStructured implements FileSystem. Missing files return an error with
// code NOT_FOUND; undecodable ones INVALID_FORMAT.
func (OSFileSystem) ReadStructured(path string) (any, error) {
	r, err := serializer.NewFileReader(serializer.FormatFromPath(path), path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, "artifact not found", err)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to open artifact", err)
	}
	defer func() { _ = r.Close() }()

	var doc any
	if err := r.Deserialize(&doc); err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidFormat, "failed to parse artifact", err,
			map[string]any{"path": path})
	}
	return doc, nil
}
