/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Reader decodes structured documents.
type Reader struct {
	format Format
	in     io.Reader
	closer io.Closer
}

// NewReader returns a Reader for in. Table is not a readable format.
func NewReader(format Format, in io.Reader) (*Reader, error) {
	if format != FormatJSON && format != FormatYAML {
		return nil, fmt.Errorf("unsupported input format: %q", format)
	}
	return &Reader{format: format, in: in}, nil
}

// NewFileReader opens path for decoding. The caller must Close the reader.
func NewFileReader(format Format, path string) (*Reader, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	r, err := NewReader(format, f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// Deserialize decodes the whole input into v.
func (r *Reader) Deserialize(v any) error {
	data, err := io.ReadAll(r.in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("document is empty")
	}

	switch r.format {
	case FormatJSON:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse yaml: %w", err)
		}
	}
	return nil
}

// Close closes the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// FromFile decodes the file at path into a new T, inferring the format from
// the extension.
func FromFile[T any](path string) (*T, error) {
	r, err := NewFileReader(FormatFromPath(path), path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	var v T
	if err := r.Deserialize(&v); err != nil {
		return nil, fmt.Errorf("failed to deserialize %q: %w", path, err)
	}
	return &v, nil
}
