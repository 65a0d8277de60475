/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *StructuredError
		want string
	}{
		{"without cause", New(ErrCodeNotFound, "artifact missing"), "[NOT_FOUND] artifact missing"},
		{"with cause", Wrap(ErrCodeInternal, "read failed", errors.New("disk")), "[INTERNAL_ERROR] read failed: disk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWrapWithContext_Unwraps(t *testing.T) {
	cause := errors.New("permission denied")
	err := WrapWithContext(ErrCodeStorageUnavailable, "write hosts", cause, map[string]any{"path": "/etc/hosts"})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "/etc/hosts", err.Context["path"])
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", New(ErrCodeTimeout, "slow"))
	assert.Equal(t, ErrCodeTimeout, CodeOf(wrapped))
	assert.Equal(t, ErrCodeInternal, CodeOf(errors.New("plain")))
}

func TestIsCode_NestedChain(t *testing.T) {
	inner := New(ErrCodeNotFound, "missing")
	outer := Wrap(ErrCodeInternal, "load", inner)

	assert.True(t, IsCode(outer, ErrCodeInternal))
	assert.True(t, IsCode(outer, ErrCodeNotFound))
	assert.False(t, IsCode(outer, ErrCodeTimeout))
	assert.False(t, IsCode(nil, ErrCodeInternal))
}
