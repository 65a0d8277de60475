/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package defaults

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeoutOrdering(t *testing.T) {
	assert.Less(t, ValidateHandlerTimeout, ServerWriteTimeout)
	assert.Less(t, ServerReadTimeout, ServerIdleTimeout)
	assert.Greater(t, ServerRateLimitBurst, 0)
	assert.Greater(t, Concurrency, 0)
}
