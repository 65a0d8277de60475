/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package defaults provides centralized configuration constants for the
// preflight tool.
//
// Timeouts, limits and naming defaults used by more than one package live
// here so the tool configuration, the HTTP server and the pipeline agree.
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.ValidateHandlerTimeout)
//	defer cancel()
package defaults
