/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package server provides the HTTP server shared by the API surface.
//
// # Overview
//
// A Server exposes system endpoints (/, /health, /ready, /metrics) and any
// API handlers registered with WithHandler. API handlers run behind a
// middleware chain that recovers panics, assigns an X-Request-Id,
// negotiates the API version from the Accept header, applies a
// per-client token bucket and logs each request.
//
// Errors are written as ErrorResponse bodies; WriteErrorFromErr maps
// structured error codes to HTTP status and retry hints.
//
// # Usage
//
//	s := server.New(
//		server.WithName("preflight-api-server"),
//		server.WithHandler(map[string]http.HandlerFunc{"/v1/validate": h}),
//	)
//	err := s.Run(ctx)
package server
