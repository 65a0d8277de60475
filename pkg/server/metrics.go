/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preflight_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status.",
		},
		[]string{"path", "method", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "preflight_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	rateLimitRejects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "preflight_http_rate_limit_rejects_total",
			Help: "Requests rejected by the per-client rate limiter.",
		},
	)

	panicsRecovered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "preflight_http_panics_recovered_total",
			Help: "Handler panics recovered by the server.",
		},
	)
)
