/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	validationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "preflight_validation_duration_seconds",
			Help:    "Time taken to run the preflight pipeline for one project",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	validationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preflight_validation_total",
			Help: "Total number of preflight runs by terminal state",
		},
		[]string{"state"}, // Succeeded or Failed
	)

	findingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preflight_findings_total",
			Help: "Total number of findings reported by kind",
		},
		[]string{"kind"},
	)

	phaseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "preflight_phase_duration_seconds",
			Help:    "Time taken by individual pipeline phases",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
		},
		[]string{"phase"},
	)
)
