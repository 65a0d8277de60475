/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package hosts

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	hostsEntriesUpserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preflight_hosts_entries_upserted_total",
			Help: "Total number of host table entries processed by outcome",
		},
		[]string{"result"}, // replaced, appended or unchanged
	)

	hostsSyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "preflight_hosts_sync_duration_seconds",
			Help:    "Time taken to synchronize the host table",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
		},
	)
)
