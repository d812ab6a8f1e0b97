/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dispatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "statctl_dispatch_duration_seconds",
			Help:    "Time taken to fan out one query and collect all node results",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	dispatchNodesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statctl_dispatch_nodes_total",
			Help: "Per-node query outcomes",
		},
		[]string{"status"}, // ok, NODE_UNREACHABLE, NODE_TIMEOUT, PROTOCOL_ERROR
	)

	dispatchMatchedSamples = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "statctl_dispatch_matched_samples",
			Help: "Number of matched samples collected by the last query",
		},
	)
)
