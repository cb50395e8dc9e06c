/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_upstream_requests_total",
		Help: "Cluster API requests issued by the fleet apiserver, by operation and result.",
	}, []string{"operation", "result"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fleet_upstream_request_duration_seconds",
		Help:    "Latency of cluster API requests, by operation.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	fanoutDegraded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_fanout_degraded_total",
		Help: "Fan-out sub-reads that timed out or failed and were degraded to unknown.",
	}, []string{"source"})
)

// ObserveUpstream records one cluster API request outcome.
func ObserveUpstream(operation string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	upstreamRequests.WithLabelValues(operation, result).Inc()
	upstreamDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// FanoutDegradedInc counts one degraded sub-read for the given source.
func FanoutDegradedInc(source string) {
	if source == "" {
		return
	}
	fanoutDegraded.WithLabelValues(source).Inc()
}
