// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

// Package metrics holds the Prometheus collectors for Gridiron. Collectors
// are registered on the default registry at init and exposed at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP traffic
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridiron_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gridiron_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds, including any slowdown delay",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gridiron_http_active_requests",
			Help: "Number of in-flight HTTP requests",
		},
	)

	// Admission control
	AuthFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridiron_auth_failures_total",
			Help: "Requests rejected by identity resolution or entitlement",
		},
		[]string{"reason"},
	)

	QuotaRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridiron_quota_rejections_total",
			Help: "Requests rejected because the monthly call quota is exhausted",
		},
		[]string{"endpoint"},
	)

	QuotaLedgerUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridiron_quota_ledger_updates_total",
			Help: "Quota ledger decrement outcomes",
		},
		[]string{"result"}, // ok, error, skipped
	)

	SlowdownDelayed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridiron_slowdown_delayed_requests_total",
			Help: "Requests delayed by a slowdown rule",
		},
		[]string{"rule"},
	)

	SlowdownDelay = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gridiron_slowdown_delay_seconds",
			Help:    "Delay imposed on slowed requests",
			Buckets: []float64{.25, .5, .75, 1, 1.5, 2, 3, 5},
		},
		[]string{"rule"},
	)

	SlowdownEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gridiron_slowdown_entries",
			Help: "Live slowdown window entries across all governors",
		},
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gridiron_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridiron_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Storage
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gridiron_db_query_duration_seconds",
			Help:    "Database query latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridiron_db_query_errors_total",
			Help: "Database query failures",
		},
		[]string{"operation"},
	)

	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridiron_cache_requests_total",
			Help: "Response cache lookups",
		},
		[]string{"backend", "result"}, // result: hit, miss, error
	)
)

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, endpoint, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge up or down.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordDBQuery records latency and, when err is non-nil, a failure.
func RecordDBQuery(operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordSlowdown records a delayed request for rule.
func RecordSlowdown(rule string, delay time.Duration) {
	SlowdownDelayed.WithLabelValues(rule).Inc()
	SlowdownDelay.WithLabelValues(rule).Observe(delay.Seconds())
}

// RecordCacheLookup records a cache hit, miss, or error.
func RecordCacheLookup(backend, result string) {
	CacheRequests.WithLabelValues(backend, result).Inc()
}

// RecordBreakerTransition updates the state gauge and transition counter.
// States are the strings gobreaker reports: closed, half-open, open.
func RecordBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
}

func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}
