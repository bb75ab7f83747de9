// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the mediation gateway:
// - OGC request throughput and latency per repository/project
// - Backend (map engine) call latency per endpoint kind
// - Circuit breaker state and transitions
// - Response cache efficiency
// - Portal API latency and throughput

var (
	// OGC Mediation Metrics
	OGCRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ogc_requests_total",
			Help: "Total number of mediated OGC requests",
		},
		[]string{"repository", "project", "status"},
	)

	OGCRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ogc_request_duration_seconds",
			Help:    "Duration of mediated OGC requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"repository", "project"},
	)

	OGCSizeRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ogc_size_rejections_total",
			Help: "Total number of requests rejected for exceeding configured map dimensions",
		},
		[]string{"repository", "project"},
	)

	OGCClientSelections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ogc_client_selections_total",
			Help: "Total number of backend client selections by kind",
		},
		[]string{"kind"}, // "web" or "gis"
	)

	// Backend Metrics
	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Duration of map engine backend calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind", "status"},
	)

	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Total number of map engine backend calls",
		},
		[]string{"kind", "status"},
	)

	// Response Cache Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "response_cache_hits_total",
			Help: "Total number of response cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "response_cache_misses_total",
			Help: "Total number of response cache misses",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through the circuit breaker",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Media Metrics
	MediaRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_requests_total",
			Help: "Total number of media file requests",
		},
		[]string{"repository", "status"},
	)
)

// RecordOGCRequest records one mediated OGC request.
func RecordOGCRequest(repository, project, status string, duration time.Duration) {
	OGCRequestsTotal.WithLabelValues(repository, project, status).Inc()
	OGCRequestDuration.WithLabelValues(repository, project).Observe(duration.Seconds())
}

// RecordSizeRejection records a request rejected by the dimension check.
func RecordSizeRejection(repository, project string) {
	OGCSizeRejections.WithLabelValues(repository, project).Inc()
}

// RecordClientSelection records which backend kind served a request.
func RecordClientSelection(kind string) {
	OGCClientSelections.WithLabelValues(kind).Inc()
}

// RecordResponseCache records a response cache lookup outcome.
func RecordResponseCache(hit bool) {
	if hit {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
}

// RecordBackendRequest records a map engine backend call.
func RecordBackendRequest(kind, status string, duration time.Duration) {
	BackendRequestsTotal.WithLabelValues(kind, status).Inc()
	BackendRequestDuration.WithLabelValues(kind, status).Observe(duration.Seconds())
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordMediaRequest records a media file request.
func RecordMediaRequest(repository, status string) {
	MediaRequestsTotal.WithLabelValues(repository, status).Inc()
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
