// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Content metrics track reads through the content-access layer
var (
	// ContentReadsTotal counts content reads by operation, backend and result
	ContentReadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_reads_total",
			Help: "Total number of content-access reads",
		},
		[]string{"operation", "backend", "result"}, // result: success, failure
	)

	// ContentReadDuration measures content read duration in seconds
	ContentReadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "content_read_duration_seconds",
			Help:    "Content-access read duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation", "backend"},
	)

	// LegacyDocumentFallbacksTotal counts reads served through the
	// legacy articles-to-documents mapping path
	LegacyDocumentFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "legacy_document_fallbacks_total",
			Help: "Total number of public-document reads served via the legacy article mapping",
		},
		[]string{"operation"},
	)

	// CacheRequestsTotal counts tagged-cache lookups by result
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_cache_requests_total",
			Help: "Total number of tagged-cache lookups",
		},
		[]string{"result"}, // result: hit, miss
	)

	// CacheInvalidationsTotal counts entries removed by tag invalidation
	CacheInvalidationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "content_cache_invalidations_total",
			Help: "Total number of cache entries removed by tag invalidation",
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordContentRead records one content-access read.
// Backend is "api" or "snapshot"; result is "success" or "failure".
func RecordContentRead(operation, backend string, err error, duration time.Duration) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	ContentReadsTotal.WithLabelValues(operation, backend, result).Inc()
	ContentReadDuration.WithLabelValues(operation, backend).Observe(duration.Seconds())
}

// RecordLegacyFallback records a public-document read served through the
// legacy article mapping.
func RecordLegacyFallback(operation string) {
	LegacyDocumentFallbacksTotal.WithLabelValues(operation).Inc()
}

// RecordCacheHit records a tagged-cache hit.
func RecordCacheHit() {
	CacheRequestsTotal.WithLabelValues("hit").Inc()
}

// RecordCacheMiss records a tagged-cache miss.
func RecordCacheMiss() {
	CacheRequestsTotal.WithLabelValues("miss").Inc()
}

// RecordCacheInvalidations records entries removed by a tag invalidation.
func RecordCacheInvalidations(count int) {
	CacheInvalidationsTotal.Add(float64(count))
}
