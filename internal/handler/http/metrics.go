package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"usher-web/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// slugPrefixes lists route prefixes whose trailing segment is a content
// slug. Slugs are collapsed to a placeholder so metric label cardinality
// stays bounded.
var slugPrefixes = []string{
	"/blog/",
	"/notice/",
	"/document/",
	"/related-news/",
	"/pages/",
	"/attachments/",
}

// normalizePath collapses content slugs in URL paths to a placeholder.
// Example: /blog/annual-report-2025 -> /blog/:slug
func normalizePath(path string) string {
	for _, prefix := range slugPrefixes {
		if strings.HasPrefix(path, prefix) && len(path) > len(prefix) {
			return prefix + ":slug"
		}
	}
	return path
}

// MetricsMiddleware records request counts and latency per method, path
// and status. Content slugs are normalized out of the path label.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := newStatusRecorder(w)

		start := time.Now()
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start)

		metrics.RecordHTTPRequest(
			r.Method,
			normalizePath(r.URL.Path),
			strconv.Itoa(wrapped.statusCode),
			duration,
		)
	})
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
