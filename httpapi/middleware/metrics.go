package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"sentinel-refactor/pkg/metrics"
)

// Metrics records per-request count/duration against a metrics.Collector.
func Metrics(c *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := &statusCapture{ResponseWriter: w, status: http.StatusOK}

			c.ActiveConnections.Inc()
			defer c.ActiveConnections.Dec()

			next.ServeHTTP(wrapper, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(wrapper.status)
			path := normalizePath(r.URL.Path)

			c.HTTPRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			c.HTTPRequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
		})
	}
}

type statusCapture struct {
	http.ResponseWriter
	status int
}

func (w *statusCapture) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// normalizePath collapses path segments that look like opaque IDs, keeping
// metric label cardinality bounded.
func normalizePath(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if len(part) == 36 && strings.Count(part, "-") == 4 {
			parts[i] = ":id"
		} else if isNumeric(part) && len(part) > 3 {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
