package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"sentinel-refactor/pkg"
)

// Tracing stamps every request with a request/trace/span id, echoed back as
// response headers and stashed on the context for JSONLogger to pick up.
func Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.New().String()
		}
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		spanID := uuid.New().String()[:8]

		ctx := context.WithValue(r.Context(), pkg.RequestIDKey, requestID)
		ctx = context.WithValue(ctx, pkg.TraceIDKey, traceID)
		ctx = context.WithValue(ctx, pkg.SpanIDKey, spanID)

		w.Header().Set("X-Trace-ID", traceID)
		w.Header().Set("X-Request-ID", requestID)
		w.Header().Set("X-Span-ID", spanID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
