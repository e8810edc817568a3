package pkg

// contextKey namespaces values stored on a context.Context so they cannot
// collide with keys defined in other packages.
type contextKey string

// Context keys used by the tracing middleware and picked up by JSONLogger.
const (
	RequestIDKey contextKey = "request_id"
	TraceIDKey   contextKey = "trace_id"
	SpanIDKey    contextKey = "span_id"
	UserIDKey    contextKey = "user_id"
)

// LogLevel orders the severities JSONLogger understands.
type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)
