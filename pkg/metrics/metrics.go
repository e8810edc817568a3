// Package metrics provides Prometheus metrics for the engines and the HTTP
// surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all application metrics and satisfies both
// rules.MetricsRecorder and refactor.MetricsRecorder structurally (neither
// package imports this one, so there's no cycle).
type Collector struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	RuleExecutionDuration *prometheus.HistogramVec
	RuleTimeoutsTotal     *prometheus.CounterVec

	SuggestionsGeneratedTotal  *prometheus.CounterVec
	RefactoringsAppliedTotal   *prometheus.CounterVec

	ActiveConnections prometheus.Gauge
	GoroutineCount    prometheus.Gauge
	MemoryUsage       prometheus.Gauge
}

// NewCollector creates and registers all metrics under namespace (defaults
// to "sentinel_refactor" when empty).
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "sentinel_refactor"
	}

	return &Collector{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path", "status"},
		),
		RuleExecutionDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rule_execution_duration_seconds",
				Help:      "Per-rule execution duration in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"rule_id"},
		),
		RuleTimeoutsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rule_timeouts_total",
				Help:      "Total number of rule executions that hit the per-rule deadline",
			},
			[]string{"rule_id"},
		),
		SuggestionsGeneratedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "suggestions_generated_total",
				Help:      "Total number of refactoring suggestions generated",
			},
			[]string{"rule_id"},
		),
		RefactoringsAppliedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "refactorings_applied_total",
				Help:      "Total number of refactoring apply attempts",
			},
			[]string{"rule_id", "success"},
		),
		ActiveConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_connections",
				Help:      "Number of active HTTP connections",
			},
		),
		GoroutineCount: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "goroutine_count",
				Help:      "Number of goroutines",
			},
		),
		MemoryUsage: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "memory_usage_bytes",
				Help:      "Memory usage in bytes",
			},
		),
	}
}

// ObserveRuleExecution implements rules.MetricsRecorder.
func (c *Collector) ObserveRuleExecution(ruleID string, seconds float64) {
	c.RuleExecutionDuration.WithLabelValues(ruleID).Observe(seconds)
}

// IncRuleTimeout implements rules.MetricsRecorder.
func (c *Collector) IncRuleTimeout(ruleID string) {
	c.RuleTimeoutsTotal.WithLabelValues(ruleID).Inc()
}

// IncSuggestionsGenerated implements refactor.MetricsRecorder.
func (c *Collector) IncSuggestionsGenerated(ruleID string, count int) {
	c.SuggestionsGeneratedTotal.WithLabelValues(ruleID).Add(float64(count))
}

// IncRefactoringApplied implements refactor.MetricsRecorder.
func (c *Collector) IncRefactoringApplied(ruleID string, success bool) {
	status := "false"
	if success {
		status = "true"
	}
	c.RefactoringsAppliedTotal.WithLabelValues(ruleID, status).Inc()
}
