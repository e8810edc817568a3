package rules

import (
	"context"
	"fmt"
	"time"

	"sentinel-refactor/ast"
)

// DefaultRuleTimeout is applied when an Engine is constructed with a
// non-positive timeout.
const DefaultRuleTimeout = 5000 * time.Millisecond

// MetricsRecorder is the subset of instrumentation the engine emits to.
// Accepting an interface here (rather than importing pkg/metrics directly)
// keeps rules a leaf package; pkg/metrics.Collector satisfies it
// structurally.
type MetricsRecorder interface {
	ObserveRuleExecution(ruleID string, seconds float64)
	IncRuleTimeout(ruleID string)
}

// Engine executes the rules held in a Registry against a parse result,
// enforcing a per-rule wall-clock deadline. The rule and refactor engines
// are single-threaded cooperative within one analysis (spec §5): rules run
// sequentially, the deadline bounds wall time rather than preempting the
// rule's goroutine.
type Engine struct {
	registry *Registry
	timeout  time.Duration
	metrics  MetricsRecorder
}

// NewEngine constructs an Engine bound to registry. A non-positive timeout
// selects DefaultRuleTimeout. metrics may be nil.
func NewEngine(registry *Registry, timeout time.Duration, metrics MetricsRecorder) *Engine {
	if timeout <= 0 {
		timeout = DefaultRuleTimeout
	}
	return &Engine{registry: registry, timeout: timeout, metrics: metrics}
}

// Execute runs every enabled rule applicable to parseResult.Language, in
// registration order, and aggregates their violations into an EngineResult.
// A parse result carrying parse errors must not be passed in — the
// coordinator is responsible for short-circuiting before this call.
func (e *Engine) Execute(parseResult *ast.ParseResult, fileName string) EngineResult {
	start := time.Now()

	result := EngineResult{}
	for _, rule := range e.registry.GetRules() {
		meta := rule.Metadata()
		cfg, ok := e.registry.GetConfig(meta.ID)
		if !ok || !cfg.Enabled {
			continue
		}
		if !meta.Language.Applies(parseResult.Language) {
			continue
		}

		execResult := e.runOne(rule, meta, cfg, parseResult, fileName)
		result.Results = append(result.Results, execResult)
		result.Violations = append(result.Violations, execResult.Violations...)
	}

	result.TotalExecutionTimeMs = float64(time.Since(start)) / float64(time.Millisecond)
	result.Issues = buildIssues(result.Violations, fileName)
	return result
}

// runOne executes a single rule subject to the engine's wall-clock
// deadline. The rule runs in its own goroutine; a buffered channel lets
// that goroutine deliver its result (or never return, if it overran the
// deadline) without blocking the engine beyond the timeout.
func (e *Engine) runOne(rule Rule, meta Metadata, cfg Config, parseResult *ast.ParseResult, fileName string) ExecutionResult {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	ruleCtx := &RuleContext{
		ParseResult: parseResult,
		FileName:    fileName,
		SourceCode:  parseResult.SourceCode,
		Options:     cfg.Options,
	}

	type outcome struct {
		violations []Violation
		panicked   interface{}
	}
	done := make(chan outcome, 1)
	start := time.Now()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{panicked: r}
				return
			}
		}()
		done <- outcome{violations: rule.Check(ruleCtx)}
	}()

	select {
	case out := <-done:
		elapsed := time.Since(start)
		execResult := ExecutionResult{RuleID: meta.ID, ExecutionTimeMs: float64(elapsed) / float64(time.Millisecond)}
		if out.panicked != nil {
			execResult.Error = fmt.Sprintf("rule panicked: %v", out.panicked)
			e.recordMetrics(meta.ID, elapsed, false)
			return execResult
		}
		execResult.Violations = applySeverityOverride(out.violations, cfg)
		e.recordMetrics(meta.ID, elapsed, false)
		return execResult
	case <-ctx.Done():
		e.recordMetrics(meta.ID, e.timeout, true)
		return ExecutionResult{
			RuleID:          meta.ID,
			ExecutionTimeMs: float64(e.timeout) / float64(time.Millisecond),
			Error:           "Rule execution timeout",
		}
	}
}

func (e *Engine) recordMetrics(ruleID string, elapsed time.Duration, timedOut bool) {
	if e.metrics == nil {
		return
	}
	e.metrics.ObserveRuleExecution(ruleID, elapsed.Seconds())
	if timedOut {
		e.metrics.IncRuleTimeout(ruleID)
	}
}

// applySeverityOverride rewrites each violation's severity to cfg's
// override, if one is set.
func applySeverityOverride(violations []Violation, cfg Config) []Violation {
	if cfg.SeverityOverride == "" {
		return violations
	}
	out := make([]Violation, len(violations))
	for i, v := range violations {
		v.Severity = cfg.SeverityOverride
		out[i] = v
	}
	return out
}

// buildIssues synthesizes the engine-level flat Issue list: id is
// ruleId-index, fileName is copied onto every entry.
func buildIssues(violations []Violation, fileName string) []Issue {
	issues := make([]Issue, len(violations))
	for i, v := range violations {
		issues[i] = Issue{
			ID:        fmt.Sprintf("%s-%d", v.RuleID, i),
			RuleID:    v.RuleID,
			Message:   v.Message,
			Severity:  v.Severity,
			Line:      v.Line,
			Column:    v.Column,
			EndLine:   v.EndLine,
			EndColumn: v.EndColumn,
			FileName:  fileName,
		}
	}
	return issues
}
