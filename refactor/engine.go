package refactor

import (
	"context"
	"log"
	"time"

	"sentinel-refactor/ast"
	"sentinel-refactor/rules"
)

// DefaultMaxSuggestionsPerViolation bounds how many suggestions a single
// provider call may contribute per violation.
const DefaultMaxSuggestionsPerViolation = 3

// MetricsRecorder is the subset of instrumentation the engine emits to.
type MetricsRecorder interface {
	IncSuggestionsGenerated(ruleID string, count int)
	IncRefactoringApplied(ruleID string, success bool)
}

// Engine generates suggestions from violations and applies a suggestion's
// transformations against source text.
type Engine struct {
	registry                   *Registry
	maxSuggestionsPerViolation int
	enableAutoFix              bool
	minConfidenceForAutoFix    int
	metrics                    MetricsRecorder
}

// NewEngine constructs an Engine. maxSuggestionsPerViolation <= 0 selects
// DefaultMaxSuggestionsPerViolation. metrics may be nil.
func NewEngine(registry *Registry, maxSuggestionsPerViolation int, enableAutoFix bool, minConfidenceForAutoFix int, metrics MetricsRecorder) *Engine {
	if maxSuggestionsPerViolation <= 0 {
		maxSuggestionsPerViolation = DefaultMaxSuggestionsPerViolation
	}
	return &Engine{
		registry:                   registry,
		maxSuggestionsPerViolation: maxSuggestionsPerViolation,
		enableAutoFix:              enableAutoFix,
		minConfidenceForAutoFix:    minConfidenceForAutoFix,
		metrics:                    metrics,
	}
}

// GenerateSuggestions walks violations in order, consulting the provider
// registered for each violation's rule ID, and builds the global suggestion
// list in violation order, keeping each provider's own order (capped at
// maxSuggestionsPerViolation) without re-sorting. A provider failure is caught and treated as "no
// suggestions for this violation"; it does not abort the sweep.
func (e *Engine) GenerateSuggestions(ctx context.Context, parseResult *ast.ParseResult, violations []rules.Violation, fileName string) RefactoringResult {
	start := time.Now()

	result := RefactoringResult{FileName: fileName, Language: parseResult.Language}
	for _, violation := range violations {
		provider, ok := e.registry.GetProvider(violation.RuleID)
		if !ok || !provider.CanRefactor(violation) {
			continue
		}

		rctx := RefactoringContext{
			ParseResult: parseResult,
			Violation:   violation,
			FileName:    fileName,
			SourceCode:  parseResult.SourceCode,
		}

		suggestions, err := e.invokeProvider(ctx, provider, rctx)
		if err != nil {
			log.Printf("refactor: provider for rule %q failed: %v", violation.RuleID, err)
			continue
		}

		if len(suggestions) > e.maxSuggestionsPerViolation {
			suggestions = suggestions[:e.maxSuggestionsPerViolation]
		}
		result.Suggestions = append(result.Suggestions, suggestions...)
		if e.metrics != nil {
			e.metrics.IncSuggestionsGenerated(violation.RuleID, len(suggestions))
		}
	}

	result.TotalSuggestions = len(result.Suggestions)
	result.ExecutionTimeMs = float64(time.Since(start)) / float64(time.Millisecond)
	return result
}

// invokeProvider recovers from a panicking provider the same way the rule
// engine recovers from a panicking rule, converting it into an error so the
// sweep can continue.
func (e *Engine) invokeProvider(ctx context.Context, provider Provider, rctx RefactoringContext) (suggestions []Suggestion, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &providerPanicError{value: r}
		}
	}()
	return provider.GenerateSuggestions(ctx, rctx)
}

type providerPanicError struct{ value interface{} }

func (e *providerPanicError) Error() string {
	return "provider panicked"
}

// GetAutoFixableSuggestions returns the subset of suggestions eligible for
// unreviewed application: empty unless auto-fix is enabled, and otherwise
// only those at or above the configured confidence threshold.
func (e *Engine) GetAutoFixableSuggestions(suggestions []Suggestion) []Suggestion {
	if !e.enableAutoFix {
		return nil
	}
	var out []Suggestion
	for _, s := range suggestions {
		if s.ConfidenceScore >= e.minConfidenceForAutoFix {
			out = append(out, s)
		}
	}
	return out
}
