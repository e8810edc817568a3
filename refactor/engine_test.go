package refactor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel-refactor/ast"
	"sentinel-refactor/rules"
)

type fakeProvider struct {
	ruleID      string
	suggestions []Suggestion
	err         error
}

func (f *fakeProvider) RuleID() string { return f.ruleID }
func (f *fakeProvider) CanRefactor(v rules.Violation) bool { return v.RuleID == f.ruleID }
func (f *fakeProvider) GenerateSuggestions(ctx context.Context, rctx RefactoringContext) ([]Suggestion, error) {
	return f.suggestions, f.err
}

func TestGenerateSuggestionsOrderAndCap(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterProvider(&fakeProvider{
		ruleID: "r1",
		suggestions: []Suggestion{
			{ID: "s1", RuleID: "r1"}, {ID: "s2", RuleID: "r1"}, {ID: "s3", RuleID: "r1"}, {ID: "s4", RuleID: "r1"},
		},
	})

	engine := NewEngine(registry, 2, false, 0, nil)
	violations := []rules.Violation{{RuleID: "r1", Line: 1}}
	parseResult := &ast.ParseResult{Language: ast.LanguageJS}

	result := engine.GenerateSuggestions(context.Background(), parseResult, violations, "a.js")
	require.Len(t, result.Suggestions, 2)
	assert.Equal(t, "s1", result.Suggestions[0].ID)
	assert.Equal(t, "s2", result.Suggestions[1].ID)
}

func TestGenerateSuggestionsProviderErrorDoesNotAbortSweep(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterProvider(&fakeProvider{ruleID: "broken", err: assert.AnError})
	registry.RegisterProvider(&fakeProvider{ruleID: "ok", suggestions: []Suggestion{{ID: "s1", RuleID: "ok"}}})

	engine := NewEngine(registry, 0, false, 0, nil)
	violations := []rules.Violation{{RuleID: "broken", Line: 1}, {RuleID: "ok", Line: 2}}
	parseResult := &ast.ParseResult{Language: ast.LanguageJS}

	result := engine.GenerateSuggestions(context.Background(), parseResult, violations, "a.js")
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "s1", result.Suggestions[0].ID)
}

func TestGenerateSuggestionsSkipsViolationWithoutProvider(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterProvider(&fakeProvider{ruleID: "r1", suggestions: []Suggestion{{ID: "s1", RuleID: "r1"}}})

	engine := NewEngine(registry, 0, false, 0, nil)
	violations := []rules.Violation{{RuleID: "other", Line: 1}}
	parseResult := &ast.ParseResult{Language: ast.LanguageJS}

	result := engine.GenerateSuggestions(context.Background(), parseResult, violations, "a.js")
	assert.Empty(t, result.Suggestions)
}
