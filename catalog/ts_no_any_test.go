package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel-refactor/parser"
	"sentinel-refactor/refactor"
	"sentinel-refactor/rules"
)

func TestTSNoAnyRuleFlagsEachAnyAnnotation(t *testing.T) {
	// Scenario 3
	result := parser.ParseTS("function t(d: any): any { return d; }", "a.ts")
	require.Empty(t, result.Errors)

	rule := &TSNoAnyRule{}
	ctx := &rules.RuleContext{ParseResult: result, FileName: "a.ts", SourceCode: "function t(d: any): any { return d; }"}
	violations := rule.Check(ctx)

	assert.Len(t, violations, 2)
	for _, v := range violations {
		assert.Equal(t, TSNoAnyRuleID, v.RuleID)
	}
}

func TestTSNoAnyProviderSuggestions(t *testing.T) {
	provider := &TSNoAnyProvider{}
	violation := rules.Violation{RuleID: TSNoAnyRuleID, Line: 1, Column: 11}

	suggestions, err := provider.GenerateSuggestions(context.Background(), refactor.RefactoringContext{Violation: violation})
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	assert.Equal(t, "Replace any with unknown", suggestions[0].Title)
	assert.Equal(t, 85, suggestions[0].ConfidenceScore)

	assert.Equal(t, "Create specific interface", suggestions[1].Title)
	assert.Equal(t, 70, suggestions[1].ConfidenceScore)
}
