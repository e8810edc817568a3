package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel-refactor/parser"
	"sentinel-refactor/refactor"
	"sentinel-refactor/rules"
)

func TestNoConsoleLogRuleFlagsCall(t *testing.T) {
	source := `console.log("debug");`
	result := parser.ParseJS(source, "a.js")
	require.Empty(t, result.Errors)

	rule := &NoConsoleLogRule{}
	ctx := &rules.RuleContext{ParseResult: result, FileName: "a.js", SourceCode: source}
	violations := rule.Check(ctx)
	require.Len(t, violations, 1)
	assert.Equal(t, NoConsoleLogRuleID, violations[0].RuleID)
}

func TestPreferConstRuleFlagsNeverReassignedLet(t *testing.T) {
	source := `let x = 1;`
	result := parser.ParseJS(source, "a.js")
	require.Empty(t, result.Errors)

	rule := &PreferConstRule{}
	ctx := &rules.RuleContext{ParseResult: result, FileName: "a.js", SourceCode: source}
	violations := rule.Check(ctx)
	require.Len(t, violations, 1)
	assert.Equal(t, PreferConstRuleID, violations[0].RuleID)
}

func TestRegisterAllWiresEveryRuleToAProvider(t *testing.T) {
	ruleRegistry := rules.NewRegistry()
	providerRegistry := refactor.NewRegistry()
	RegisterAll(ruleRegistry, providerRegistry)

	for _, rule := range ruleRegistry.GetRules() {
		id := rule.Metadata().ID
		provider, ok := providerRegistry.GetProvider(id)
		require.Truef(t, ok, "rule %q has no matching provider", id)
		assert.Equal(t, id, provider.RuleID())
	}
}
