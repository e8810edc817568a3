package coordinator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel-refactor/apperrors"
	"sentinel-refactor/catalog"
	"sentinel-refactor/refactor"
	"sentinel-refactor/rules"
	"sentinel-refactor/store"
)

func newTestCoordinator() (*Coordinator, store.Store) {
	ruleRegistry := rules.NewRegistry()
	providerRegistry := refactor.NewRegistry()
	catalog.RegisterAll(ruleRegistry, providerRegistry)

	ruleEngine := rules.NewEngine(ruleRegistry, rules.DefaultRuleTimeout, nil)
	refactorEngine := refactor.NewEngine(providerRegistry, refactor.DefaultMaxSuggestionsPerViolation, false, 80, nil)
	s := store.NewMemoryStore()
	return New(ruleEngine, refactorEngine, s), s
}

func TestAnalyzeScenario1ParseErrorIsFatalAndNothingPersists(t *testing.T) {
	c, s := newTestCoordinator()
	_, err := c.Analyze(context.Background(), "const x: number = ;", "a.ts", "ts")
	require.Error(t, err)
	var parseFailure *apperrors.ParseFailure
	require.ErrorAs(t, err, &parseFailure)
	require.NotEmpty(t, parseFailure.Errors)

	results, listErr := s.ListAnalyses(context.Background(), store.ListFilter{})
	require.NoError(t, listErr)
	assert.Empty(t, results)
}

func TestAnalyzeScenario2NestedGlideRecord(t *testing.T) {
	c, _ := newTestCoordinator()
	source := `
while (gr1.next()) {
	var gr2 = new GlideRecord('problem');
	gr2.addQuery('incident', gr1.sys_id);
	gr2.query();
}
`
	result, err := c.Analyze(context.Background(), source, "incident.js", "js")
	require.NoError(t, err)

	var found bool
	for _, issue := range result.Issues {
		if issue.Type == catalog.GlideNestedQueryRuleID {
			found = true
			assert.Equal(t, store.SeverityHigh, issue.Severity)
		}
	}
	assert.True(t, found, "expected a glide-nested-query issue")

	titles := make([]string, 0)
	for _, s := range result.Suggestions {
		titles = append(titles, s.Title)
	}
	assert.Contains(t, titlesJoined(titles), "GlideAggregate")
	assert.Contains(t, titlesJoined(titles), "encoded query")
}

func titlesJoined(titles []string) string {
	joined := ""
	for _, t := range titles {
		joined += t + "|"
	}
	return joined
}

func TestAnalyzeScenario3AnyType(t *testing.T) {
	c, _ := newTestCoordinator()
	result, err := c.Analyze(context.Background(), "function t(d: any): any { return d; }", "a.ts", "ts")
	require.NoError(t, err)

	count := 0
	for _, issue := range result.Issues {
		if issue.Type == catalog.TSNoAnyRuleID {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestAnalyzeEmptySourceProducesWellFormedResult(t *testing.T) {
	c, _ := newTestCoordinator()
	result, err := c.Analyze(context.Background(), "", "empty.js", "js")
	require.NoError(t, err)
	assert.Empty(t, result.Issues)
	assert.Empty(t, result.Suggestions)
	assert.Equal(t, 0, result.Stats.TotalIssues)
}

func TestAnalyzeUnsupportedLanguage(t *testing.T) {
	c, _ := newTestCoordinator()
	_, err := c.Analyze(context.Background(), "x", "a.py", "python")
	require.Error(t, err)
	var unsupported *apperrors.UnsupportedLanguageError
	require.ErrorAs(t, err, &unsupported)
}

func TestApplySuggestionRoundTrip(t *testing.T) {
	c, _ := newTestCoordinator()
	result, err := c.Analyze(context.Background(), `console.log("debug");`, "a.js", "js")
	require.NoError(t, err)
	require.NotEmpty(t, result.Suggestions)

	suggestionID := result.Suggestions[0].ID
	applied, err := c.ApplySuggestion(context.Background(), result.Metadata.ID, suggestionID, `console.log("debug");`, "a.js")
	require.NoError(t, err)
	assert.True(t, applied.Success)
}

func TestApplySuggestionUnknownAnalysis(t *testing.T) {
	c, _ := newTestCoordinator()
	_, err := c.ApplySuggestion(context.Background(), "missing", "sugg-1", "code", "a.js")
	require.Error(t, err)
}
