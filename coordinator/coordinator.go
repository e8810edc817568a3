// Package coordinator implements the analysis pipeline (C7): parse, run
// rules, run the refactor engine, assemble and persist an AnalysisResult.
// The HTTP layer is a thin translator over Analyze.
package coordinator

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"sentinel-refactor/apperrors"
	"sentinel-refactor/ast"
	"sentinel-refactor/parser"
	"sentinel-refactor/refactor"
	"sentinel-refactor/rules"
	"sentinel-refactor/store"
)

// Coordinator wires together the two engines and the persistence store. It
// is an ordinary value constructed once in the composition root, not a
// package-level singleton (design note in SPEC_FULL.md §11).
type Coordinator struct {
	ruleEngine     *rules.Engine
	refactorEngine *refactor.Engine
	store          store.Store

	analysisCounter atomic.Int64
}

// New constructs a Coordinator from its three collaborators.
func New(ruleEngine *rules.Engine, refactorEngine *refactor.Engine, s store.Store) *Coordinator {
	return &Coordinator{ruleEngine: ruleEngine, refactorEngine: refactorEngine, store: s}
}

// Analyze runs the full pipeline against one source file and persists the
// result. A non-empty parser error list short-circuits with
// apperrors.ParseFailure before any rule or provider runs.
func (c *Coordinator) Analyze(ctx context.Context, source, fileName, language string) (store.AnalysisResult, error) {
	lang := ast.Language(language)
	if !lang.Valid() {
		return store.AnalysisResult{}, &apperrors.UnsupportedLanguageError{Language: language}
	}

	var parseResult *ast.ParseResult
	switch lang {
	case ast.LanguageJS:
		parseResult = parser.ParseJS(source, fileName)
	case ast.LanguageTS:
		parseResult = parser.ParseTS(source, fileName)
	}

	if parseResult.HasErrors() {
		details := make([]apperrors.ParseErrorDetail, 0, len(parseResult.Errors))
		for _, e := range parseResult.Errors {
			details = append(details, apperrors.ParseErrorDetail{Message: e.Message, Line: e.Line, Column: e.Column})
		}
		return store.AnalysisResult{}, &apperrors.ParseFailure{Errors: details}
	}

	ruleResult := c.ruleEngine.Execute(parseResult, fileName)
	refactorResult := c.refactorEngine.GenerateSuggestions(ctx, parseResult, ruleResult.Violations, fileName)

	result := c.buildResult(parseResult, fileName, language, len(source), ruleResult, refactorResult)

	if err := c.store.SaveAnalysis(ctx, result); err != nil {
		return store.AnalysisResult{}, fmt.Errorf("save analysis: %w", err)
	}
	return result, nil
}

func (c *Coordinator) buildResult(parseResult *ast.ParseResult, fileName, language string, fileSize int, ruleResult rules.EngineResult, refactorResult refactor.RefactoringResult) store.AnalysisResult {
	id := c.nextAnalysisID()

	issues := make([]store.Issue, 0, len(ruleResult.Violations))
	stats := store.Stats{}
	for _, v := range ruleResult.Violations {
		sev := toStoreSeverity(v.Severity)
		issues = append(issues, store.Issue{
			ID:        "issue-" + uuid.NewString()[:8],
			Type:      v.RuleID,
			Message:   v.Message,
			Severity:  sev,
			Line:      v.Line,
			Column:    v.Column,
			EndLine:   v.EndLine,
			EndColumn: v.EndColumn,
			FileName:  fileName,
		})
		tallySeverity(&stats, sev)
	}
	stats.TotalIssues = len(issues)

	suggestionViews := make([]store.SuggestionView, 0, len(refactorResult.Suggestions))
	fullSuggestions := make(map[string]store.PersistedSuggestion, len(refactorResult.Suggestions))
	for _, s := range refactorResult.Suggestions {
		suggestionViews = append(suggestionViews, store.SuggestionView{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			Category:    "refactoring",
			Effort:      s.Impact.EstimatedTime,
		})
		fullSuggestions[s.ID] = toPersistedSuggestion(s)
	}

	return store.AnalysisResult{
		Metadata: store.AnalysisMetadata{
			ID:           id,
			FileName:     fileName,
			FileSize:     fileSize,
			Language:     language,
			AnalysisDate: time.Now().UTC().Format(time.RFC3339),
			DurationMs:   ruleResult.TotalExecutionTimeMs + refactorResult.ExecutionTimeMs,
		},
		Issues:          issues,
		Suggestions:     suggestionViews,
		Stats:           stats,
		FullSuggestions: fullSuggestions,
	}
}

func (c *Coordinator) nextAnalysisID() string {
	n := c.analysisCounter.Add(1)
	return fmt.Sprintf("analysis-%d", n)
}

func toStoreSeverity(s rules.Severity) store.Severity {
	switch s {
	case rules.SeverityCritical:
		return store.SeverityCritical
	case rules.SeverityHigh:
		return store.SeverityHigh
	case rules.SeverityMedium:
		return store.SeverityMedium
	case rules.SeverityLow:
		return store.SeverityLow
	default:
		return store.Severity(s)
	}
}

func tallySeverity(stats *store.Stats, sev store.Severity) {
	switch sev {
	case store.SeverityCritical:
		stats.CriticalIssues++
	case store.SeverityHigh:
		stats.HighIssues++
	case store.SeverityMedium:
		stats.MediumIssues++
	case store.SeverityLow:
		stats.LowIssues++
	}
}

func toPersistedSuggestion(s refactor.Suggestion) store.PersistedSuggestion {
	transforms := make([]store.PersistedTransformation, 0, len(s.Transformations))
	for _, t := range s.Transformations {
		transforms = append(transforms, store.PersistedTransformation{
			StartLine:   t.StartLine,
			StartColumn: t.StartColumn,
			EndLine:     t.EndLine,
			EndColumn:   t.EndColumn,
			NewCode:     t.NewCode,
			Description: t.Description,
		})
	}
	return store.PersistedSuggestion{
		ID:              s.ID,
		RuleID:          s.RuleID,
		Title:           s.Title,
		Description:     s.Description,
		Transformations: transforms,
		Confidence:      string(s.Confidence),
		ConfidenceScore: s.ConfidenceScore,
	}
}
