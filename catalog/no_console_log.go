package catalog

import (
	"context"
	"fmt"

	"sentinel-refactor/ast"
	"sentinel-refactor/edit"
	"sentinel-refactor/refactor"
	"sentinel-refactor/rules"
)

// NoConsoleLogRuleID is the rule ID for the console.log check.
const NoConsoleLogRuleID = "no-console-log"

// NoConsoleLogRule flags console.log calls left in source, a common
// best-practice check applicable to both surface languages.
type NoConsoleLogRule struct{}

// Metadata implements rules.Rule.
func (r *NoConsoleLogRule) Metadata() rules.Metadata {
	return rules.Metadata{
		ID:          NoConsoleLogRuleID,
		Name:        "No console.log",
		Description: "Flags console.log calls, which usually belong in a removed debugging pass",
		Category:    rules.CategoryBestPractice,
		Severity:    rules.SeverityLow,
		Language:    rules.RuleLanguageBoth,
		Tags:        []string{"cleanliness"},
	}
}

// Check implements rules.Rule.
func (r *NoConsoleLogRule) Check(ctx *rules.RuleContext) []rules.Violation {
	if ctx.ParseResult == nil || ctx.ParseResult.AST == nil {
		return nil
	}

	var violations []rules.Violation
	for _, call := range ast.FindCalls(ctx.ParseResult.AST, "log") {
		if call.Callee == nil || call.Callee.Type != ast.KindMemberExpression {
			continue
		}
		if call.Callee.Object == nil || call.Callee.Object.Name != "console" {
			continue
		}
		loc := locationOf(call)
		violations = append(violations, rules.Violation{
			RuleID:    NoConsoleLogRuleID,
			Message:   "console.log left in source",
			Severity:  rules.SeverityLow,
			Line:      loc.StartLine,
			Column:    loc.StartColumn,
			EndLine:   loc.EndLine,
			EndColumn: loc.EndColumn,
			Node:      call,
		})
	}
	return violations
}

// NoConsoleLogProvider suggests removing the offending call.
type NoConsoleLogProvider struct{}

// RuleID implements refactor.Provider.
func (p *NoConsoleLogProvider) RuleID() string { return NoConsoleLogRuleID }

// CanRefactor implements refactor.Provider.
func (p *NoConsoleLogProvider) CanRefactor(v rules.Violation) bool {
	return v.RuleID == NoConsoleLogRuleID
}

// GenerateSuggestions implements refactor.Provider.
func (p *NoConsoleLogProvider) GenerateSuggestions(ctx context.Context, rctx refactor.RefactoringContext) ([]refactor.Suggestion, error) {
	v := rctx.Violation
	return []refactor.Suggestion{
		{
			ID:              fmt.Sprintf("%s-%d-%d-remove", NoConsoleLogRuleID, v.Line, v.Column),
			RuleID:          NoConsoleLogRuleID,
			Title:           "Remove console.log call",
			Description:     "Delete the statement containing this call",
			Confidence:      refactor.ConfidenceFor(90),
			ConfidenceScore: 90,
			Reasoning:       "Removing a debug log statement is safe and mechanical",
			Impact:          refactor.Impact{EstimatedTime: "1m", RiskLevel: "low", Description: "Deletes one statement"},
			Transformations: []edit.CodeTransformation{
				{
					StartLine:   v.Line,
					StartColumn: v.Column,
					EndLine:     v.EndLine,
					EndColumn:   v.EndColumn,
					NewCode:     "",
					Description: "remove console.log call",
				},
			},
		},
	}, nil
}
