package catalog

import (
	"context"
	"fmt"

	"sentinel-refactor/ast"
	"sentinel-refactor/edit"
	"sentinel-refactor/refactor"
	"sentinel-refactor/rules"
)

// PreferConstRuleID is the rule ID for the let-never-reassigned check.
const PreferConstRuleID = "prefer-const"

// PreferConstRule flags a `let`-declared variable that is never
// reassigned anywhere in the source — a duplicate-declaration-style
// traversal that counts binding and assignment sites per name rather than
// reasoning about scope, matching the engine's single-file, no-cross-reference scope.
type PreferConstRule struct{}

// Metadata implements rules.Rule.
func (r *PreferConstRule) Metadata() rules.Metadata {
	return rules.Metadata{
		ID:          PreferConstRuleID,
		Name:        "Prefer const",
		Description: "Flags a let-declared variable that is never reassigned",
		Category:    rules.CategoryBestPractice,
		Severity:    rules.SeverityLow,
		Language:    rules.RuleLanguageJS,
		Tags:        []string{"style"},
	}
}

// Check implements rules.Rule.
func (r *PreferConstRule) Check(ctx *rules.RuleContext) []rules.Violation {
	if ctx.ParseResult == nil || ctx.ParseResult.AST == nil {
		return nil
	}

	assignmentCounts := countIdentifierBindingSites(ctx.ParseResult.AST)

	var violations []rules.Violation
	for _, decl := range ast.FindAll(ctx.ParseResult.AST, ast.KindVariableDeclaration) {
		if decl.DeclKind != "let" {
			continue
		}
		for _, child := range decl.Children {
			if child.Type != ast.KindVariableDeclarator || child.Name == "" {
				continue
			}
			if assignmentCounts[child.Name] > 1 {
				continue
			}
			loc := locationOf(child)
			violations = append(violations, rules.Violation{
				RuleID:    PreferConstRuleID,
				Message:   fmt.Sprintf("%q is declared with let but never reassigned", child.Name),
				Severity:  rules.SeverityLow,
				Line:      loc.StartLine,
				Column:    loc.StartColumn,
				EndLine:   loc.EndLine,
				EndColumn: loc.EndColumn,
				Node:      child,
			})
		}
	}
	return violations
}

// countIdentifierBindingSites counts, per name, how many VariableDeclarator
// nodes bind it plus how many plain (`x = 1`), compound (`x += 1`) or
// update (`x++`) assignments target it as a bare identifier — a name
// counted exactly once was never reassigned. Names are not resolved by
// scope, which suits a single-file, no-type-checking rule engine.
func countIdentifierBindingSites(root *ast.Node) map[string]int {
	counts := make(map[string]int)
	for _, decl := range ast.FindAll(root, ast.KindVariableDeclarator) {
		if decl.Name != "" {
			counts[decl.Name]++
		}
	}
	ast.Walk(root, func(n *ast.Node) ast.VisitResult {
		if n.Type == ast.KindOther && len(n.Children) > 0 && n.Children[0].Type == ast.KindIdentifier {
			switch n.RawType {
			case "assignment_expression", "augmented_assignment_expression", "update_expression":
				counts[n.Children[0].Name]++
			}
		}
		return ast.Continue
	})
	return counts
}

// PreferConstProvider suggests rewriting let to const.
type PreferConstProvider struct{}

// RuleID implements refactor.Provider.
func (p *PreferConstProvider) RuleID() string { return PreferConstRuleID }

// CanRefactor implements refactor.Provider.
func (p *PreferConstProvider) CanRefactor(v rules.Violation) bool {
	return v.RuleID == PreferConstRuleID
}

// GenerateSuggestions implements refactor.Provider.
func (p *PreferConstProvider) GenerateSuggestions(ctx context.Context, rctx refactor.RefactoringContext) ([]refactor.Suggestion, error) {
	v := rctx.Violation
	return []refactor.Suggestion{
		{
			ID:              fmt.Sprintf("%s-%d-%d-const", PreferConstRuleID, v.Line, v.Column),
			RuleID:          PreferConstRuleID,
			Title:           "Change let to const",
			Description:     "This binding is never reassigned; const documents that intent",
			Confidence:      refactor.ConfidenceFor(80),
			ConfidenceScore: 80,
			Reasoning:       "Mechanical keyword substitution, safe when the binding is truly never reassigned",
			Impact:          refactor.Impact{EstimatedTime: "1m", RiskLevel: "low", Description: "Keyword substitution"},
			Transformations: []edit.CodeTransformation{},
		},
	}, nil
}
