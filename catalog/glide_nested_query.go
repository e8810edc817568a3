// Package catalog holds concrete rule and provider implementations — the
// reference extension-point examples named by C9. None of this is core:
// rules and refactor only specify the interfaces these implement.
package catalog

import (
	"context"
	"fmt"

	"sentinel-refactor/ast"
	"sentinel-refactor/edit"
	"sentinel-refactor/refactor"
	"sentinel-refactor/rules"
)

// GlideNestedQueryRuleID is the rule ID for the nested-GlideRecord-query
// check, also used as the provider's key.
const GlideNestedQueryRuleID = "glide-nested-query"

// GlideNestedQueryRule flags a GlideRecord instance that is declared and
// queried inside a loop body: re-instantiating and querying on every
// iteration is the expensive pattern, independent of whether the query was
// narrowed with addQuery(). The rule still tracks, per instance, whether an
// addQuery() preceded the query() in the same body — not to gate emission
// (an outer-scoped check that flagged every query() call in the file,
// regardless of nesting, is the pattern this avoids) but to tell an
// unconditioned nested query apart from a conditioned one in the message.
type GlideNestedQueryRule struct{}

// Metadata implements rules.Rule.
func (r *GlideNestedQueryRule) Metadata() rules.Metadata {
	return rules.Metadata{
		ID:          GlideNestedQueryRuleID,
		Name:        "Nested GlideRecord Query",
		Description: "Flags a GlideRecord query() call inside a loop body on an instance declared in that same body",
		Category:    rules.CategoryPerformance,
		Severity:    rules.SeverityHigh,
		Language:    rules.RuleLanguageJS,
		Tags:        []string{"glide", "performance", "loop"},
	}
}

// Check implements rules.Rule.
func (r *GlideNestedQueryRule) Check(ctx *rules.RuleContext) []rules.Violation {
	if ctx.ParseResult == nil || ctx.ParseResult.AST == nil {
		return nil
	}

	var violations []rules.Violation
	for _, loop := range ast.FindLoops(ctx.ParseResult.AST) {
		body := loop.Body
		if body == nil {
			continue
		}
		violations = append(violations, checkLoopBody(body)...)
	}
	return violations
}

// checkLoopBody flags every query() call made on an instance that was
// itself declared within the same loop body — the re-instantiate-and-query-
// per-iteration pattern. addQuery() calls seen on an instance before its
// query() are tracked per instance so the message can distinguish an
// unconditioned nested query from a conditioned one; the distinction informs the message, it does not gate
// whether the violation fires.
func checkLoopBody(body *ast.Node) []rules.Violation {
	declaredLocally := make(map[string]bool)
	for _, decl := range ast.FindAll(body, ast.KindVariableDeclarator) {
		if decl.Name != "" {
			declaredLocally[decl.Name] = true
		}
	}

	seenAddQuery := make(map[string]bool)
	var violations []rules.Violation

	ast.Walk(body, func(n *ast.Node) ast.VisitResult {
		if n.Type != ast.KindCallExpression || n.Callee == nil || n.Callee.Type != ast.KindMemberExpression {
			return ast.Continue
		}
		instance := instanceName(n.Callee.Object)
		if instance == "" || !declaredLocally[instance] {
			return ast.Continue
		}
		switch n.Callee.Property {
		case "addQuery":
			seenAddQuery[instance] = true
		case "query":
			loc := locationOf(n)
			message := fmt.Sprintf("GlideRecord instance %q is re-instantiated and queried on every loop iteration", instance)
			if !seenAddQuery[instance] {
				message = fmt.Sprintf("GlideRecord instance %q is queried inside a loop without a prior addQuery() narrowing the result set", instance)
			}
			violations = append(violations, rules.Violation{
				RuleID:    GlideNestedQueryRuleID,
				Message:   message,
				Severity:  rules.SeverityHigh,
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

func instanceName(n *ast.Node) string {
	if n == nil || n.Type != ast.KindIdentifier {
		return ""
	}
	return n.Name
}

func locationOf(n *ast.Node) ast.SourceLocation {
	if n.Loc != nil {
		return *n.Loc
	}
	return ast.SourceLocation{StartLine: 1, EndLine: 1}
}

// GlideNestedQueryProvider generates suggestions for GlideNestedQueryRule
// violations: replacing the query with GlideAggregate for count-only use,
// or narrowing it with an encoded query built from the outer record. Both
// suggestions are advisory and carry no transformations.
type GlideNestedQueryProvider struct{}

// RuleID implements refactor.Provider.
func (p *GlideNestedQueryProvider) RuleID() string { return GlideNestedQueryRuleID }

// CanRefactor implements refactor.Provider.
func (p *GlideNestedQueryProvider) CanRefactor(v rules.Violation) bool {
	return v.RuleID == GlideNestedQueryRuleID
}

// GenerateSuggestions implements refactor.Provider. Scenario 2 expects two
// suggestions: one titled with "GlideAggregate" at confidence 65, one
// titled with "encoded query" at confidence 85.
func (p *GlideNestedQueryProvider) GenerateSuggestions(ctx context.Context, rctx refactor.RefactoringContext) ([]refactor.Suggestion, error) {
	v := rctx.Violation
	return []refactor.Suggestion{
		{
			ID:              fmt.Sprintf("%s-%d-%d-gliderecord", GlideNestedQueryRuleID, v.Line, v.Column),
			RuleID:          GlideNestedQueryRuleID,
			Title:           "Replace with GlideAggregate for count-only access",
			Description:     "If this query only needs a count or aggregate, GlideAggregate avoids materializing every row",
			Confidence:      refactor.ConfidenceFor(65),
			ConfidenceScore: 65,
			Reasoning:       "GlideAggregate is cheaper than GlideRecord when the loop only needs a count or sum",
			Impact:          refactor.Impact{EstimatedTime: "10m", RiskLevel: "medium", Description: "Changes the query API surface; callers reading fields off the record must be updated"},
			Transformations: []edit.CodeTransformation{},
		},
		{
			ID:              fmt.Sprintf("%s-%d-%d-encoded", GlideNestedQueryRuleID, v.Line, v.Column),
			RuleID:          GlideNestedQueryRuleID,
			Title:           "Narrow with an encoded query built from the outer record",
			Description:     "Build an encoded query string once and pass it to addQuery before query() to avoid an unbounded scan",
			Confidence:      refactor.ConfidenceFor(85),
			ConfidenceScore: 85,
			Reasoning:       "An encoded query expresses the same filter as addQuery() but composes multiple conditions in one pass",
			Impact:          refactor.Impact{EstimatedTime: "5m", RiskLevel: "low", Description: "Mechanical: adds an addQuery call ahead of the existing query() call"},
			Transformations: []edit.CodeTransformation{},
		},
	}, nil
}
