package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel-refactor/ast"
)

func TestParseJSSimpleDeclaration(t *testing.T) {
	result := ParseJS("var x = 5;", "a.js")
	require.Empty(t, result.Errors)
	require.NotNil(t, result.AST)
	assert.Equal(t, ast.LanguageJS, result.Language)
	assert.GreaterOrEqual(t, result.ParseTimeMs, 0.0)

	decls := ast.FindAll(result.AST, ast.KindVariableDeclaration)
	require.Len(t, decls, 1)
	assert.Equal(t, "var", decls[0].DeclKind)
}

func TestParseJSNestedGlideQuery(t *testing.T) {
	source := `
while (gr1.next()) {
	var gr2 = new GlideRecord('problem');
	gr2.addQuery('incident', gr1.sys_id);
	gr2.query();
}
`
	result := ParseJS(source, "incident.js")
	require.Empty(t, result.Errors)
	require.NotNil(t, result.AST)

	loops := ast.FindLoops(result.AST)
	require.Len(t, loops, 1)

	queryCalls := ast.FindCalls(result.AST, "query")
	require.Len(t, queryCalls, 1)

	addQueryCalls := ast.FindCalls(result.AST, "addQuery")
	require.Len(t, addQueryCalls, 1)
}

func TestParseTSAnyAnnotation(t *testing.T) {
	result := ParseTS("function t(d: any): any { return d; }", "a.ts")
	require.Empty(t, result.Errors)
	require.NotNil(t, result.AST)

	fns := ast.FindFunctionLike(result.AST)
	require.Len(t, fns, 1)
}

func TestParseTSSyntaxErrorIsCollected(t *testing.T) {
	// Scenario 1: const x: number = ;
	result := ParseTS("const x: number = ;", "a.ts")
	assert.NotEmpty(t, result.Errors)
}

func TestParseJSEmptySource(t *testing.T) {
	result := ParseJS("", "empty.js")
	assert.Empty(t, result.Errors)
	assert.NotNil(t, result.AST)
}
