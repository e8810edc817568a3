// Package parser provides the JS/TS parser adapters that satisfy the
// ast.ParseResult contract (C3) with real tree-sitter grammars. The core
// (rules, refactor) is specified against ast.Node only and never imports
// this package directly; the coordinator calls ParseJS or ParseTS for the
// requested language.
package parser

import (
	"context"
	"sync"
	"time"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"sentinel-refactor/ast"
)

var (
	jsParser   *sitter.Parser
	tsParser   *sitter.Parser
	initParser sync.Once
)

func initParsers() {
	jsParser = sitter.NewParser()
	jsParser.SetLanguage(javascript.GetLanguage())

	tsParser = sitter.NewParser()
	tsParser.SetLanguage(typescript.GetLanguage())
}

// ParseJS parses source as the JS dialect and converts the resulting
// tree-sitter tree into an ast.ParseResult.
func ParseJS(source, fileName string) *ast.ParseResult {
	initParser.Do(initParsers)
	return parseWith(jsParser, source, fileName, ast.LanguageJS)
}

// ParseTS parses source as the TS dialect, additionally extracting type
// annotations (`: any`, `: unknown`, ...) onto Identifier/VariableDeclarator
// nodes.
func ParseTS(source, fileName string) *ast.ParseResult {
	initParser.Do(initParsers)
	return parseWith(tsParser, source, fileName, ast.LanguageTS)
}

func parseWith(p *sitter.Parser, source, fileName string, lang ast.Language) *ast.ParseResult {
	start := time.Now()

	tree, err := p.ParseCtx(context.Background(), nil, []byte(source))
	elapsedMs := float64(time.Since(start)) / float64(time.Millisecond)

	result := &ast.ParseResult{
		SourceCode:  source,
		FileName:    fileName,
		Language:    lang,
		ParseTimeMs: elapsedMs,
	}

	if err != nil {
		result.Errors = []ast.ParseError{{Message: err.Error(), Line: 1, Column: 0}}
		return result
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		result.Errors = []ast.ParseError{{Message: "parser produced no root node", Line: 1, Column: 0}}
		return result
	}

	result.Errors = collectSyntaxErrors(root, source)
	result.AST = convert(root, source, lang)
	return result
}

// collectSyntaxErrors walks the tree looking for tree-sitter's own ERROR
// nodes and MISSING tokens, its mechanism for reporting unparseable input
// without raising an exception.
func collectSyntaxErrors(root *sitter.Node, source string) []ast.ParseError {
	var errs []ast.ParseError
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if n.IsMissing() || n.Type() == "ERROR" {
			line, col := startLineColumn(n)
			index := int(n.StartByte())
			errs = append(errs, ast.ParseError{
				Message: syntaxErrorMessage(n, source),
				Line:    line,
				Column:  col,
				Index:   &index,
			})
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return errs
}

func syntaxErrorMessage(n *sitter.Node, source string) string {
	if n.IsMissing() {
		return "syntax error: missing " + n.Type()
	}
	text := safeSlice(source, n.StartByte(), n.EndByte())
	if text == "" {
		return "syntax error"
	}
	return "syntax error near " + text
}

func startLineColumn(n *sitter.Node) (line, column int) {
	p := n.StartPoint()
	return int(p.Row) + 1, int(p.Column)
}

func safeSlice(source string, start, end uint32) string {
	length := uint32(len(source))
	if start > length {
		start = length
	}
	if end > length {
		end = length
	}
	if start > end {
		return ""
	}
	return source[start:end]
}
