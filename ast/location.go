// Package ast defines the node shape rules and providers program against:
// source locations, the tagged-union AST, traversal, and query helpers.
// It has no dependency on rules, refactor, or any parser — parser adapters
// produce ast.Node trees, they do not define the contract.
package ast

import "fmt"

// SourceLocation addresses a range of source text. Line is 1-based, Column
// is 0-based. EndLine/EndColumn default to Line/Column for a zero-width
// point location.
type SourceLocation struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
}

// WellFormed reports whether the location lies within a source of lineCount
// lines and whether its start does not follow its end.
func (l SourceLocation) WellFormed(lineCount int) bool {
	if l.StartLine < 1 || l.StartLine > lineCount {
		return false
	}
	if l.EndLine < 1 || l.EndLine > lineCount {
		return false
	}
	if l.StartLine > l.EndLine {
		return false
	}
	if l.StartLine == l.EndLine && l.StartColumn > l.EndColumn {
		return false
	}
	return true
}

func (l SourceLocation) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", l.StartLine, l.StartColumn, l.EndLine, l.EndColumn)
}

// ByteRange is the optional byte offset range backing a SourceLocation,
// carried through from the parser when available.
type ByteRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}
