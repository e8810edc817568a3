// Package edit holds the CodeTransformation type shared by rules (which
// attach an optional suggested fix to a violation) and refactor (which
// generates and applies transformations as suggestions). Keeping it in its
// own leaf package avoids an import cycle between the two.
package edit

import "sentinel-refactor/ast"

// CodeTransformation is a single mechanical edit expressed as a half-open
// source range to replace with newCode. startLine/endLine are 1-indexed and
// inclusive; startColumn/endColumn are 0-indexed byte offsets into their
// respective lines, endColumn exclusive.
type CodeTransformation struct {
	StartLine   int    `json:"startLine"`
	StartColumn int     `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	NewCode     string `json:"newCode"`
	Description string `json:"description"`
}

// Location returns the source range this transformation addresses, for
// callers that want to report it alongside a violation.
func (t CodeTransformation) Location() ast.SourceLocation {
	return ast.SourceLocation{
		StartLine:   t.StartLine,
		StartColumn: t.StartColumn,
		EndLine:     t.EndLine,
		EndColumn:   t.EndColumn,
	}
}
