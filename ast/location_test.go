package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceLocationWellFormed(t *testing.T) {
	cases := []struct {
		name      string
		loc       SourceLocation
		lineCount int
		want      bool
	}{
		{"single point", SourceLocation{StartLine: 1, StartColumn: 0, EndLine: 1, EndColumn: 0}, 1, true},
		{"valid range", SourceLocation{StartLine: 1, StartColumn: 4, EndLine: 2, EndColumn: 3}, 3, true},
		{"start after end column, same line", SourceLocation{StartLine: 1, StartColumn: 5, EndLine: 1, EndColumn: 2}, 1, false},
		{"start line after end line", SourceLocation{StartLine: 3, StartColumn: 0, EndLine: 1, EndColumn: 0}, 5, false},
		{"end line beyond source", SourceLocation{StartLine: 1, StartColumn: 0, EndLine: 10, EndColumn: 0}, 5, false},
		{"line zero is invalid", SourceLocation{StartLine: 0, StartColumn: 0, EndLine: 1, EndColumn: 0}, 5, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.loc.WellFormed(c.lineCount))
		})
	}
}
