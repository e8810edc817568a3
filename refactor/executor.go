package refactor

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"sentinel-refactor/apperrors"
	"sentinel-refactor/edit"
)

// ApplyRefactoring applies suggestion's transformations to sourceCode and
// returns the result. Application is all-or-nothing: any out-of-bounds
// transformation fails the whole apply, leaving RefactoredCode equal to
// the original text (spec §4.4 step 3).
func (e *Engine) ApplyRefactoring(suggestion Suggestion, sourceCode, fileName string) AppliedRefactoring {
	applied := AppliedRefactoring{
		SuggestionID: suggestion.ID,
		FileName:     fileName,
		AppliedAt:    time.Now().UTC().Format(time.RFC3339),
		OriginalCode: sourceCode,
	}

	refactored, err := ApplyTransformations(sourceCode, suggestion.Transformations)
	if err != nil {
		applied.Success = false
		applied.RefactoredCode = sourceCode
		applied.Error = err.Error()
		if e.metrics != nil {
			e.metrics.IncRefactoringApplied(suggestion.RuleID, false)
		}
		return applied
	}

	applied.Success = true
	applied.RefactoredCode = refactored
	if e.metrics != nil {
		e.metrics.IncRefactoringApplied(suggestion.RuleID, true)
	}
	return applied
}

// ApplyTransformations applies an ordered list of line/column-addressed
// edits to source, following the apply algorithm in spec §4.4:
//
//  1. Sort by (startLine desc, startColumn desc) so that applying an
//     earlier-in-document edit never invalidates the addresses of later
//     (in document order) ones still to be applied.
//  2. Each transformation replaces its addressed range with NewCode: a
//     single-line splice when StartLine == EndLine, or a merge of the
//     StartLine prefix + NewCode + EndLine suffix (discarding any
//     intervening lines) otherwise.
//  3. Any out-of-bounds address fails the whole apply; the caller is
//     expected to fall back to the original source.
func ApplyTransformations(source string, transformations []edit.CodeTransformation) (string, error) {
	lines := strings.Split(source, "\n")

	ordered := make([]edit.CodeTransformation, len(transformations))
	copy(ordered, transformations)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].StartLine != ordered[j].StartLine {
			return ordered[i].StartLine > ordered[j].StartLine
		}
		return ordered[i].StartColumn > ordered[j].StartColumn
	})

	for _, t := range ordered {
		if err := validateBounds(lines, t); err != nil {
			return "", err
		}

		if t.StartLine == t.EndLine {
			line := lines[t.StartLine-1]
			lines[t.StartLine-1] = line[:t.StartColumn] + t.NewCode + line[t.EndColumn:]
			continue
		}

		prefix := lines[t.StartLine-1][:t.StartColumn]
		suffix := lines[t.EndLine-1][t.EndColumn:]
		merged := prefix + t.NewCode + suffix

		newLines := make([]string, 0, len(lines)-(t.EndLine-t.StartLine))
		newLines = append(newLines, lines[:t.StartLine-1]...)
		newLines = append(newLines, merged)
		newLines = append(newLines, lines[t.EndLine:]...)
		lines = newLines
	}

	return strings.Join(lines, "\n"), nil
}

func validateBounds(lines []string, t edit.CodeTransformation) error {
	if err := checkBounds(lines, t); err != nil {
		return &apperrors.TransformBoundsError{Detail: err.Error()}
	}
	return nil
}

func checkBounds(lines []string, t edit.CodeTransformation) error {
	lineCount := len(lines)
	if t.StartLine < 1 || t.StartLine > lineCount {
		return fmt.Errorf("transformation start line %d out of bounds (source has %d lines)", t.StartLine, lineCount)
	}
	if t.EndLine < 1 || t.EndLine > lineCount {
		return fmt.Errorf("transformation end line %d out of bounds (source has %d lines)", t.EndLine, lineCount)
	}
	if t.StartLine > t.EndLine {
		return fmt.Errorf("transformation start line %d after end line %d", t.StartLine, t.EndLine)
	}
	startLine := lines[t.StartLine-1]
	if t.StartColumn < 0 || t.StartColumn > len(startLine) {
		return fmt.Errorf("transformation start column %d out of bounds on line %d", t.StartColumn, t.StartLine)
	}
	endLine := lines[t.EndLine-1]
	if t.EndColumn < 0 || t.EndColumn > len(endLine) {
		return fmt.Errorf("transformation end column %d out of bounds on line %d", t.EndColumn, t.EndLine)
	}
	if t.StartLine == t.EndLine && t.StartColumn > t.EndColumn {
		return fmt.Errorf("transformation start column %d after end column %d on line %d", t.StartColumn, t.EndColumn, t.StartLine)
	}
	return nil
}
