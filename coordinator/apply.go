package coordinator

import (
	"context"

	"sentinel-refactor/apperrors"
	"sentinel-refactor/edit"
	"sentinel-refactor/refactor"
	"sentinel-refactor/store"
)

// ApplySuggestion looks up a previously persisted suggestion by analysis
// and suggestion id, then applies its transformations to the
// caller-supplied code. This is what the teacher left as a 501 placeholder
// — the suggestion persistence strategy decided in SPEC_FULL.md §12 makes
// it a real lookup instead.
func (c *Coordinator) ApplySuggestion(ctx context.Context, analysisID, suggestionID, code, fileName string) (refactor.AppliedRefactoring, error) {
	analysis, err := c.store.GetAnalysis(ctx, analysisID)
	if err != nil {
		return refactor.AppliedRefactoring{}, err
	}

	persisted, found := analysis.FullSuggestions[suggestionID]
	if !found {
		return refactor.AppliedRefactoring{}, &apperrors.NotFoundError{Resource: "suggestion", ID: suggestionID}
	}

	suggestion := fromPersistedSuggestion(persisted)
	return c.refactorEngine.ApplyRefactoring(suggestion, code, fileName), nil
}

func fromPersistedSuggestion(p store.PersistedSuggestion) refactor.Suggestion {
	transforms := make([]edit.CodeTransformation, 0, len(p.Transformations))
	for _, t := range p.Transformations {
		transforms = append(transforms, edit.CodeTransformation{
			StartLine:   t.StartLine,
			StartColumn: t.StartColumn,
			EndLine:     t.EndLine,
			EndColumn:   t.EndColumn,
			NewCode:     t.NewCode,
			Description: t.Description,
		})
	}
	return refactor.Suggestion{
		ID:              p.ID,
		RuleID:          p.RuleID,
		Title:           p.Title,
		Description:     p.Description,
		Transformations: transforms,
		Confidence:      refactor.Confidence(p.Confidence),
		ConfidenceScore: p.ConfidenceScore,
	}
}
