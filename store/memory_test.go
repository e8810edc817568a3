package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSaveGetDeleteAnalysis(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	result := AnalysisResult{Metadata: AnalysisMetadata{ID: "a1", FileName: "f.js"}}
	require.NoError(t, s.SaveAnalysis(ctx, result))

	got, err := s.GetAnalysis(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "f.js", got.Metadata.FileName)

	require.NoError(t, s.DeleteAnalysis(ctx, "a1"))
	_, err = s.GetAnalysis(ctx, "a1")
	assert.Error(t, err)
}

func TestMemoryStoreListAnalysesFiltersBySeverity(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.SaveAnalysis(ctx, AnalysisResult{
		Metadata: AnalysisMetadata{ID: "a1", FileName: "low.js"},
		Issues:   []Issue{{Severity: SeverityLow}},
	}))
	require.NoError(t, s.SaveAnalysis(ctx, AnalysisResult{
		Metadata: AnalysisMetadata{ID: "a2", FileName: "high.js"},
		Issues:   []Issue{{Severity: SeverityHigh}},
	}))

	results, err := s.ListAnalyses(ctx, ListFilter{Severity: SeverityHigh})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "high.js", results[0].Metadata.FileName)
}

func TestMemoryStoreListAnalysesSortBySeverityDesc(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.SaveAnalysis(ctx, AnalysisResult{Metadata: AnalysisMetadata{ID: "low", FileName: "low.js"}, Issues: []Issue{{Severity: SeverityLow}}}))
	require.NoError(t, s.SaveAnalysis(ctx, AnalysisResult{Metadata: AnalysisMetadata{ID: "crit", FileName: "crit.js"}, Issues: []Issue{{Severity: SeverityCritical}}}))
	require.NoError(t, s.SaveAnalysis(ctx, AnalysisResult{Metadata: AnalysisMetadata{ID: "med", FileName: "med.js"}, Issues: []Issue{{Severity: SeverityMedium}}}))

	results, err := s.ListAnalyses(ctx, ListFilter{SortBy: SortBySeverity, Desc: true})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "crit", results[0].Metadata.ID)
	assert.Equal(t, "med", results[1].Metadata.ID)
	assert.Equal(t, "low", results[2].Metadata.ID)
}

func TestMemoryStoreListAnalysesPagination(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, s.SaveAnalysis(ctx, AnalysisResult{Metadata: AnalysisMetadata{ID: id, FileName: id, AnalysisDate: id}}))
	}

	results, err := s.ListAnalyses(ctx, ListFilter{SortBy: SortByDate, Offset: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "b", results[0].Metadata.ID)
	assert.Equal(t, "c", results[1].Metadata.ID)
}

func TestMemoryStoreFileAndTemplateRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.SaveFile(ctx, FileRecord{ID: "f1", Name: "a.js", Type: "js"}))
	file, err := s.GetFile(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "a.js", file.Name)

	require.NoError(t, s.SaveTemplate(ctx, CodeTemplate{ID: "t1", Language: "js"}))
	require.NoError(t, s.SaveTemplate(ctx, CodeTemplate{ID: "t2", Language: "ts"}))

	templates, err := s.ListTemplates(ctx, "js")
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "t1", templates[0].ID)
}
