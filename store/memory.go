package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"sentinel-refactor/apperrors"
)

// MemoryStore is a map-backed Store guarded by a single RWMutex, the same
// shape as the package-level task cache it is grounded on, wrapped in a
// struct instead of package globals so a composition root can construct as
// many independent instances as it needs (tests included).
type MemoryStore struct {
	mu        sync.RWMutex
	analyses  map[string]AnalysisResult
	files     map[string]FileRecord
	templates map[string]CodeTemplate
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		analyses:  make(map[string]AnalysisResult),
		files:     make(map[string]FileRecord),
		templates: make(map[string]CodeTemplate),
	}
}

// SaveAnalysis implements Store.
func (m *MemoryStore) SaveAnalysis(ctx context.Context, result AnalysisResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyses[result.Metadata.ID] = result
	return nil
}

// GetAnalysis implements Store.
func (m *MemoryStore) GetAnalysis(ctx context.Context, id string) (AnalysisResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result, found := m.analyses[id]
	if !found {
		return AnalysisResult{}, &apperrors.NotFoundError{Resource: "analysis", ID: id}
	}
	return result, nil
}

// DeleteAnalysis implements Store.
func (m *MemoryStore) DeleteAnalysis(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, found := m.analyses[id]; !found {
		return &apperrors.NotFoundError{Resource: "analysis", ID: id}
	}
	delete(m.analyses, id)
	return nil
}

// ListAnalyses implements Store: equality filters on fileName/language,
// severity matches if any issue in the record has that severity, sorted by
// the requested field, then offset/limit applied last.
func (m *MemoryStore) ListAnalyses(ctx context.Context, filter ListFilter) ([]AnalysisResult, error) {
	m.mu.RLock()
	matched := make([]AnalysisResult, 0, len(m.analyses))
	for _, result := range m.analyses {
		if filter.FileName != "" && result.Metadata.FileName != filter.FileName {
			continue
		}
		if filter.Language != "" && result.Metadata.Language != filter.Language {
			continue
		}
		if filter.Severity != "" && !hasIssueSeverity(result, filter.Severity) {
			continue
		}
		matched = append(matched, result)
	}
	m.mu.RUnlock()

	sortAnalyses(matched, filter.SortBy, filter.Desc)
	return paginate(matched, filter.Offset, filter.Limit), nil
}

func hasIssueSeverity(result AnalysisResult, sev Severity) bool {
	for _, issue := range result.Issues {
		if issue.Severity == sev {
			return true
		}
	}
	return false
}

func sortAnalyses(results []AnalysisResult, by SortField, desc bool) {
	less := func(i, j int) bool {
		switch by {
		case SortByFileName:
			return strings.ToLower(results[i].Metadata.FileName) < strings.ToLower(results[j].Metadata.FileName)
		case SortBySeverity:
			return results[i].MaxIssueSeverityRank() < results[j].MaxIssueSeverityRank()
		case SortByDate:
			fallthrough
		default:
			return results[i].Metadata.AnalysisDate < results[j].Metadata.AnalysisDate
		}
	}
	if desc {
		sort.SliceStable(results, func(i, j int) bool { return less(j, i) })
		return
	}
	sort.SliceStable(results, less)
}

func paginate(results []AnalysisResult, offset, limit int) []AnalysisResult {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(results) {
		return []AnalysisResult{}
	}
	results = results[offset:]
	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results
}

// SaveFile implements Store.
func (m *MemoryStore) SaveFile(ctx context.Context, file FileRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[file.ID] = file
	return nil
}

// GetFile implements Store.
func (m *MemoryStore) GetFile(ctx context.Context, id string) (FileRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	file, found := m.files[id]
	if !found {
		return FileRecord{}, &apperrors.NotFoundError{Resource: "file", ID: id}
	}
	return file, nil
}

// SaveTemplate implements Store.
func (m *MemoryStore) SaveTemplate(ctx context.Context, tmpl CodeTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[tmpl.ID] = tmpl
	return nil
}

// ListTemplates implements Store, optionally filtered by language.
func (m *MemoryStore) ListTemplates(ctx context.Context, language string) ([]CodeTemplate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	matched := make([]CodeTemplate, 0, len(m.templates))
	for _, tmpl := range m.templates {
		if language != "" && tmpl.Language != language {
			continue
		}
		matched = append(matched, tmpl)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}
