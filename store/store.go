package store

import "context"

// Store is the persistence boundary (C8): analysis records, uploaded file
// content, and code templates. Implementations must be safe for concurrent
// use. Scope is explicitly storage, not retention policy or migrations.
type Store interface {
	SaveAnalysis(ctx context.Context, result AnalysisResult) error
	GetAnalysis(ctx context.Context, id string) (AnalysisResult, error)
	ListAnalyses(ctx context.Context, filter ListFilter) ([]AnalysisResult, error)
	DeleteAnalysis(ctx context.Context, id string) error

	SaveFile(ctx context.Context, file FileRecord) error
	GetFile(ctx context.Context, id string) (FileRecord, error)

	SaveTemplate(ctx context.Context, tmpl CodeTemplate) error
	ListTemplates(ctx context.Context, language string) ([]CodeTemplate, error)
}
