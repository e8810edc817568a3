package models

import "sentinel-refactor/store"

// ErrorResponse is the standard error body, `stack` present only when the
// server's development-mode flag is set.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Stack   string   `json:"stack,omitempty"`
}

// AnalyzeResponse wraps an analysis view plus its id, the shape returned by
// both POST /api/analyze and GET /api/analysis/{id}.
type AnalyzeResponse struct {
	AnalysisID  string                   `json:"analysisId"`
	Metadata    store.AnalysisMetadata   `json:"metadata"`
	Issues      []store.Issue            `json:"issues"`
	Suggestions []store.SuggestionView   `json:"suggestions"`
	Stats       store.Stats              `json:"stats"`
}

// UploadResponse is the response of POST /api/upload: an analysis view plus
// the stored file's id and path.
type UploadResponse struct {
	AnalyzeResponse
	FileID   string `json:"fileId"`
	FilePath string `json:"filePath"`
}

// ListAnalysesResponse is the response of GET /api/analyses.
type ListAnalysesResponse struct {
	Count   int                    `json:"count"`
	Results []store.AnalysisResult `json:"results"`
}

// RefactorApplyResponse is the response of POST /api/refactor/apply.
type RefactorApplyResponse struct {
	Success        bool   `json:"success"`
	RefactoredCode string `json:"refactoredCode"`
	Error          string `json:"error,omitempty"`
}

// StatsResponse is the response of GET /api/stats: registry counts plus
// store-level counts, generalized from the teacher's metrics-handler shape.
type StatsResponse struct {
	Rules       RuleStats       `json:"rules"`
	Providers   ProviderStats   `json:"providers"`
	Store       StoreStats      `json:"store"`
}

// RuleStats summarizes the rule registry.
type RuleStats struct {
	Total           int            `json:"total"`
	Enabled         int            `json:"enabled"`
	ByCategory      map[string]int `json:"byCategory"`
	BySeverity      map[string]int `json:"bySeverity"`
}

// ProviderStats summarizes the refactor provider registry.
type ProviderStats struct {
	Total int `json:"total"`
}

// StoreStats summarizes the persistence layer.
type StoreStats struct {
	TotalAnalyses int `json:"totalAnalyses"`
	TotalFiles    int `json:"totalFiles"`
}

// HealthResponse is the response of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	UptimeMs  int64  `json:"uptimeMs"`
}
