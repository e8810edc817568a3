package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"sentinel-refactor/apperrors"
)

// PostgresStore implements Store over a *sql.DB, marshaling the nested
// Issues/Suggestions/Stats/FullSuggestions fields to jsonb columns the same
// way the workflow repository marshals steps and schemas.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an already-opened *sql.DB. Opening the connection
// and running migrations is the composition root's job, not the store's.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// SaveAnalysis implements Store.
func (p *PostgresStore) SaveAnalysis(ctx context.Context, result AnalysisResult) error {
	issuesJSON, err := json.Marshal(result.Issues)
	if err != nil {
		return fmt.Errorf("marshal issues: %w", err)
	}
	suggestionsJSON, err := json.Marshal(result.Suggestions)
	if err != nil {
		return fmt.Errorf("marshal suggestions: %w", err)
	}
	statsJSON, err := json.Marshal(result.Stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	fullJSON, err := json.Marshal(result.FullSuggestions)
	if err != nil {
		return fmt.Errorf("marshal full suggestions: %w", err)
	}

	query := `
		INSERT INTO analyses (id, file_name, file_size, language, analysis_date, duration_ms, issues, suggestions, stats, full_suggestions)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8::jsonb, $9::jsonb, $10::jsonb)
		ON CONFLICT (id) DO UPDATE SET
			file_name = EXCLUDED.file_name,
			file_size = EXCLUDED.file_size,
			language = EXCLUDED.language,
			analysis_date = EXCLUDED.analysis_date,
			duration_ms = EXCLUDED.duration_ms,
			issues = EXCLUDED.issues,
			suggestions = EXCLUDED.suggestions,
			stats = EXCLUDED.stats,
			full_suggestions = EXCLUDED.full_suggestions
	`

	m := result.Metadata
	_, err = p.db.ExecContext(ctx, query,
		m.ID, m.FileName, m.FileSize, m.Language, m.AnalysisDate, m.DurationMs,
		string(issuesJSON), string(suggestionsJSON), string(statsJSON), string(fullJSON),
	)
	return err
}

// GetAnalysis implements Store.
func (p *PostgresStore) GetAnalysis(ctx context.Context, id string) (AnalysisResult, error) {
	query := `
		SELECT id, file_name, file_size, language, analysis_date, duration_ms, issues, suggestions, stats, full_suggestions
		FROM analyses WHERE id = $1
	`

	var result AnalysisResult
	var issuesJSON, suggestionsJSON, statsJSON, fullJSON string

	err := p.db.QueryRowContext(ctx, query, id).Scan(
		&result.Metadata.ID, &result.Metadata.FileName, &result.Metadata.FileSize,
		&result.Metadata.Language, &result.Metadata.AnalysisDate, &result.Metadata.DurationMs,
		&issuesJSON, &suggestionsJSON, &statsJSON, &fullJSON,
	)
	if err == sql.ErrNoRows {
		return AnalysisResult{}, &apperrors.NotFoundError{Resource: "analysis", ID: id}
	}
	if err != nil {
		return AnalysisResult{}, fmt.Errorf("query analysis: %w", err)
	}

	if err := unmarshalAnalysisColumns(&result, issuesJSON, suggestionsJSON, statsJSON, fullJSON); err != nil {
		return AnalysisResult{}, err
	}
	return result, nil
}

func unmarshalAnalysisColumns(result *AnalysisResult, issuesJSON, suggestionsJSON, statsJSON, fullJSON string) error {
	if err := json.Unmarshal([]byte(issuesJSON), &result.Issues); err != nil {
		return fmt.Errorf("unmarshal issues: %w", err)
	}
	if err := json.Unmarshal([]byte(suggestionsJSON), &result.Suggestions); err != nil {
		return fmt.Errorf("unmarshal suggestions: %w", err)
	}
	if err := json.Unmarshal([]byte(statsJSON), &result.Stats); err != nil {
		return fmt.Errorf("unmarshal stats: %w", err)
	}
	if fullJSON != "" {
		if err := json.Unmarshal([]byte(fullJSON), &result.FullSuggestions); err != nil {
			return fmt.Errorf("unmarshal full suggestions: %w", err)
		}
	}
	return nil
}

// DeleteAnalysis implements Store.
func (p *PostgresStore) DeleteAnalysis(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return &apperrors.NotFoundError{Resource: "analysis", ID: id}
	}
	return nil
}

// ListAnalyses implements Store. Filters and sort/pagination are pushed
// into the query rather than applied in Go, unlike MemoryStore.
func (p *PostgresStore) ListAnalyses(ctx context.Context, filter ListFilter) ([]AnalysisResult, error) {
	query := `
		SELECT id, file_name, file_size, language, analysis_date, duration_ms, issues, suggestions, stats, full_suggestions
		FROM analyses
		WHERE ($1 = '' OR file_name = $1)
		  AND ($2 = '' OR language = $2)
		  AND ($3 = '' OR issues::jsonb @> ('[{"severity":"' || $3 || '"}]')::jsonb
		       OR EXISTS (SELECT 1 FROM jsonb_array_elements(issues::jsonb) elem WHERE elem->>'severity' = $3))
	`
	query += orderByClause(filter.SortBy, filter.Desc)
	query += ` OFFSET $4 LIMIT $5`

	limit := filter.Limit
	if limit <= 0 {
		limit = 1_000_000
	}

	rows, err := p.db.QueryContext(ctx, query, filter.FileName, filter.Language, string(filter.Severity), filter.Offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var results []AnalysisResult
	for rows.Next() {
		var result AnalysisResult
		var issuesJSON, suggestionsJSON, statsJSON, fullJSON string
		if err := rows.Scan(
			&result.Metadata.ID, &result.Metadata.FileName, &result.Metadata.FileSize,
			&result.Metadata.Language, &result.Metadata.AnalysisDate, &result.Metadata.DurationMs,
			&issuesJSON, &suggestionsJSON, &statsJSON, &fullJSON,
		); err != nil {
			return nil, fmt.Errorf("scan analysis row: %w", err)
		}
		if err := unmarshalAnalysisColumns(&result, issuesJSON, suggestionsJSON, statsJSON, fullJSON); err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

func orderByClause(by SortField, desc bool) string {
	column := "analysis_date"
	switch by {
	case SortByFileName:
		column = "file_name"
	case SortBySeverity:
		// severity is not a plain column; ordering on it is a memory-store-only
		// feature in this implementation, so fall back to analysis_date.
		column = "analysis_date"
	}
	if desc {
		return fmt.Sprintf(" ORDER BY %s DESC", column)
	}
	return fmt.Sprintf(" ORDER BY %s ASC", column)
}

// SaveFile implements Store.
func (p *PostgresStore) SaveFile(ctx context.Context, file FileRecord) error {
	query := `
		INSERT INTO files (id, name, path, size, type, content, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, path = EXCLUDED.path, size = EXCLUDED.size,
			type = EXCLUDED.type, content = EXCLUDED.content, uploaded_at = EXCLUDED.uploaded_at
	`
	_, err := p.db.ExecContext(ctx, query, file.ID, file.Name, file.Path, file.Size, file.Type, file.Content, file.UploadedAt)
	return err
}

// GetFile implements Store.
func (p *PostgresStore) GetFile(ctx context.Context, id string) (FileRecord, error) {
	query := `SELECT id, name, path, size, type, content, uploaded_at FROM files WHERE id = $1`
	var file FileRecord
	err := p.db.QueryRowContext(ctx, query, id).Scan(
		&file.ID, &file.Name, &file.Path, &file.Size, &file.Type, &file.Content, &file.UploadedAt,
	)
	if err == sql.ErrNoRows {
		return FileRecord{}, &apperrors.NotFoundError{Resource: "file", ID: id}
	}
	if err != nil {
		return FileRecord{}, fmt.Errorf("query file: %w", err)
	}
	return file, nil
}

// SaveTemplate implements Store.
func (p *PostgresStore) SaveTemplate(ctx context.Context, tmpl CodeTemplate) error {
	query := `
		INSERT INTO code_templates (id, name, language, code)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, language = EXCLUDED.language, code = EXCLUDED.code
	`
	_, err := p.db.ExecContext(ctx, query, tmpl.ID, tmpl.Name, tmpl.Language, tmpl.Code)
	return err
}

// ListTemplates implements Store.
func (p *PostgresStore) ListTemplates(ctx context.Context, language string) ([]CodeTemplate, error) {
	query := `SELECT id, name, language, code FROM code_templates WHERE ($1 = '' OR language = $1) ORDER BY id`
	rows, err := p.db.QueryContext(ctx, query, language)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []CodeTemplate
	for rows.Next() {
		var tmpl CodeTemplate
		if err := rows.Scan(&tmpl.ID, &tmpl.Name, &tmpl.Language, &tmpl.Code); err != nil {
			return nil, fmt.Errorf("scan template row: %w", err)
		}
		templates = append(templates, tmpl)
	}
	return templates, rows.Err()
}
