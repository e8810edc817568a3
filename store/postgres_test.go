package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStoreSaveAndGetAnalysis(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	result := AnalysisResult{
		Metadata: AnalysisMetadata{ID: "analysis-1", FileName: "a.js", FileSize: 10, Language: "javascript", AnalysisDate: "2026-07-29T00:00:00Z", DurationMs: 5.5},
		Issues:   []Issue{{ID: "i1", Type: "no-console-log", Severity: SeverityLow, Line: 1, FileName: "a.js"}},
		Stats:    Stats{TotalIssues: 1, LowIssues: 1},
	}

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs("analysis-1", "a.js", 10, "javascript", "2026-07-29T00:00:00Z", 5.5,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	s := NewPostgresStore(db)
	require.NoError(t, s.SaveAnalysis(context.Background(), result))

	rows := sqlmock.NewRows([]string{"id", "file_name", "file_size", "language", "analysis_date", "duration_ms", "issues", "suggestions", "stats", "full_suggestions"}).
		AddRow("analysis-1", "a.js", 10, "javascript", "2026-07-29T00:00:00Z", 5.5,
			`[{"id":"i1","type":"no-console-log","message":"","severity":"low","line":1,"column":0,"fileName":"a.js"}]`,
			`[]`, `{"totalIssues":1,"lowIssues":1}`, `{}`)
	mock.ExpectQuery("SELECT (.+) FROM analyses WHERE id").WithArgs("analysis-1").WillReturnRows(rows)

	got, err := s.GetAnalysis(context.Background(), "analysis-1")
	require.NoError(t, err)
	assert.Equal(t, "a.js", got.Metadata.FileName)
	require.Len(t, got.Issues, 1)
	assert.Equal(t, SeverityLow, got.Issues[0].Severity)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreGetAnalysisNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM analyses WHERE id").WithArgs("missing").WillReturnError(sql.ErrNoRows)

	s := NewPostgresStore(db)
	_, err = s.GetAnalysis(context.Background(), "missing")
	require.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreDeleteAnalysisNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM analyses WHERE id").WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))

	s := NewPostgresStore(db)
	err = s.DeleteAnalysis(context.Background(), "missing")
	require.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}
