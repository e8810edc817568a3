package store

import (
	"context"
	"database/sql"
	"fmt"

	"sentinel-refactor/pkg/database"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS analyses (
	id               TEXT PRIMARY KEY,
	file_name        TEXT NOT NULL,
	file_size        INTEGER NOT NULL,
	language         TEXT NOT NULL,
	analysis_date    TEXT NOT NULL,
	duration_ms      DOUBLE PRECISION NOT NULL,
	issues           JSONB NOT NULL DEFAULT '[]',
	suggestions      JSONB NOT NULL DEFAULT '[]',
	stats            JSONB NOT NULL DEFAULT '{}',
	full_suggestions JSONB NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS files (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	path        TEXT NOT NULL,
	size        INTEGER NOT NULL,
	type        TEXT NOT NULL,
	content     BYTEA,
	uploaded_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS code_templates (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	language TEXT NOT NULL,
	code     TEXT NOT NULL
);
`

// Migrate creates the analyses/files/code_templates tables if they do not
// already exist. Idempotent, safe to call on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	err := database.WithCustomTimeout(ctx, database.DefaultTimeoutConfig.ContextTimeout, func(ctx context.Context) error {
		_, err := db.ExecContext(ctx, schemaSQL)
		return err
	})
	if err != nil {
		return fmt.Errorf("run schema migration: %w", err)
	}
	return nil
}
