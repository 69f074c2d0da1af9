package db

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is stored in PRAGMA user_version once the schema is in place.
var SchemaVersion = len(migrations)

// Migrate creates the document schema in one transaction. Every statement is
// idempotent, so running it against an up-to-date database is a no-op.
func Migrate(ctx context.Context, database *sql.DB) error {
	return NewSQLiteUnitOfWork(database).WithinTx(ctx, func(ctx context.Context, tx DBTX) error {
		for i, stmt := range migrations {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migration %d: %w", i+1, err)
			}
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
			return fmt.Errorf("recording schema version: %w", err)
		}
		return nil
	})
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		date        TEXT NOT NULL,
		day_length  INTEGER NOT NULL CHECK(day_length > 0),
		updated_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS document_tasks (
		document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL CHECK(position >= 0),
		name        TEXT NOT NULL,
		start_time  TEXT NOT NULL,
		length      INTEGER NOT NULL CHECK(length > 0),
		rigid       INTEGER NOT NULL DEFAULT 0 CHECK(rigid IN (0, 1)),
		fixed       INTEGER NOT NULL DEFAULT 0 CHECK(fixed IN (0, 1)),
		PRIMARY KEY (document_id, position)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_documents_updated ON documents(updated_at)`,
	`CREATE INDEX IF NOT EXISTS idx_documents_date ON documents(date)`,
}
