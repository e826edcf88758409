package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upInit, downInit)
}

func upInit(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS last_queries (
		client_key TEXT PRIMARY KEY,
		query      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS analysis_runs (
		id            TEXT PRIMARY KEY,
		session_id    TEXT NOT NULL,
		client_key    TEXT NOT NULL DEFAULT '',
		query         TEXT NOT NULL,
		total_results INTEGER NOT NULL,
		post_count    INTEGER NOT NULL,
		breakdown     JSONB NOT NULL DEFAULT '{}',
		fetched_at    TIMESTAMPTZ NOT NULL
	);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downInit(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP TABLE IF EXISTS analysis_runs;
	DROP TABLE IF EXISTS last_queries;
	`)
	if err != nil {
		return err
	}
	return nil
}
