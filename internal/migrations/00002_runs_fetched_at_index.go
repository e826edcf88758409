package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upRunsFetchedAtIndex, downRunsFetchedAtIndex)
}

func upRunsFetchedAtIndex(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE INDEX IF NOT EXISTS analysis_runs_fetched_at_idx ON analysis_runs (fetched_at DESC);
	`)
	return err
}

func downRunsFetchedAtIndex(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP INDEX IF EXISTS analysis_runs_fetched_at_idx;
	`)
	return err
}
