// Package migrations holds the Postgres schema as goose Go migrations.
package migrations

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

// Dir is the directory goose reads inside FS
const Dir = "."

// FS carries the migration sources so goose can match them to the
// registered functions without a checkout on disk.
//
//go:embed 0*.go
var FS embed.FS

// Setup points goose at the embedded migrations
func Setup() error {
	goose.SetBaseFS(FS)
	return goose.SetDialect("postgres")
}

// Up applies every pending migration
func Up(ctx context.Context, db *sql.DB) error {
	if err := Setup(); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, Dir)
}
