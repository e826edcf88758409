// internal/adapter/storage/query_store.go

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"sentilytics/internal/domain/analysis"
)

// QueryStore keeps the last submitted query per client in Postgres
type QueryStore struct {
	db *pgxpool.Pool
}

var _ analysis.QueryStore = (*QueryStore)(nil)

// NewQueryStore creates a new query store
func NewQueryStore(db *pgxpool.Pool) *QueryStore {
	return &QueryStore{
		db: db,
	}
}

// LoadLastQuery implements analysis.QueryStore
func (s *QueryStore) LoadLastQuery(ctx context.Context, clientKey string) (string, error) {
	query, args, err := selectLastQuery(clientKey)
	if err != nil {
		return "", ErrBadQuery
	}

	var last string
	err = s.db.QueryRow(ctx, query, args...).Scan(&last)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("error loading last query: %w", err)
	}
	return last, nil
}

// SaveLastQuery implements analysis.QueryStore
func (s *QueryStore) SaveLastQuery(ctx context.Context, clientKey string, q string) error {
	query, args, err := upsertLastQuery(clientKey, q, time.Now().UTC())
	if err != nil {
		return ErrBadQuery
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("error saving last query: %w", err)
	}
	return nil
}

func selectLastQuery(clientKey string) (string, []interface{}, error) {
	return SqBuilder.
		Select("query").
		From(lastQueriesTable).
		Where(sq.Eq{"client_key": clientKey}).
		ToSql()
}

func upsertLastQuery(clientKey, q string, at time.Time) (string, []interface{}, error) {
	return SqBuilder.
		Insert(lastQueriesTable).
		Columns("client_key", "query", "updated_at").
		Values(clientKey, q, at).
		Suffix("ON CONFLICT (client_key) DO UPDATE SET query = EXCLUDED.query, updated_at = EXCLUDED.updated_at").
		ToSql()
}
