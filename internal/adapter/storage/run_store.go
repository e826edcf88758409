// internal/adapter/storage/run_store.go

package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"sentilytics/internal/domain/analysis"
)

// DefaultRunLimit caps ListRuns when no positive limit is given
const DefaultRunLimit = 50

var runColumns = []string{
	"id", "session_id", "client_key", "query",
	"total_results", "post_count", "breakdown", "fetched_at",
}

// RunStore keeps the history of analysis runs in Postgres
type RunStore struct {
	db *pgxpool.Pool
}

var _ analysis.RunRecorder = (*RunStore)(nil)

// NewRunStore creates a new run store
func NewRunStore(db *pgxpool.Pool) *RunStore {
	return &RunStore{
		db: db,
	}
}

// RecordRun implements analysis.RunRecorder
func (s *RunStore) RecordRun(ctx context.Context, run analysis.Run) error {
	query, args, err := insertRun(run)
	if err != nil {
		return err
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("error recording run: %w", err)
	}
	return nil
}

// ListRuns implements analysis.RunRecorder, newest first
func (s *RunStore) ListRuns(ctx context.Context, limit int) ([]analysis.Run, error) {
	query, args, err := selectRuns(limit)
	if err != nil {
		return nil, ErrBadQuery
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing runs: %w", err)
	}
	defer rows.Close()

	runs := make([]analysis.Run, 0)
	for rows.Next() {
		var (
			run           analysis.Run
			breakdownJSON []byte
		)
		if err := rows.Scan(
			&run.ID,
			&run.SessionID,
			&run.ClientKey,
			&run.Query,
			&run.TotalResults,
			&run.PostCount,
			&breakdownJSON,
			&run.FetchedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning run: %w", err)
		}
		if err := json.Unmarshal(breakdownJSON, &run.Breakdown); err != nil {
			return nil, fmt.Errorf("error unmarshaling breakdown: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return runs, nil
}

func insertRun(run analysis.Run) (string, []interface{}, error) {
	breakdown := run.Breakdown
	if breakdown == nil {
		breakdown = analysis.Breakdown{}
	}
	breakdownJSON, err := json.Marshal(breakdown)
	if err != nil {
		return "", nil, fmt.Errorf("error marshaling breakdown: %w", err)
	}

	query, args, err := SqBuilder.
		Insert(analysisRunsTable).
		Columns(runColumns...).
		Values(
			run.ID,
			run.SessionID,
			run.ClientKey,
			run.Query,
			run.TotalResults,
			run.PostCount,
			string(breakdownJSON),
			run.FetchedAt,
		).
		ToSql()
	if err != nil {
		return "", nil, ErrBadQuery
	}
	return query, args, nil
}

func selectRuns(limit int) (string, []interface{}, error) {
	if limit <= 0 {
		limit = DefaultRunLimit
	}
	return SqBuilder.
		Select(runColumns...).
		From(analysisRunsTable).
		OrderBy("fetched_at DESC").
		Limit(uint64(limit)).
		ToSql()
}
