package storage

import (
	"errors"

	"github.com/Masterminds/squirrel"
)

// SqBuilder renders $n placeholders for Postgres
var SqBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// ErrBadQuery is returned when a statement cannot be built
var ErrBadQuery = errors.New("failed to build query")

const (
	lastQueriesTable  = "last_queries"
	analysisRunsTable = "analysis_runs"
)
