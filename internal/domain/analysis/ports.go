// internal/domain/analysis/ports.go

package analysis

import (
	"context"
)

//go:generate go run go.uber.org/mock/mockgen -source=ports.go -destination=mocks/mock_ports.go -package=mocks

// Fetcher retrieves the raw analysis for a query from the sentiment endpoint
type Fetcher interface {
	// Fetch returns the result for query. Errors wrap ErrTransport or ErrPayload.
	Fetch(ctx context.Context, query string) (Result, error)
}

// QueryStore persists the last submitted query per client
type QueryStore interface {
	// LoadLastQuery returns "" when nothing was saved for clientKey
	LoadLastQuery(ctx context.Context, clientKey string) (string, error)

	// SaveLastQuery replaces the saved query for clientKey
	SaveLastQuery(ctx context.Context, clientKey string, query string) error
}

// RunRecorder keeps a history of successful fetches
type RunRecorder interface {
	RecordRun(ctx context.Context, run Run) error
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}

// ViewPublisher receives every re-derived view
type ViewPublisher interface {
	PublishView(ctx context.Context, view View) error
}
