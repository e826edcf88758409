// internal/service/listening/session.go

package listening

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"sentilytics/internal/domain/analysis"
	"sentilytics/internal/service/analytics"
	"sentilytics/pkg/logger"
)

// SessionConfig contains the per-session defaults
type SessionConfig struct {
	DefaultFilter   analysis.FilterConfig
	RefreshInterval time.Duration
	FetchTimeout    time.Duration
}

// Session owns the query and filter of one analysis and re-derives the view
// whenever one of its inputs changes. Fetches are fenced by a sequence number
// so that only the latest issued request may update the result.
type Session struct {
	id        string
	clientKey string

	fetcher   analysis.Fetcher
	queries   analysis.QueryStore
	runs      analysis.RunRecorder
	publisher analysis.ViewPublisher
	scheduler Scheduler
	config    SessionConfig
	log       logger.Logger
	now       func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	query       string
	filter      analysis.FilterConfig
	raw         *analysis.Result
	view        analysis.View
	errMsg      string
	seq         uint64
	inFlight    context.CancelFunc
	autoRefresh bool
	closed      bool
	version     uint64

	// pubMu orders publishes; published is the last version handed out
	pubMu     sync.Mutex
	published uint64
}

// Dependencies groups the collaborators shared by all sessions. Only Fetcher
// is required.
type Dependencies struct {
	Fetcher   analysis.Fetcher
	Queries   analysis.QueryStore
	Runs      analysis.RunRecorder
	Publisher analysis.ViewPublisher
	Scheduler Scheduler
	Logger    logger.Logger
	Clock     func() time.Time
}

// NewSession creates a session with the given initial query
func NewSession(id, clientKey, query string, deps Dependencies, config SessionConfig) *Session {
	ctx, cancel := context.WithCancel(context.Background())

	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if config.DefaultFilter.Platform == "" {
		config.DefaultFilter.Platform = analysis.PlatformAll
	}
	if config.DefaultFilter.DateRange == "" {
		config.DefaultFilter.DateRange = analysis.DateRange24h
	}

	s := &Session{
		id:        id,
		clientKey: clientKey,
		fetcher:   deps.Fetcher,
		queries:   deps.Queries,
		runs:      deps.Runs,
		publisher: deps.Publisher,
		scheduler: deps.Scheduler,
		config:    config,
		log:       deps.Logger.WithComponent("Session").With("session_id", id),
		now:       deps.Clock,
		ctx:       ctx,
		cancel:    cancel,
		query:     query,
		filter:    config.DefaultFilter,
	}
	s.deriveLocked()
	return s
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// View returns the current view model
func (s *Session) View() analysis.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Analyze fetches the current query and re-derives the view from the
// response. A newer Analyze cancels and supersedes an older one still in
// flight; the older call then returns ErrSuperseded.
func (s *Session) Analyze(ctx context.Context) (analysis.View, error) {
	view, _, err := s.fetch(ctx, true)
	return view, err
}

// Refresh re-fetches the current query unless a fetch is already outstanding
// or there is nothing to fetch. It reports whether a fetch was issued.
func (s *Session) Refresh(ctx context.Context) (bool, error) {
	_, issued, err := s.fetch(ctx, false)
	return issued, err
}

func (s *Session) fetch(ctx context.Context, supersede bool) (analysis.View, bool, error) {
	s.mu.Lock()
	query := strings.TrimSpace(s.query)
	if !supersede && (s.inFlight != nil || query == "") {
		view := s.view
		s.mu.Unlock()
		s.log.Debug("Skipping refresh", "in_flight", view.Loading, "empty_query", query == "")
		return view, false, nil
	}
	if query == "" {
		s.errMsg = analysis.ErrEmptyQuery.Error()
		view := s.deriveLocked()
		s.mu.Unlock()
		s.publish(view)
		return view, false, analysis.ErrEmptyQuery
	}

	// Only the latest request may apply its response
	if s.inFlight != nil {
		s.inFlight()
	}
	s.seq++
	seq := s.seq

	var (
		fetchCtx context.Context
		cancel   context.CancelFunc
	)
	// The result is shared by every viewer of the session, so a caller going
	// away must not abort it. Close and newer fetches still cancel it.
	parent := context.WithoutCancel(ctx)
	if s.config.FetchTimeout > 0 {
		fetchCtx, cancel = context.WithTimeout(parent, s.config.FetchTimeout)
	} else {
		fetchCtx, cancel = context.WithCancel(parent)
	}
	s.inFlight = cancel
	s.errMsg = ""
	loadingView := s.deriveLocked()
	s.mu.Unlock()

	s.publish(loadingView)

	s.log.Info("Fetching sentiment analysis", "query", query, "seq", seq)
	result, err := s.fetcher.Fetch(fetchCtx, query)
	cancel()

	s.mu.Lock()
	if seq != s.seq || s.closed {
		view, latest := s.view, s.seq
		s.mu.Unlock()
		s.log.Debug("Discarding superseded response", "seq", seq, "latest", latest)
		return view, true, analysis.ErrSuperseded
	}
	s.inFlight = nil

	if err != nil {
		s.raw = nil
		s.errMsg = err.Error()
		view := s.deriveLocked()
		s.mu.Unlock()

		s.log.Warn("Sentiment fetch failed", "query", query, "error", err)
		s.publish(view)
		return view, true, err
	}

	s.raw = &result
	view := s.deriveLocked()
	s.mu.Unlock()

	s.afterFetch(query, result)
	s.publish(view)
	return view, true, nil
}

// afterFetch saves the submitted query and records the run
func (s *Session) afterFetch(query string, result analysis.Result) {
	ctx := context.WithoutCancel(s.ctx)

	if s.queries != nil && s.clientKey != "" {
		if err := s.queries.SaveLastQuery(ctx, s.clientKey, query); err != nil {
			s.log.Error("Failed to save last query", "error", err)
		}
	}

	if s.runs != nil {
		run := analysis.Run{
			ID:           uuid.New().String(),
			SessionID:    s.id,
			ClientKey:    s.clientKey,
			Query:        query,
			TotalResults: result.TotalResults,
			PostCount:    len(result.Posts),
			Breakdown:    result.SentimentBreakdown,
			FetchedAt:    s.now().UTC(),
		}
		if err := s.runs.RecordRun(ctx, run); err != nil {
			s.log.Error("Failed to record analysis run", "error", err)
		}
	}
}

// SetQuery replaces the query without fetching
func (s *Session) SetQuery(query string) analysis.View {
	return s.update(func() { s.query = query })
}

// SetPlatform changes the platform filter without fetching
func (s *Session) SetPlatform(platform string) analysis.View {
	return s.update(func() { s.filter.Platform = strings.ToLower(platform) })
}

// SetDateRange changes the date range without fetching
func (s *Session) SetDateRange(dateRange analysis.DateRange) analysis.View {
	return s.update(func() { s.filter.DateRange = dateRange })
}

// SetFilter replaces the whole filter without fetching
func (s *Session) SetFilter(cfg analysis.FilterConfig) analysis.View {
	return s.update(func() {
		cfg.Platform = strings.ToLower(cfg.Platform)
		s.filter = cfg
	})
}

// ResetFilters widens the filter to every platform and date
func (s *Session) ResetFilters() analysis.View {
	return s.SetFilter(analysis.ResetFilter())
}

func (s *Session) update(fn func()) analysis.View {
	s.mu.Lock()
	fn()
	view := s.deriveLocked()
	s.mu.Unlock()

	s.publish(view)
	return view
}

// SetAutoRefresh starts or stops periodic refreshing. Stopping does not abort
// a fetch that is already running.
func (s *Session) SetAutoRefresh(enabled bool) (analysis.View, error) {
	if s.scheduler == nil && enabled {
		return s.View(), errors.New("auto refresh is not available")
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return s.View(), analysis.ErrSessionNotFound
	}
	if s.autoRefresh == enabled {
		view := s.view
		s.mu.Unlock()
		return view, nil
	}
	s.mu.Unlock()

	var err error
	if enabled {
		err = s.scheduler.Every(s.id, s.config.RefreshInterval, func() {
			if _, err := s.Refresh(s.ctx); err != nil && !errors.Is(err, analysis.ErrSuperseded) {
				s.log.Warn("Auto refresh failed", "error", err)
			}
		})
	} else if s.scheduler != nil {
		err = s.scheduler.Cancel(s.id)
	}
	if err != nil {
		return s.View(), err
	}

	return s.update(func() { s.autoRefresh = enabled }), nil
}

// Close stops auto refresh and aborts any outstanding fetch
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	refreshing := s.autoRefresh
	s.autoRefresh = false
	if s.inFlight != nil {
		s.inFlight()
		s.inFlight = nil
	}
	s.mu.Unlock()

	if refreshing && s.scheduler != nil {
		if err := s.scheduler.Cancel(s.id); err != nil {
			s.log.Warn("Failed to cancel auto refresh", "error", err)
		}
	}
	s.cancel()
}

// deriveLocked rebuilds the view; callers hold mu
func (s *Session) deriveLocked() analysis.View {
	view := analytics.Derive(s.raw, s.filter, s.query, s.now())
	s.version++
	view.SessionID = s.id
	view.Version = s.version
	view.Loading = s.inFlight != nil
	view.AutoRefresh = s.autoRefresh
	view.Error = s.errMsg
	s.view = view
	return view
}

// publish hands view to the publisher unless a newer one already went out
func (s *Session) publish(view analysis.View) {
	if s.publisher == nil {
		return
	}

	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	if view.Version <= s.published {
		s.log.Debug("Skipping stale view", "version", view.Version, "published", s.published)
		return
	}
	s.published = view.Version

	if err := s.publisher.PublishView(s.ctx, view); err != nil {
		s.log.Warn("Failed to publish view", "error", err)
	}
}
