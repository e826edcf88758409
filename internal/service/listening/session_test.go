package listening

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"sentilytics/internal/domain/analysis"
	"sentilytics/internal/domain/analysis/mocks"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

func launchResult() analysis.Result {
	return analysis.Result{
		TotalResults:       2,
		SentimentBreakdown: analysis.Breakdown{{Label: "Positive", Count: 1}, {Label: "Negative", Count: 1}},
		Posts: []analysis.Post{
			{Source: "Twitter", Sentiment: "Positive", Text: "great launch event", CreatedAt: analysis.TimestampFromTime(testNow)},
			{Source: "Reddit", Sentiment: "Negative", Text: "pricing concerns again", CreatedAt: analysis.TimestampFromTime(testNow)},
		},
	}
}

type stubResponse struct {
	result  analysis.Result
	err     error
	release chan struct{}
}

// stubFetcher answers per query and ignores cancellation so that late
// responses can be simulated
type stubFetcher struct {
	mu        sync.Mutex
	calls     int
	started   chan string
	responses map[string]stubResponse
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{
		started:   make(chan string, 8),
		responses: make(map[string]stubResponse),
	}
}

func (f *stubFetcher) Fetch(_ context.Context, query string) (analysis.Result, error) {
	f.mu.Lock()
	f.calls++
	r, ok := f.responses[query]
	f.mu.Unlock()

	f.started <- query
	if !ok {
		return analysis.Result{}, fmt.Errorf("%w: no stub for %q", analysis.ErrTransport, query)
	}
	if r.release != nil {
		<-r.release
	}
	return r.result, r.err
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeScheduler struct {
	mu    sync.Mutex
	tasks map[string]func()
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{tasks: make(map[string]func())}
}

func (f *fakeScheduler) Every(key string, _ time.Duration, task func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[key] = task
	return nil
}

func (f *fakeScheduler) Cancel(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tasks, key)
	return nil
}

func (f *fakeScheduler) tick(key string) bool {
	f.mu.Lock()
	task, ok := f.tasks[key]
	f.mu.Unlock()
	if ok {
		task()
	}
	return ok
}

func newTestSession(t *testing.T, fetcher analysis.Fetcher, deps Dependencies) *Session {
	t.Helper()
	deps.Fetcher = fetcher
	deps.Clock = testClock

	clientKey := ""
	if deps.Queries != nil {
		clientKey = "client-1"
	}

	s := NewSession("s-1", clientKey, "", deps, SessionConfig{RefreshInterval: time.Minute})
	t.Cleanup(s.Close)
	return s
}

func TestSessionAnalyzeRejectsEmptyQuery(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)

	s := newTestSession(t, fetcher, Dependencies{})
	s.SetQuery("   ")

	view, err := s.Analyze(context.Background())
	if !errors.Is(err, analysis.ErrEmptyQuery) {
		t.Fatalf("err = %v, want ErrEmptyQuery", err)
	}
	if view.Error != "Please enter a keyword or hashtag to analyze." {
		t.Errorf("error message = %q", view.Error)
	}
	if view.HasResult || view.Loading {
		t.Errorf("state changed beyond the error message: %+v", view)
	}
}

func TestSessionAnalyzeSuccess(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	queries := mocks.NewMockQueryStore(ctrl)
	runs := mocks.NewMockRunRecorder(ctrl)
	publisher := mocks.NewMockViewPublisher(ctrl)

	fetcher.EXPECT().Fetch(gomock.Any(), "launch").Return(launchResult(), nil)
	queries.EXPECT().SaveLastQuery(gomock.Any(), "client-1", "launch").Return(nil)
	runs.EXPECT().RecordRun(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, run analysis.Run) error {
		if run.Query != "launch" || run.SessionID != "s-1" || run.PostCount != 2 || run.TotalResults != 2 {
			t.Errorf("unexpected run %+v", run)
		}
		return nil
	})
	publisher.EXPECT().PublishView(gomock.Any(), gomock.Any()).Return(nil).MinTimes(2)

	s := newTestSession(t, fetcher, Dependencies{Queries: queries, Runs: runs, Publisher: publisher})
	s.SetQuery("  launch ")

	view, err := s.Analyze(context.Background())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !view.HasResult || view.Loading || view.Error != "" {
		t.Errorf("unexpected status %+v", view)
	}
	if view.Insight.Title != "Mixed Reactions" || view.DominantPlatform != "Twitter (X)" {
		t.Errorf("unexpected derived fields: %q %q", view.Insight.Title, view.DominantPlatform)
	}
	if view.Query != "  launch " {
		t.Errorf("query = %q", view.Query)
	}
}

func TestSessionFilterChangesDoNotFetch(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), "launch").Return(launchResult(), nil).Times(1)

	s := newTestSession(t, fetcher, Dependencies{})
	s.SetQuery("launch")
	if _, err := s.Analyze(context.Background()); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	view := s.SetPlatform("REDDIT")
	if len(view.Posts) != 1 || view.Posts[0].Source != "Reddit" {
		t.Errorf("platform filter not applied: %+v", view.Posts)
	}
	if view.DominantPlatform != "Reddit" {
		t.Errorf("dominant platform = %q", view.DominantPlatform)
	}

	view = s.SetDateRange(analysis.DateRange7d)
	if view.Filter.DateRange != analysis.DateRange7d || view.Filter.Platform != "reddit" {
		t.Errorf("filter = %+v", view.Filter)
	}

	view = s.ResetFilters()
	if len(view.Posts) != 2 {
		t.Errorf("reset filters kept %d posts", len(view.Posts))
	}

	view = s.SetQuery("great")
	if view.TopKeyword != "launch" {
		t.Errorf("top keyword after query change = %q", view.TopKeyword)
	}
}

func TestSessionAnalyzeFailureClearsResult(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	gomock.InOrder(
		fetcher.EXPECT().Fetch(gomock.Any(), "launch").Return(launchResult(), nil),
		fetcher.EXPECT().Fetch(gomock.Any(), "launch").Return(analysis.Result{}, fmt.Errorf("%w: status 500", analysis.ErrTransport)),
	)

	s := newTestSession(t, fetcher, Dependencies{})
	s.SetQuery("launch")
	if _, err := s.Analyze(context.Background()); err != nil {
		t.Fatalf("first Analyze: %v", err)
	}

	view, err := s.Analyze(context.Background())
	if !errors.Is(err, analysis.ErrTransport) {
		t.Fatalf("err = %v, want ErrTransport", err)
	}
	if view.HasResult || len(view.Posts) != 0 || len(view.Trend) != 0 || len(view.Breakdown) != 0 {
		t.Errorf("stale data kept after failure: %+v", view)
	}
	if view.Error == "" {
		t.Error("missing error message")
	}

	fetcher.EXPECT().Fetch(gomock.Any(), "launch").Return(launchResult(), nil)
	view, err = s.Analyze(context.Background())
	if err != nil || view.Error != "" || !view.HasResult {
		t.Errorf("session did not recover: %v %+v", err, view)
	}
}

func TestSessionDiscardsSupersededResponse(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()
	release := make(chan struct{})
	stale := launchResult()
	stale.TotalResults = 99
	fetcher.responses["old"] = stubResponse{result: stale, release: release}
	fetcher.responses["new"] = stubResponse{result: launchResult()}

	s := newTestSession(t, fetcher, Dependencies{})
	s.SetQuery("old")

	type outcome struct {
		view analysis.View
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		view, err := s.Analyze(context.Background())
		done <- outcome{view, err}
	}()
	<-fetcher.started

	if !s.View().Loading {
		t.Error("view should be loading while a fetch is outstanding")
	}

	s.SetQuery("new")
	view, err := s.Analyze(context.Background())
	if err != nil {
		t.Fatalf("second Analyze: %v", err)
	}
	if view.TotalPosts != 2 {
		t.Fatalf("total posts = %d", view.TotalPosts)
	}

	close(release)
	first := <-done
	if !errors.Is(first.err, analysis.ErrSuperseded) {
		t.Fatalf("first err = %v, want ErrSuperseded", first.err)
	}

	final := s.View()
	if final.Query != "new" || final.TotalPosts != 2 || final.Loading {
		t.Errorf("late response overwrote newer state: %+v", final)
	}
}

func TestSessionRefreshSkipsWhileInFlight(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()
	release := make(chan struct{})
	fetcher.responses["launch"] = stubResponse{result: launchResult(), release: release}

	s := newTestSession(t, fetcher, Dependencies{})
	s.SetQuery("launch")

	done := make(chan error, 1)
	go func() {
		_, err := s.Analyze(context.Background())
		done <- err
	}()
	<-fetcher.started

	issued, err := s.Refresh(context.Background())
	if issued || err != nil {
		t.Errorf("Refresh issued=%v err=%v while a fetch was outstanding", issued, err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got := fetcher.callCount(); got != 1 {
		t.Errorf("fetch calls = %d, want 1", got)
	}
}

func TestSessionRefreshWithoutQuery(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()
	s := newTestSession(t, fetcher, Dependencies{})

	issued, err := s.Refresh(context.Background())
	if issued || err != nil {
		t.Errorf("issued=%v err=%v", issued, err)
	}
	if s.View().Error != "" {
		t.Error("refresh without query must not report an error")
	}
	if fetcher.callCount() != 0 {
		t.Error("unexpected fetch")
	}
}

func TestSessionAutoRefresh(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()
	fetcher.responses["launch"] = stubResponse{result: launchResult()}
	scheduler := newFakeScheduler()

	s := newTestSession(t, fetcher, Dependencies{Scheduler: scheduler})
	s.SetQuery("launch")

	view, err := s.SetAutoRefresh(true)
	if err != nil {
		t.Fatalf("SetAutoRefresh: %v", err)
	}
	if !view.AutoRefresh {
		t.Error("auto refresh flag not set")
	}

	if !scheduler.tick("s-1") {
		t.Fatal("no refresh task scheduled")
	}
	if fetcher.callCount() != 1 || !s.View().HasResult {
		t.Errorf("tick did not refresh: calls=%d", fetcher.callCount())
	}

	view, err = s.SetAutoRefresh(false)
	if err != nil {
		t.Fatalf("SetAutoRefresh(false): %v", err)
	}
	if view.AutoRefresh {
		t.Error("auto refresh flag still set")
	}
	if scheduler.tick("s-1") {
		t.Error("refresh task still scheduled after disabling")
	}
}

// gatedPublisher records views and holds the first view matching gate until
// release is closed
type gatedPublisher struct {
	mu      sync.Mutex
	views   []analysis.View
	gate    func(analysis.View) bool
	entered chan struct{}
	release chan struct{}
}

func (p *gatedPublisher) PublishView(_ context.Context, view analysis.View) error {
	p.mu.Lock()
	hold := p.gate != nil && p.gate(view)
	if hold {
		p.gate = nil
	}
	p.mu.Unlock()

	if hold {
		close(p.entered)
		<-p.release
	}

	p.mu.Lock()
	p.views = append(p.views, view)
	p.mu.Unlock()
	return nil
}

func (p *gatedPublisher) published() []analysis.View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]analysis.View(nil), p.views...)
}

func TestSessionPublishesViewsInOrder(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()
	fetcher.responses["launch"] = stubResponse{result: launchResult()}

	pub := &gatedPublisher{
		gate:    func(v analysis.View) bool { return v.HasResult && !v.Loading },
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := newTestSession(t, fetcher, Dependencies{Publisher: pub})
	s.SetQuery("launch")
	s.SetDateRange(analysis.DateRangeAll)

	analyzed := make(chan error, 1)
	go func() {
		_, err := s.Analyze(context.Background())
		analyzed <- err
	}()
	<-pub.entered

	// The platform change is derived after the fetch result but tries to
	// publish while the fetch result is still being handed out
	filtered := make(chan analysis.View, 1)
	go func() {
		filtered <- s.SetPlatform("reddit")
	}()
	deadline := time.Now().Add(2 * time.Second)
	for s.View().Filter.Platform != "reddit" {
		if time.Now().After(deadline) {
			t.Fatal("platform change was not derived")
		}
		time.Sleep(time.Millisecond)
	}

	close(pub.release)
	if err := <-analyzed; err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	<-filtered

	views := pub.published()
	for i := 1; i < len(views); i++ {
		if views[i].Version <= views[i-1].Version {
			t.Errorf("view %d has version %d after %d", i, views[i].Version, views[i-1].Version)
		}
	}
	last := views[len(views)-1]
	if last.Filter.Platform != "reddit" || len(last.Posts) != 1 {
		t.Errorf("last published view platform=%q posts=%d, want reddit with 1 post", last.Filter.Platform, len(last.Posts))
	}
	if last.Version != s.View().Version {
		t.Errorf("last published version = %d, session version = %d", last.Version, s.View().Version)
	}
}

// cancelAwareFetcher fails when its context is canceled before release
type cancelAwareFetcher struct {
	started chan struct{}
	release chan struct{}
}

func (f *cancelAwareFetcher) Fetch(ctx context.Context, _ string) (analysis.Result, error) {
	close(f.started)
	select {
	case <-ctx.Done():
		return analysis.Result{}, fmt.Errorf("%w: %v", analysis.ErrTransport, ctx.Err())
	case <-f.release:
		return launchResult(), nil
	}
}

func TestSessionFetchOutlivesCaller(t *testing.T) {
	t.Parallel()

	fetcher := &cancelAwareFetcher{started: make(chan struct{}), release: make(chan struct{})}
	s := newTestSession(t, fetcher, Dependencies{})
	s.SetQuery("launch")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := s.Analyze(ctx)
		done <- err
	}()
	<-fetcher.started

	cancel()
	time.Sleep(20 * time.Millisecond)
	close(fetcher.release)

	if err := <-done; err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	view := s.View()
	if view.Error != "" || !view.HasResult {
		t.Errorf("caller cancellation leaked into the session: %+v", view)
	}
}

func TestSessionCloseAbortsFetch(t *testing.T) {
	t.Parallel()

	fetcher := &cancelAwareFetcher{started: make(chan struct{}), release: make(chan struct{})}
	s := newTestSession(t, fetcher, Dependencies{})
	s.SetQuery("launch")

	done := make(chan error, 1)
	go func() {
		_, err := s.Analyze(context.Background())
		done <- err
	}()
	<-fetcher.started

	s.Close()
	select {
	case err := <-done:
		if !errors.Is(err, analysis.ErrSuperseded) {
			t.Errorf("err = %v, want ErrSuperseded", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not abort the fetch")
	}
}
