package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"sentilytics/internal/domain/analysis"
	"sentilytics/internal/service/analytics"
	"sentilytics/pkg/logger"
)

// runSource tags runs recorded by MCP tool calls
const runSource = "mcp"

// Handlers contains the MCP tool handlers.
type Handlers struct {
	fetcher analysis.Fetcher
	runs    analysis.RunRecorder
	log     logger.Logger
	now     func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(fetcher analysis.Fetcher, runs analysis.RunRecorder, log logger.Logger) *Handlers {
	if log == nil {
		log = logger.Nop()
	}
	return &Handlers{
		fetcher: fetcher,
		runs:    runs,
		log:     log.WithComponent("MCP"),
		now:     time.Now,
	}
}

// HandleAnalyze handles the sentiment_analyze tool.
func (h *Handlers) HandleAnalyze(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view, errResult := h.derive(ctx, req)
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(FormatView(view)), nil
}

// HandleTrend handles the sentiment_trend tool.
func (h *Handlers) HandleTrend(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view, errResult := h.derive(ctx, req)
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(FormatTrend(view)), nil
}

// HandleRuns handles the sentiment_runs tool.
func (h *Handlers) HandleRuns(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.runs == nil {
		return mcp.NewToolResultError("Run history is not enabled"), nil
	}

	limit := req.GetInt("limit", 10)
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	runs, err := h.runs.ListRuns(ctx, limit)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("Failed to list runs", err), nil
	}
	return mcp.NewToolResultText(FormatRuns(runs)), nil
}

func (h *Handlers) derive(ctx context.Context, req mcp.CallToolRequest) (analysis.View, *mcp.CallToolResult) {
	query, err := req.RequireString("query")
	if err != nil || strings.TrimSpace(query) == "" {
		return analysis.View{}, mcp.NewToolResultError(analysis.ErrEmptyQuery.Error())
	}

	cfg := analysis.FilterConfig{
		Platform:  strings.ToLower(req.GetString("platform", analysis.PlatformAll)),
		DateRange: analysis.DateRangeAll,
	}
	if cfg.Platform == "" {
		cfg.Platform = analysis.PlatformAll
	}
	if dr := req.GetString("date_range", ""); dr != "" {
		parsed, err := analysis.ParseDateRange(dr)
		if err != nil {
			return analysis.View{}, mcp.NewToolResultError(err.Error())
		}
		cfg.DateRange = parsed
	}

	result, err := h.fetcher.Fetch(ctx, strings.TrimSpace(query))
	if err != nil {
		h.log.Warn("Fetch failed", "query", query, "error", err)
		return analysis.View{}, mcp.NewToolResultErrorFromErr("Failed to fetch sentiment data", err)
	}
	h.recordRun(ctx, strings.TrimSpace(query), result)

	return analytics.Derive(&result, cfg, query, h.now()), nil
}

// recordRun keeps the fetch in the run history. Failures are logged only.
func (h *Handlers) recordRun(ctx context.Context, query string, result analysis.Result) {
	if h.runs == nil {
		return
	}
	run := analysis.Run{
		ID:           uuid.New().String(),
		SessionID:    runSource,
		ClientKey:    runSource,
		Query:        query,
		TotalResults: result.TotalResults,
		PostCount:    len(result.Posts),
		Breakdown:    result.SentimentBreakdown,
		FetchedAt:    h.now().UTC(),
	}
	if err := h.runs.RecordRun(context.WithoutCancel(ctx), run); err != nil {
		h.log.Error("Failed to record analysis run", "error", err)
	}
}
