package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool names
const (
	ToolAnalyze = "sentiment_analyze"
	ToolTrend   = "sentiment_trend"
	ToolRuns    = "sentiment_runs"
)

// ToolDefinitions returns all tool definitions of the server.
func ToolDefinitions() []mcp.Tool {
	return []mcp.Tool{
		toolAnalyze(),
		toolTrend(),
		toolRuns(),
	}
}

func toolAnalyze() mcp.Tool {
	return mcp.NewTool(ToolAnalyze,
		mcp.WithDescription("Analyze social media sentiment for a keyword or hashtag. Returns the breakdown, dominant platform, top keyword and a short insight."),
		mcp.WithString("query",
			mcp.Description("Keyword or hashtag to analyze"),
			mcp.Required(),
		),
		mcp.WithString("platform",
			mcp.Description("Only include posts from this platform, e.g. twitter or reddit (default: all)"),
		),
		mcp.WithString("date_range",
			mcp.Description("Time window: 24h, 7d, 30d or all (default: all)"),
		),
	)
}

func toolTrend() mcp.Tool {
	return mcp.NewTool(ToolTrend,
		mcp.WithDescription("Get the per-day sentiment trend for a keyword or hashtag."),
		mcp.WithString("query",
			mcp.Description("Keyword or hashtag to analyze"),
			mcp.Required(),
		),
		mcp.WithString("platform",
			mcp.Description("Only include posts from this platform (default: all)"),
		),
		mcp.WithString("date_range",
			mcp.Description("Time window: 24h, 7d, 30d or all (default: all)"),
		),
	)
}

func toolRuns() mcp.Tool {
	return mcp.NewTool(ToolRuns,
		mcp.WithDescription("List recent analysis runs."),
		mcp.WithNumber("limit",
			mcp.Description("Number of runs to return (default: 10, max: 100)"),
		),
	)
}
