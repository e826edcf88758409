package mcp

import (
	"fmt"
	"strings"
	"time"

	"sentilytics/internal/domain/analysis"
)

// FormatView formats a view model as a readable summary.
func FormatView(view analysis.View) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Sentiment for %q (%s, %s)\n", view.Query, view.Filter.Platform, view.Filter.DateRange)
	fmt.Fprintf(&sb, "Posts analyzed: %d\n", view.TotalPosts)
	fmt.Fprintf(&sb, "Positive: %d%%  Negative: %d%%\n", view.PositivePct, view.NegativePct)
	fmt.Fprintf(&sb, "Dominant sentiment: %s\n", view.DominantSentiment)
	fmt.Fprintf(&sb, "Dominant platform: %s\n", view.DominantPlatform)
	fmt.Fprintf(&sb, "Top keyword: %s\n", view.TopKeyword)

	if len(view.Breakdown) > 0 {
		sb.WriteString("\nBreakdown:\n")
		for _, lc := range view.Breakdown {
			fmt.Fprintf(&sb, "  %-10s %d\n", lc.Label, lc.Count)
		}
	}

	fmt.Fprintf(&sb, "\n%s\n%s\n", view.Insight.Title, view.Insight.Description)
	return sb.String()
}

// FormatTrend formats the per-day trend as a table.
func FormatTrend(view analysis.View) string {
	if len(view.Trend) == 0 {
		return fmt.Sprintf("No trend data for %q.", view.Query)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Trend for %q\n\n", view.Query)
	fmt.Fprintf(&sb, "%-10s %8s %8s %8s %6s\n", "date", "positive", "negative", "neutral", "total")
	for _, b := range view.Trend {
		fmt.Fprintf(&sb, "%-10s %8d %8d %8d %6d\n", b.DateKey, b.Positive, b.Negative, b.Neutral, b.Total)
	}
	return sb.String()
}

// FormatRuns formats a list of runs.
func FormatRuns(runs []analysis.Run) string {
	if len(runs) == 0 {
		return "No analysis runs recorded yet."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Recent runs (%d)\n\n", len(runs))
	for _, r := range runs {
		fmt.Fprintf(&sb, "%s  %q  results=%d posts=%d\n", r.FetchedAt.Format(time.RFC3339), r.Query, r.TotalResults, r.PostCount)
	}
	return sb.String()
}
