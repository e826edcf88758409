// internal/service/analytics/derive.go

package analytics

import (
	"time"

	"sentilytics/internal/domain/analysis"
)

// Derive builds the view model for a raw result under the given filter and
// query. It has no side effects; callers re-run it on every input change.
// A nil raw result yields an empty view.
func Derive(raw *analysis.Result, cfg analysis.FilterConfig, query string, now time.Time) analysis.View {
	view := analysis.View{
		Query:             query,
		Filter:            cfg,
		Posts:             []analysis.Post{},
		Breakdown:         analysis.Breakdown{},
		Trend:             []analysis.TrendBucket{},
		DominantPlatform:  notAvailable,
		TopKeyword:        notAvailable,
		DominantSentiment: notAvailable,
		GeneratedAt:       now,
	}
	if raw == nil {
		return view
	}

	filtered := FilterPosts(raw.Posts, cfg, now)
	breakdown := Breakdown(filtered, raw.SentimentBreakdown)
	if breakdown == nil {
		breakdown = analysis.Breakdown{}
	}

	view.HasResult = true
	view.Posts = filtered
	view.Breakdown = breakdown
	view.Trend = Trend(filtered)
	view.DominantPlatform = DominantPlatform(filtered)
	view.TopKeyword = TopKeyword(filtered, query)
	view.DominantSentiment = DominantSentiment(breakdown)
	view.PlatformCount = PlatformCount(filtered)

	view.TotalPosts = len(filtered)
	if view.TotalPosts == 0 {
		view.TotalPosts = raw.TotalResults
	}

	view.PositivePct, view.NegativePct = Percentages(breakdown)
	view.Insight = GenerateInsight(view.TotalPosts, view.PositivePct, view.NegativePct, view.DominantPlatform, query)

	return view
}
