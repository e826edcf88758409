package analytics

import (
	"fmt"

	"sentilytics/internal/domain/analysis"
)

// Insight titles
const (
	TitleNoData   = "No Data Found"
	TitlePositive = "Positive Trend Detected"
	TitleNegative = "Negative Sentiment Alert"
	TitleFavor    = "Generally Favorable"
	TitleMixed    = "Mixed Reactions"
)

const (
	positiveThreshold = 55
	negativeThreshold = 50
)

// GenerateInsight maps the analysis figures to a title and description. Rules
// are checked in order and every threshold is strict.
func GenerateInsight(totalResults, posPct, negPct int, dominantPlatform, query string) analysis.Insight {
	switch {
	case totalResults == 0:
		return analysis.Insight{
			Title:       TitleNoData,
			Description: fmt.Sprintf("No posts matched %q. Try a broader keyword or widen the date range.", query),
		}
	case posPct > positiveThreshold:
		return analysis.Insight{
			Title:       TitlePositive,
			Description: fmt.Sprintf("%d%% of the conversation about %q is positive, led by %s.", posPct, query, dominantPlatform),
		}
	case negPct > negativeThreshold:
		return analysis.Insight{
			Title:       TitleNegative,
			Description: fmt.Sprintf("%d%% of posts about %q are negative. Check the %s threads for recurring complaints.", negPct, query, dominantPlatform),
		}
	case posPct > negPct:
		return analysis.Insight{
			Title:       TitleFavor,
			Description: fmt.Sprintf("Positive mentions (%d%%) outweigh negative ones (%d%%) for %q on %s.", posPct, negPct, query, dominantPlatform),
		}
	default:
		return analysis.Insight{
			Title:       TitleMixed,
			Description: fmt.Sprintf("Opinion on %q is split: %d%% positive and %d%% negative, most active on %s.", query, posPct, negPct, dominantPlatform),
		}
	}
}
