// internal/service/analytics/filter.go

package analytics

import (
	"strings"
	"time"

	"sentilytics/internal/domain/analysis"
)

// FilterPosts selects the posts matching cfg, keeping their original order.
// Platform matching is an exact case-insensitive comparison against the post
// source. Posts without a usable creation time are always inside the window.
func FilterPosts(posts []analysis.Post, cfg analysis.FilterConfig, now time.Time) []analysis.Post {
	platform := strings.ToLower(cfg.Platform)
	matchAll := platform == "" || platform == analysis.PlatformAll
	window, bounded := cfg.DateRange.Window()

	filtered := make([]analysis.Post, 0, len(posts))
	for _, p := range posts {
		if !matchAll && strings.ToLower(p.Source) != platform {
			continue
		}
		if bounded {
			if created, ok := p.CreatedAt.Time(); ok && now.Sub(created) > window {
				continue
			}
		}
		filtered = append(filtered, p)
	}
	return filtered
}
