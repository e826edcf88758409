package analytics

import (
	"strings"

	"sentilytics/internal/domain/analysis"
)

const (
	PlatformTwitter = "Twitter (X)"
	PlatformReddit  = "Reddit"

	notAvailable  = "N/A"
	unknownSource = "Unknown"
)

// DominantPlatform decides between Twitter and Reddit by substring matching
// the post sources. Twitter wins ties.
func DominantPlatform(filtered []analysis.Post) string {
	if len(filtered) == 0 {
		return notAvailable
	}

	var twitter, reddit int
	for _, p := range filtered {
		source := strings.ToLower(p.Source)
		if strings.Contains(source, "twitter") {
			twitter++
		}
		if strings.Contains(source, "reddit") {
			reddit++
		}
	}

	if twitter >= reddit {
		return PlatformTwitter
	}
	return PlatformReddit
}

// PlatformCount returns the number of distinct sources in filtered
func PlatformCount(filtered []analysis.Post) int {
	seen := make(map[string]struct{})
	for _, p := range filtered {
		source := p.Source
		if source == "" {
			source = unknownSource
		}
		seen[source] = struct{}{}
	}
	return len(seen)
}
