package analysis

import (
	"fmt"
	"strings"
	"time"
)

// PlatformAll disables platform filtering
const PlatformAll = "all"

// DateRange names a relative time window measured back from now
type DateRange string

const (
	DateRange24h DateRange = "24h"
	DateRange7d  DateRange = "7d"
	DateRange30d DateRange = "30d"
	DateRangeAll DateRange = "all"
)

var dateRangeWindows = map[DateRange]time.Duration{
	DateRange24h: 86400000 * time.Millisecond,
	DateRange7d:  604800000 * time.Millisecond,
	DateRange30d: 2592000000 * time.Millisecond,
}

// Window returns the width of the range. The second result is false for
// unbounded ranges, including values outside the known table.
func (d DateRange) Window() (time.Duration, bool) {
	w, ok := dateRangeWindows[d]
	return w, ok
}

// ParseDateRange validates a date range name
func ParseDateRange(s string) (DateRange, error) {
	d := DateRange(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DateRange24h, DateRange7d, DateRange30d, DateRangeAll:
		return d, nil
	}
	return "", fmt.Errorf("unsupported date range %q", s)
}

// FilterConfig selects which posts of a result are analyzed
type FilterConfig struct {
	Platform  string    `json:"platform"`
	DateRange DateRange `json:"dateRange"`
}

// DefaultFilter matches the dashboard defaults: every platform, last 24 hours
func DefaultFilter() FilterConfig {
	return FilterConfig{Platform: PlatformAll, DateRange: DateRange24h}
}

// ResetFilter widens the filter to everything
func ResetFilter() FilterConfig {
	return FilterConfig{Platform: PlatformAll, DateRange: DateRangeAll}
}
