// internal/service/analytics/aggregate.go

package analytics

import (
	"math"
	"sort"
	"strings"

	"sentilytics/internal/domain/analysis"
)

const (
	unknownLabel   = "unknown"
	unknownDateKey = "Unknown"
	dateKeyLayout  = "2006-01-02"
)

// Breakdown counts the filtered posts per lowercased sentiment label. An empty
// filtered set falls back to the breakdown reported by the server.
func Breakdown(filtered []analysis.Post, server analysis.Breakdown) analysis.Breakdown {
	if len(filtered) == 0 {
		return server.Clone()
	}

	var b analysis.Breakdown
	for _, p := range filtered {
		label := strings.ToLower(p.Sentiment)
		if label == "" {
			label = unknownLabel
		}
		b = b.Add(label, 1)
	}
	return b
}

// Trend groups the filtered posts by UTC calendar day, sorted by date key
func Trend(filtered []analysis.Post) []analysis.TrendBucket {
	if len(filtered) == 0 {
		return []analysis.TrendBucket{}
	}

	index := make(map[string]int)
	buckets := make([]analysis.TrendBucket, 0)

	for _, p := range filtered {
		key := dateKey(p.CreatedAt)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, analysis.TrendBucket{DateKey: key})
		}

		switch classify(p.Sentiment) {
		case polarityPositive:
			buckets[i].Positive++
		case polarityNegative:
			buckets[i].Negative++
		default:
			buckets[i].Neutral++
		}
		buckets[i].Total++
	}

	sort.SliceStable(buckets, func(a, b int) bool {
		return buckets[a].DateKey < buckets[b].DateKey
	})
	return buckets
}

func dateKey(ts analysis.Timestamp) string {
	t, ok := ts.Time()
	if !ok {
		return unknownDateKey
	}
	return t.UTC().Format(dateKeyLayout)
}

type polarity int

const (
	polarityNeutral polarity = iota
	polarityPositive
	polarityNegative
)

// classify is deliberately loose: anything without "pos" or "neg" is neutral
func classify(label string) polarity {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "pos"):
		return polarityPositive
	case strings.Contains(l, "neg"):
		return polarityNegative
	default:
		return polarityNeutral
	}
}

// Percentages returns the rounded share of positive and negative labels in b
func Percentages(b analysis.Breakdown) (posPct, negPct int) {
	total := b.Total()
	if total <= 0 {
		return 0, 0
	}

	var pos, neg int
	for _, lc := range b {
		switch classify(lc.Label) {
		case polarityPositive:
			pos += lc.Count
		case polarityNegative:
			neg += lc.Count
		}
	}
	return percent(pos, total), percent(neg, total)
}

func percent(n, total int) int {
	return int(math.Round(float64(n) * 100 / float64(total)))
}

// DominantSentiment returns the upper-cased label with the highest count
func DominantSentiment(b analysis.Breakdown) string {
	best := -1
	label := notAvailable
	for _, lc := range b {
		if lc.Count > best {
			best = lc.Count
			label = strings.ToUpper(lc.Label)
		}
	}
	return label
}
