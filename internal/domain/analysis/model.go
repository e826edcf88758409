// internal/domain/analysis/model.go

package analysis

import (
	"time"
)

// Post is one social media item carrying a precomputed sentiment label
type Post struct {
	Source         string    `json:"source"`
	Text           string    `json:"text,omitempty"`
	Sentiment      string    `json:"sentiment,omitempty"`
	SentimentScore *float64  `json:"sentiment_score,omitempty"`
	CreatedAt      Timestamp `json:"created_at"`
}

// Result is the payload returned by the sentiment endpoint. Posts keep the
// order in which the server delivered them.
type Result struct {
	Keyword            string    `json:"keyword,omitempty"`
	TotalResults       int       `json:"total_results"`
	SentimentBreakdown Breakdown `json:"sentiment_breakdown"`
	Posts              []Post    `json:"data"`
}

// TrendBucket aggregates the sentiment of one calendar day
type TrendBucket struct {
	DateKey  string `json:"date"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Neutral  int    `json:"neutral"`
	Total    int    `json:"total"`
}

// Insight is a short rule-derived summary of an analysis
type Insight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// View is the read-only model handed to presentation collaborators. It is
// rebuilt from scratch whenever the raw result, the filter or the query
// changes. Sessions number their views with a strictly increasing Version.
type View struct {
	SessionID string       `json:"sessionId,omitempty"`
	Version   uint64       `json:"version,omitempty"`
	Query     string       `json:"query"`
	Filter    FilterConfig `json:"filter"`

	Posts            []Post        `json:"posts"`
	Breakdown        Breakdown     `json:"breakdown"`
	Trend            []TrendBucket `json:"trend"`
	DominantPlatform string        `json:"dominantPlatform"`
	TopKeyword       string        `json:"topKeyword"`
	Insight          Insight       `json:"insight"`

	TotalPosts        int    `json:"totalPosts"`
	PositivePct       int    `json:"positivePct"`
	NegativePct       int    `json:"negativePct"`
	DominantSentiment string `json:"dominantSentiment"`
	PlatformCount     int    `json:"platformCount"`

	HasResult   bool      `json:"hasResult"`
	Loading     bool      `json:"loading"`
	AutoRefresh bool      `json:"autoRefresh"`
	Error       string    `json:"error,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Run records one successful fetch
type Run struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"sessionId"`
	ClientKey    string    `json:"clientKey"`
	Query        string    `json:"query"`
	TotalResults int       `json:"totalResults"`
	PostCount    int       `json:"postCount"`
	Breakdown    Breakdown `json:"breakdown"`
	FetchedAt    time.Time `json:"fetchedAt"`
}
