package trend

import (
	"trendtruth/domain/core"
)

// Metrics carries the engagement counters a platform reports for a trend.
// Engagement is the platform-weighted composite used for ranking.
type Metrics struct {
	Score      int    `json:"score"`
	Comments   int    `json:"comments"`
	Engagement int    `json:"engagement"`
	Reposts    int    `json:"reposts,omitempty"`
	Subreddit  string `json:"subreddit,omitempty"`
}

// Item is one topic surfaced by a social platform, prior to analysis
type Item struct {
	ID         core.TrendID `json:"id"`
	Platform   string       `json:"platform"`
	Title      string       `json:"title"`
	URL        string       `json:"url"`
	Author     string       `json:"author"`
	Category   string       `json:"category"`
	CreatedUTC int64        `json:"created_utc"`
	Metrics    Metrics      `json:"metrics"`
}
