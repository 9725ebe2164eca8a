// Package social contains the trend source adapters: one small HTTP client
// per platform, each returning ranked raw trends for the analyze pipeline.
// Every adapter degrades to an error the caller records as a health entry;
// none of them is allowed to fail an analyze request on its own.
package social

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"trendtruth/domain/core"
	"trendtruth/domain/trend"
)

const redditBaseURL = "https://www.reddit.com"

// subredditsByCategory maps a requested category onto the subreddits mined
// for it. The "all"/default mix mirrors the general-news set.
var subredditsByCategory = map[string][]string{
	trend.CategoryAll:     {"worldnews", "news", "technology", "science", "business", "politics"},
	trend.CategoryDefault: {"worldnews", "news", "technology", "science", "business", "politics"},
	"world":               {"worldnews", "news"},
	"politics":            {"politics"},
	"business":            {"business", "economics"},
	"tech":                {"technology", "programming"},
	"science":             {"science"},
	"sports":              {"sports", "soccer", "nba"},
	"entertainment":       {"entertainment", "movies"},
}

// categoryBySubreddit tags fetched items so the dashboard can section them
var categoryBySubreddit = map[string]string{
	"worldnews":     "world",
	"news":          "world",
	"technology":    "tech",
	"programming":   "tech",
	"science":       "science",
	"business":      "business",
	"economics":     "business",
	"politics":      "politics",
	"sports":        "sports",
	"soccer":        "sports",
	"nba":           "sports",
	"entertainment": "entertainment",
	"movies":        "entertainment",
}

// RedditSource mines hot posts from category-mapped subreddits
type RedditSource struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewRedditSource creates a reddit trend source
func NewRedditSource(userAgent string, timeout time.Duration) *RedditSource {
	return &RedditSource{
		baseURL:    redditBaseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *RedditSource) Name() string { return "reddit" }

// Fetch pulls hot posts across the category's subreddits, skipping stickied
// posts, and returns them deduped and ranked down to limit.
func (s *RedditSource) Fetch(ctx context.Context, category string, limit int) ([]trend.Item, error) {
	subs, ok := subredditsByCategory[category]
	if !ok {
		subs = subredditsByCategory[trend.CategoryDefault]
	}

	perSub := limit/len(subs) + 2
	if perSub < 4 {
		perSub = 4
	}

	var items []trend.Item
	var lastErr error
	for _, sub := range subs {
		payload, err := s.fetchListing(ctx, sub, perSub)
		if err != nil {
			lastErr = err
			continue
		}
		items = append(items, s.parseListing(sub, payload)...)
	}

	if len(items) == 0 {
		if lastErr != nil {
			return nil, fmt.Errorf("%w: reddit: %v", core.ErrSourceUnavailable, lastErr)
		}
		return nil, fmt.Errorf("%w: reddit returned no posts", core.ErrSourceUnavailable)
	}
	return trend.DedupeAndRank(items, limit), nil
}

func (s *RedditSource) fetchListing(ctx context.Context, subreddit string, limit int) ([]byte, error) {
	url := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", s.baseURL, subreddit, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("r/%s returned status %d", subreddit, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (s *RedditSource) parseListing(subreddit string, payload []byte) []trend.Item {
	category, ok := categoryBySubreddit[subreddit]
	if !ok {
		category = trend.CategoryDefault
	}

	var items []trend.Item
	gjson.GetBytes(payload, "data.children").ForEach(func(_, child gjson.Result) bool {
		data := child.Get("data")
		if data.Get("stickied").Bool() {
			return true
		}

		score := int(data.Get("score").Int())
		comments := int(data.Get("num_comments").Int())
		created := data.Get("created_utc").Int()
		if created == 0 {
			created = time.Now().Unix()
		}

		url := data.Get("url").String()
		if permalink := data.Get("permalink").String(); permalink != "" {
			url = redditBaseURL + permalink
		}

		items = append(items, trend.Item{
			ID:         core.NewTrendID("reddit", data.Get("id").String()),
			Platform:   "Reddit",
			Title:      data.Get("title").String(),
			URL:        url,
			Author:     stringOr(data.Get("author").String(), "unknown"),
			Category:   category,
			CreatedUTC: created,
			Metrics: trend.Metrics{
				Score:      score,
				Comments:   comments,
				Engagement: score + comments*2,
				Subreddit:  subreddit,
			},
		})
		return true
	})
	return items
}

func stringOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
