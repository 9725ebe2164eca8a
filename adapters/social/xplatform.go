package social

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"trendtruth/domain/core"
	"trendtruth/domain/trend"
)

const xSearchURL = "https://api.twitter.com/2/tweets/search/recent"

// XSource mines recent viral posts from X. It needs a bearer token; without
// one it reports itself disabled and contributes nothing.
type XSource struct {
	searchURL   string
	bearerToken string
	userAgent   string
	httpClient  *http.Client
}

// NewXSource creates an X trend source. An empty token yields a source that
// always reports core.ErrSourceDisabled.
func NewXSource(bearerToken, userAgent string, timeout time.Duration) *XSource {
	return &XSource{
		searchURL:   xSearchURL,
		bearerToken: bearerToken,
		userAgent:   userAgent,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

func (s *XSource) Name() string { return "x" }

func (s *XSource) Fetch(ctx context.Context, category string, limit int) ([]trend.Item, error) {
	if s.bearerToken == "" {
		return nil, fmt.Errorf("%w: no token", core.ErrSourceDisabled)
	}

	maxResults := limit * 2
	if maxResults < 10 {
		maxResults = 10
	}
	if maxResults > 100 {
		maxResults = 100
	}

	query := url.Values{}
	query.Set("query", searchQueryFor(category))
	query.Set("max_results", strconv.Itoa(maxResults))
	query.Set("tweet.fields", "created_at,public_metrics,author_id")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.searchURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.bearerToken)
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: x: %v", core.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: x returned status %d", core.ErrSourceUnavailable, resp.StatusCode)
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: x: %v", core.ErrSourceUnavailable, err)
	}

	items := s.parseTweets(payload, category, limit)
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: x returned no posts", core.ErrSourceUnavailable)
	}
	return trend.DedupeAndRank(items, limit), nil
}

// searchQueryFor builds the recent-search query; category terms narrow the
// firehose, "all"/default stay with the generic viral-news query.
func searchQueryFor(category string) string {
	base := "(news OR breaking OR viral) lang:en -is:retweet"
	switch category {
	case trend.CategoryAll, trend.CategoryDefault, "":
		return base
	default:
		return fmt.Sprintf("(%s) %s", category, base)
	}
}

func (s *XSource) parseTweets(payload []byte, category string, limit int) []trend.Item {
	cat := category
	if cat == trend.CategoryAll || cat == "" {
		cat = trend.CategoryDefault
	}

	var items []trend.Item
	gjson.GetBytes(payload, "data").ForEach(func(_, tweet gjson.Result) bool {
		if len(items) >= limit*2 {
			return false
		}
		metrics := tweet.Get("public_metrics")
		likes := int(metrics.Get("like_count").Int())
		reposts := int(metrics.Get("retweet_count").Int())
		replies := int(metrics.Get("reply_count").Int())
		quotes := int(metrics.Get("quote_count").Int())

		created := time.Now().Unix()
		if ts, err := time.Parse(time.RFC3339, tweet.Get("created_at").String()); err == nil {
			created = ts.Unix()
		}

		tweetID := tweet.Get("id").String()
		items = append(items, trend.Item{
			ID:         core.NewTrendID("x", tweetID),
			Platform:   "X",
			Title:      collapseWhitespace(tweet.Get("text").String()),
			URL:        "https://x.com/i/web/status/" + tweetID,
			Author:     stringOr(tweet.Get("author_id").String(), "unknown"),
			Category:   cat,
			CreatedUTC: created,
			Metrics: trend.Metrics{
				Score:      likes,
				Comments:   replies,
				Reposts:    reposts,
				Engagement: likes + (reposts+replies+quotes)*2,
			},
		})
		return true
	})
	return items
}
