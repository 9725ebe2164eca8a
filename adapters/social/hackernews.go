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

const hackerNewsBaseURL = "https://hacker-news.firebaseio.com/v0"

// HackerNewsSource mines the top-stories firehose. HN has no category
// concept; everything it returns is tagged "tech", so it only contributes
// when the request is for "all", "trending" or "tech".
type HackerNewsSource struct {
	baseURL    string
	httpClient *http.Client
}

// NewHackerNewsSource creates a Hacker News trend source
func NewHackerNewsSource(timeout time.Duration) *HackerNewsSource {
	return &HackerNewsSource{
		baseURL:    hackerNewsBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *HackerNewsSource) Name() string { return "hacker_news" }

func (s *HackerNewsSource) Fetch(ctx context.Context, category string, limit int) ([]trend.Item, error) {
	switch category {
	case trend.CategoryAll, trend.CategoryDefault, "tech":
	default:
		return nil, fmt.Errorf("%w: hacker_news has no %s section", core.ErrSourceDisabled, category)
	}

	idsPayload, err := s.get(ctx, s.baseURL+"/topstories.json")
	if err != nil {
		return nil, fmt.Errorf("%w: hacker_news: %v", core.ErrSourceUnavailable, err)
	}

	ids := gjson.ParseBytes(idsPayload).Array()
	var items []trend.Item
	for i, id := range ids {
		if i >= limit*2 || len(items) >= limit {
			break
		}
		itemPayload, err := s.get(ctx, fmt.Sprintf("%s/item/%d.json", s.baseURL, id.Int()))
		if err != nil {
			continue
		}
		story := gjson.ParseBytes(itemPayload)
		if story.Get("type").String() != "story" {
			continue
		}
		title := story.Get("title").String()
		if title == "" {
			continue
		}

		score := int(story.Get("score").Int())
		comments := int(story.Get("descendants").Int())
		created := story.Get("time").Int()
		if created == 0 {
			created = time.Now().Unix()
		}
		url := story.Get("url").String()
		if url == "" {
			url = fmt.Sprintf("https://news.ycombinator.com/item?id=%d", id.Int())
		}

		items = append(items, trend.Item{
			ID:         core.NewTrendID("hn", id.String()),
			Platform:   "Hacker News",
			Title:      title,
			URL:        url,
			Author:     stringOr(story.Get("by").String(), "unknown"),
			Category:   "tech",
			CreatedUTC: created,
			Metrics: trend.Metrics{
				Score:      score,
				Comments:   comments,
				Engagement: score + comments*3,
			},
		})
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: hacker_news returned no stories", core.ErrSourceUnavailable)
	}
	return trend.DedupeAndRank(items, limit), nil
}

func (s *HackerNewsSource) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
