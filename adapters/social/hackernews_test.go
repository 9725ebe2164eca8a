package social

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trendtruth/domain/core"
)

func newTestHNSource(t *testing.T) *HackerNewsSource {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/topstories.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[1, 2, 3]`)
	})
	mux.HandleFunc("/item/1.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"type":"story","title":"New compiler released","score":300,"descendants":150,"time":1756400000,"by":"hacker","url":"https://example.com/compiler"}`)
	})
	mux.HandleFunc("/item/2.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"type":"job","title":"Hiring"}`)
	})
	mux.HandleFunc("/item/3.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"type":"story","title":"Ask HN: anything","score":10,"descendants":5,"time":1756400000,"by":"asker"}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	source := NewHackerNewsSource(2 * time.Second)
	source.baseURL = server.URL
	return source
}

func TestHackerNewsSource_FetchesStoriesOnly(t *testing.T) {
	source := newTestHNSource(t)

	items, err := source.Fetch(context.Background(), "tech", 10)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 stories (job filtered out), got %d", len(items))
	}
	top := items[0]
	if top.Title != "New compiler released" {
		t.Errorf("expected highest engagement first, got %q", top.Title)
	}
	if top.Metrics.Engagement != 300+150*3 {
		t.Errorf("engagement = %d", top.Metrics.Engagement)
	}
	if top.Category != "tech" {
		t.Errorf("category = %q", top.Category)
	}

	// Item without a URL falls back to the HN comments page
	if items[1].URL == "" {
		t.Error("expected fallback URL for story without link")
	}
}

func TestHackerNewsSource_DisabledOutsideTech(t *testing.T) {
	source := newTestHNSource(t)

	_, err := source.Fetch(context.Background(), "sports", 10)
	if !errors.Is(err, core.ErrSourceDisabled) {
		t.Errorf("expected ErrSourceDisabled for sports, got %v", err)
	}
}
