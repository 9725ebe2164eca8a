package newsrss

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

const rssFixture = `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Search results</title>
    <item>
      <title>City confirms flood response plan</title>
      <link>https://www.reuters.com/world/flood-plan</link>
      <pubDate>Fri, 28 Aug 2026 10:00:00 GMT</pubDate>
      <source url="https://www.reuters.com">Reuters</source>
    </item>
    <item>
      <title>Flood plan announced</title>
      <link>https://apnews.com/article/flood</link>
      <pubDate>Fri, 28 Aug 2026 09:00:00 +0000</pubDate>
      <source url="https://apnews.com">AP News</source>
    </item>
    <item>
      <title>FLOOD SHOCKER</title>
      <link>https://tabloid.example.com/flood</link>
      <pubDate>bad date</pubDate>
      <source url="https://tabloid.example.com">Tabloid</source>
    </item>
  </channel>
</rss>`

func newTestVerifier(t *testing.T, handler http.HandlerFunc) *Verifier {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	v := NewVerifier(12, 2*time.Second)
	v.searchURL = server.URL
	return v
}

func TestVerifier_ScoresCoverage(t *testing.T) {
	var gotQuery string
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		fmt.Fprint(w, rssFixture)
	})

	evidence, err := v.Verify(context.Background(), "city flood plan")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if gotQuery != "city flood plan" {
		t.Errorf("query = %q", gotQuery)
	}

	if evidence.TotalHits != 3 {
		t.Errorf("total hits = %d, want 3", evidence.TotalHits)
	}
	if evidence.CredibleHits != 2 {
		t.Errorf("credible hits = %d, want 2 (reuters + ap)", evidence.CredibleHits)
	}
	if evidence.SourceDiversity != 2 {
		t.Errorf("diversity = %d, want 2 (zero-weight sources excluded)", evidence.SourceDiversity)
	}
	if evidence.Confidence <= 0 || evidence.Confidence > 1 {
		t.Errorf("confidence out of range: %v", evidence.Confidence)
	}
	if len(evidence.Articles) != 3 {
		t.Fatalf("articles = %d", len(evidence.Articles))
	}
	if evidence.Articles[0].SourceWeight != 1.0 {
		t.Errorf("reuters weight = %v", evidence.Articles[0].SourceWeight)
	}
	if evidence.Articles[2].SourceWeight != 0 {
		t.Errorf("unknown source weight = %v", evidence.Articles[2].SourceWeight)
	}
	if evidence.Articles[0].PublishedAt != "2026-08-28T10:00:00Z" {
		t.Errorf("published at = %q", evidence.Articles[0].PublishedAt)
	}
}

func TestVerifier_FeedFailureDegradesToEmptyEvidence(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	evidence, err := v.Verify(context.Background(), "anything")
	if err != nil {
		t.Fatalf("feed failure must not error: %v", err)
	}
	if evidence.TotalHits != 0 || evidence.Confidence != 0 {
		t.Errorf("expected empty evidence, got %+v", evidence)
	}
	if evidence.Articles == nil {
		t.Error("articles must be an empty slice, not nil")
	}
}

func TestVerifier_MalformedFeedDegradesToEmptyEvidence(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not xml at all`)
	})

	evidence, err := v.Verify(context.Background(), "anything")
	if err != nil {
		t.Fatalf("parse failure must not error: %v", err)
	}
	if evidence.TotalHits != 0 {
		t.Errorf("expected empty evidence, got %+v", evidence)
	}
}

func TestVerifier_EmptyClaimIsCallerError(t *testing.T) {
	v := NewVerifier(12, time.Second)

	_, err := v.Verify(context.Background(), "   ")
	if !errors.Is(err, core.ErrEmptyClaim) {
		t.Errorf("expected ErrEmptyClaim, got %v", err)
	}
}
