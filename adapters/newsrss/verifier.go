// Package newsrss verifies claims against Google News RSS search results.
// It is intentionally forgiving: any transport or parse failure degrades to
// empty evidence so a broken feed can never fail an analyze request.
package newsrss

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"trendtruth/domain/analysis"
	"trendtruth/domain/core"
)

const googleNewsSearchURL = "https://news.google.com/rss/search"

// maxStoredArticles caps how many articles travel with the evidence
const maxStoredArticles = 8

// credibleHitWeight is the trust weight at which an article counts as a hit
const credibleHitWeight = 0.75

// sourceWeights assigns trust weights by domain suffix. Anything unlisted
// weighs zero.
var sourceWeights = []struct {
	domain string
	weight float64
}{
	{"reuters.com", 1.0},
	{"apnews.com", 1.0},
	{"bbc.com", 0.95},
	{"npr.org", 0.95},
	{"pbs.org", 0.92},
	{"nytimes.com", 0.9},
	{"wsj.com", 0.9},
	{"washingtonpost.com", 0.9},
	{"bloomberg.com", 0.88},
	{"financialtimes.com", 0.88},
	{"economist.com", 0.88},
	{"theguardian.com", 0.87},
	{"abcnews.go.com", 0.82},
	{"usatoday.com", 0.8},
	{"cbsnews.com", 0.8},
	{"nbcnews.com", 0.8},
	{"aljazeera.com", 0.79},
	{"cnn.com", 0.78},
	{"forbes.com", 0.72},
	{"techcrunch.com", 0.7},
	{"theverge.com", 0.7},
}

// Verifier checks claims against news search RSS
type Verifier struct {
	searchURL  string
	maxResults int
	httpClient *http.Client
}

// NewVerifier creates an RSS-backed claim verifier
func NewVerifier(maxResults int, timeout time.Duration) *Verifier {
	if maxResults <= 0 {
		maxResults = 12
	}
	return &Verifier{
		searchURL:  googleNewsSearchURL,
		maxResults: maxResults,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type rssFeed struct {
	Channel *rssChannel `xml:"channel"`
}

type rssChannel struct {
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title   string    `xml:"title"`
	Link    string    `xml:"link"`
	PubDate string    `xml:"pubDate"`
	Source  rssSource `xml:"source"`
}

type rssSource struct {
	URL  string `xml:"url,attr"`
	Name string `xml:",chardata"`
}

// Verify searches news coverage for the claim and scores what it finds.
// Fetch or parse failures return empty evidence, not an error; only an
// empty claim is a caller mistake.
func (v *Verifier) Verify(ctx context.Context, claim string) (analysis.Evidence, error) {
	claim = strings.TrimSpace(claim)
	if claim == "" {
		return analysis.Evidence{}, core.ErrEmptyClaim
	}

	empty := analysis.Evidence{Query: claim, Articles: []analysis.EvidenceArticle{}}

	body, err := v.fetchFeed(ctx, claim)
	if err != nil {
		return empty, nil
	}

	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil || feed.Channel == nil {
		return empty, nil
	}

	articles := make([]analysis.EvidenceArticle, 0, v.maxResults)
	for i, item := range feed.Channel.Items {
		if i >= v.maxResults {
			break
		}
		domain := domainFromURL(item.Source.URL)
		if domain == "" {
			domain = domainFromURL(item.Link)
		}
		source := strings.TrimSpace(item.Source.Name)
		if source == "" {
			source = domain
		}
		if source == "" {
			source = "Unknown"
		}
		articles = append(articles, analysis.EvidenceArticle{
			Title:        strings.TrimSpace(item.Title),
			Source:       source,
			SourceURL:    strings.TrimSpace(item.Source.URL),
			ArticleURL:   strings.TrimSpace(item.Link),
			PublishedAt:  parsePubDate(item.PubDate),
			SourceWeight: weightForDomain(domain),
		})
	}

	return scoreEvidence(claim, articles), nil
}

func (v *Verifier) fetchFeed(ctx context.Context, claim string) ([]byte, error) {
	query := url.Values{}
	query.Set("q", claim)
	query.Set("hl", "en-US")
	query.Set("gl", "US")
	query.Set("ceid", "US:en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.searchURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// scoreEvidence mixes strong-source count, weighted trust and source
// diversity into a single confidence in [0,1].
func scoreEvidence(claim string, articles []analysis.EvidenceArticle) analysis.Evidence {
	credibleHits := 0
	weightedSum := 0.0
	domains := map[string]bool{}
	for _, a := range articles {
		if a.SourceWeight >= credibleHitWeight {
			credibleHits++
		}
		weightedSum += a.SourceWeight
		if a.SourceWeight > 0 {
			domains[a.Source] = true
		}
	}
	totalHits := len(articles)
	diversity := len(domains)

	confidence := 0.0
	if totalHits > 0 {
		confidence = math.Min(1.0,
			(float64(credibleHits)/float64(totalHits))*0.55+
				(weightedSum/float64(totalHits))*0.35+
				(math.Min(float64(diversity), 6)/6)*0.10,
		)
	}

	if len(articles) > maxStoredArticles {
		articles = articles[:maxStoredArticles]
	}
	return analysis.Evidence{
		Query:           claim,
		CredibleHits:    credibleHits,
		TotalHits:       totalHits,
		SourceDiversity: diversity,
		Confidence:      math.Round(confidence*10000) / 10000,
		Articles:        articles,
	}
}

func domainFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
}

func weightForDomain(domain string) float64 {
	for _, w := range sourceWeights {
		if strings.HasSuffix(domain, w.domain) {
			return w.weight
		}
	}
	return 0.0
}

// parsePubDate normalizes RSS pubDate strings to RFC3339; unparseable dates
// become the current time, matching how little the downstream scoring cares.
func parsePubDate(pubDate string) string {
	pubDate = strings.TrimSpace(pubDate)
	if pubDate != "" {
		for _, layout := range []string{time.RFC1123, time.RFC1123Z} {
			if ts, err := time.Parse(layout, pubDate); err == nil {
				return ts.UTC().Format(time.RFC3339)
			}
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}
