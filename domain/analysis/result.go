package analysis

import (
	"trendtruth/domain/trend"
)

// Verdict is the categorical judgment about a trend's veracity
type Verdict string

const (
	VerdictLikelyReal        Verdict = "Likely Real"
	VerdictNeedsVerification Verdict = "Needs Verification"
	VerdictLikelyMisleading  Verdict = "Likely Misleading"
)

// EvidenceArticle is one corroborating article found for a claim
type EvidenceArticle struct {
	Title        string  `json:"title"`
	Source       string  `json:"source"`
	SourceURL    string  `json:"source_url"`
	ArticleURL   string  `json:"article_url"`
	PublishedAt  string  `json:"published_at"`
	SourceWeight float64 `json:"source_weight"`
}

// Evidence aggregates the corroboration found for a single claim
type Evidence struct {
	Query           string            `json:"query"`
	CredibleHits    int               `json:"credible_hits"`
	TotalHits       int               `json:"total_hits"`
	SourceDiversity int               `json:"source_diversity"`
	Confidence      float64           `json:"confidence"`
	Articles        []EvidenceArticle `json:"articles"`
}

// Result is one analyzed trend. Scores are on a 0-100 scale.
type Result struct {
	Trend            trend.Item `json:"trend"`
	FakeProbability  float64    `json:"fake_probability"`
	SpreadIndex      float64    `json:"spread_index"`
	CredibilityScore float64    `json:"credibility_score"`
	Verdict          Verdict    `json:"verdict"`
	Reasons          []string   `json:"reasons"`
	Evidence         Evidence   `json:"evidence"`
}

// IsMisleading reports whether the verdict flags the trend as misleading
func (r Result) IsMisleading() bool {
	return r.Verdict == VerdictLikelyMisleading
}
