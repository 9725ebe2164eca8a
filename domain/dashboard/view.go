package dashboard

import (
	"fmt"

	"trendtruth/domain/analysis"
	"trendtruth/domain/core"
	"trendtruth/domain/trend"
)

// Verdict display classes for the card badge styling
const (
	VerdictClassReal = "real"
	VerdictClassFake = "fake"
	VerdictClassWarn = "warn"
)

// maxEvidenceLinks caps how many corroborating articles a card links to
const maxEvidenceLinks = 4

// EvidenceLink is one clickable corroborating article on a card
type EvidenceLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Card is the display-ready projection of one analysis result
type Card struct {
	Platform       string  `json:"platform"`
	CategoryLabel  string  `json:"category_label"`
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Verdict        string  `json:"verdict"`
	VerdictClass   string  `json:"verdict_class"`
	FakePct        float64 `json:"fake_pct"`
	SpreadPct      float64 `json:"spread_pct"`
	CredibilityPct float64 `json:"credibility_pct"`
	FakeLabel      string  `json:"fake_label"`
	SpreadLabel    string  `json:"spread_label"`
	CredLabel      string  `json:"cred_label"`
	EvidenceLine   string  `json:"evidence_line"`
	Reasons        []string
	Links          []EvidenceLink
}

// GroupView is one rendered category section
type GroupView struct {
	CategoryID string `json:"category_id"`
	Label      string `json:"label"`
	Cards      []Card `json:"cards"`
}

// ViewModel is everything the rendering boundary needs for one paint.
// It is rebuilt wholesale from the current batch on every refresh.
type ViewModel struct {
	Summary          Summary      `json:"summary"`
	Grouped          bool         `json:"grouped"`
	Groups           []GroupView  `json:"groups"`
	Cards            []Card       `json:"cards"`
	HealthPills      []HealthPill `json:"health_pills"`
	SelectedCategory string       `json:"selected_category"`
	UpdatedAt        string       `json:"updated_at"`
	StatusLine       string       `json:"status_line"`
	StatusIsError    bool         `json:"status_is_error"`
}

// BuildViewModel projects a batch into its display form for the current
// category selection. In "all" mode results are sectioned client-side; for
// any single category the backend already filtered, so the cards stay flat
// and ungrouped. That asymmetry is load-bearing: collapsing it would change
// which side filters.
func BuildViewModel(batch *analysis.Batch, selectedCategory string) ViewModel {
	vm := ViewModel{
		Summary:          Summarize(batch.Results),
		HealthPills:      SummarizeHealth(batch.SourceHealth),
		SelectedCategory: selectedCategory,
	}

	if ts, err := core.ParseWireTimestamp(batch.GeneratedAt); err == nil {
		vm.UpdatedAt = ts.Display()
	} else {
		vm.UpdatedAt = batch.GeneratedAt
	}

	if selectedCategory == trend.CategoryAll {
		vm.Grouped = true
		for _, g := range Partition(batch.Results, trend.KnownCategories()) {
			vm.Groups = append(vm.Groups, GroupView{
				CategoryID: g.CategoryID,
				Label:      g.Label,
				Cards:      buildCards(g.Items),
			})
		}
		return vm
	}

	vm.Cards = buildCards(batch.Results)
	return vm
}

func buildCards(results []analysis.Result) []Card {
	cards := make([]Card, 0, len(results))
	for _, r := range results {
		cards = append(cards, buildCard(r))
	}
	return cards
}

func buildCard(r analysis.Result) Card {
	category := r.Trend.Category
	if category == "" {
		category = trend.CategoryDefault
	}

	return Card{
		Platform:       r.Trend.Platform,
		CategoryLabel:  trend.CategoryLabel(category),
		Title:          r.Trend.Title,
		URL:            r.Trend.URL,
		Verdict:        string(r.Verdict),
		VerdictClass:   verdictClass(r.Verdict),
		FakePct:        r.FakeProbability,
		SpreadPct:      r.SpreadIndex,
		CredibilityPct: r.CredibilityScore,
		FakeLabel:      fmt.Sprintf("%.1f%%", r.FakeProbability),
		SpreadLabel:    fmt.Sprintf("%.1f", r.SpreadIndex),
		CredLabel:      fmt.Sprintf("%.1f%%", r.CredibilityScore),
		EvidenceLine: fmt.Sprintf("Credible Hits: %d | Sources: %d | Confidence: %.0f%%",
			r.Evidence.CredibleHits, r.Evidence.SourceDiversity, r.Evidence.Confidence*100),
		Reasons: r.Reasons,
		Links:   buildLinks(r.Evidence.Articles),
	}
}

func verdictClass(v analysis.Verdict) string {
	switch v {
	case analysis.VerdictLikelyReal:
		return VerdictClassReal
	case analysis.VerdictLikelyMisleading:
		return VerdictClassFake
	default:
		return VerdictClassWarn
	}
}

func buildLinks(articles []analysis.EvidenceArticle) []EvidenceLink {
	links := make([]EvidenceLink, 0, maxEvidenceLinks)
	for _, a := range articles {
		if len(links) == maxEvidenceLinks {
			break
		}
		label := a.Source
		if label == "" {
			label = "Source"
		}
		links = append(links, EvidenceLink{Label: label, URL: a.ArticleURL})
	}
	return links
}
