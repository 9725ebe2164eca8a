// Package scoring turns a trend plus its verification evidence into a
// credibility judgment. The formulas are deliberately simple, monotone
// heuristics; they are not a statistical model.
package scoring

import (
	"math"
	"strings"
	"time"

	"trendtruth/domain/analysis"
	"trendtruth/domain/trend"
)

// sensationalKeywords flag headline wording associated with low-quality virality
var sensationalKeywords = []string{
	"shocking",
	"must watch",
	"rumor",
	"unverified",
	"leaked",
	"explodes",
	"you won't believe",
	"viral",
	"breaking",
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// LanguageRisk estimates how sensational a headline reads, in [0,1]
func LanguageRisk(title string) float64 {
	lower := strings.ToLower(title)

	hits := 0
	for _, kw := range sensationalKeywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}

	exclamationRisk := 0.0
	if strings.Contains(title, "!") {
		exclamationRisk = 0.15
	}

	capsWords := 0
	for _, word := range strings.Fields(title) {
		if len(word) > 4 && word == strings.ToUpper(word) && word != strings.ToLower(word) {
			capsWords++
		}
	}
	capsRisk := math.Min(0.2, float64(capsWords)*0.05)

	return clamp01(float64(hits)*0.08 + exclamationRisk + capsRisk)
}

// SpreadIndexAt maps engagement velocity onto a saturating 0-100 scale
func SpreadIndexAt(item trend.Item, now time.Time) float64 {
	engagement := float64(item.Metrics.Engagement)
	if engagement == 0 {
		engagement = float64(item.Metrics.Score + item.Metrics.Comments)
	}
	hoursOld := math.Max(1.0, now.Sub(time.Unix(item.CreatedUTC, 0)).Hours())
	velocity := engagement / hoursOld
	spread := 100.0 * (1 - math.Exp(-velocity/120.0))
	return round2(clamp01(spread/100.0) * 100)
}

// Score combines evidence strength, engagement velocity and headline wording
// into a full analysis result for one trend.
func Score(item trend.Item, evidence analysis.Evidence, now time.Time) analysis.Result {
	languageRisk := LanguageRisk(item.Title)
	spreadIndex := SpreadIndexAt(item, now)

	fakeProbability := clamp01(
		0.82 -
			(evidence.Confidence * 0.72) -
			(math.Min(float64(evidence.CredibleHits), 4) * 0.05) +
			(languageRisk * 0.35),
	)
	credibility := clamp01(1.0 - fakeProbability)

	reasons := buildReasons(evidence, languageRisk, spreadIndex)

	var verdict analysis.Verdict
	switch {
	case fakeProbability <= 0.25:
		verdict = analysis.VerdictLikelyReal
	case fakeProbability <= 0.55:
		verdict = analysis.VerdictNeedsVerification
	default:
		verdict = analysis.VerdictLikelyMisleading
	}

	return analysis.Result{
		Trend:            item,
		FakeProbability:  round2(fakeProbability * 100),
		SpreadIndex:      spreadIndex,
		CredibilityScore: round2(credibility * 100),
		Verdict:          verdict,
		Reasons:          reasons,
		Evidence:         evidence,
	}
}

func buildReasons(evidence analysis.Evidence, languageRisk, spreadIndex float64) []string {
	reasons := make([]string, 0, 4)

	switch {
	case evidence.CredibleHits >= 3:
		reasons = append(reasons, "Multiple high-trust outlets reported similar claims.")
	case evidence.CredibleHits == 0:
		reasons = append(reasons, "No high-trust corroboration found in top results.")
	default:
		reasons = append(reasons, "Partial corroboration from trusted outlets.")
	}

	if evidence.SourceDiversity <= 1 {
		reasons = append(reasons, "Low source diversity increases uncertainty.")
	}
	if languageRisk >= 0.2 {
		reasons = append(reasons, "Headline wording appears potentially sensational.")
	}
	if spreadIndex >= 70 {
		reasons = append(reasons, "High social velocity suggests rapid spread.")
	}

	return reasons
}
