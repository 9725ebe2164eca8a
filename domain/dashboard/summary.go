// Package dashboard contains the pure transforms between an analysis batch
// and what the dashboard surface displays: summary counters, category
// sections, health pills and per-card view models. Everything here is a
// deterministic function of its inputs; no state survives a refresh.
package dashboard

import (
	"github.com/montanaflynn/stats"

	"trendtruth/domain/analysis"
)

// Summary is the dashboard-level counter row
type Summary struct {
	Total           int     `json:"total"`
	MisleadingCount int     `json:"misleading_count"`
	RealCount       int     `json:"real_count"`
	AvgFake         float64 `json:"avg_fake_probability"`
}

// Summarize computes the counter row for a batch of results. The average is
// defined as 0 for an empty batch; that is display policy, not an error.
// The output is invariant under permutation of the input.
func Summarize(results []analysis.Result) Summary {
	s := Summary{Total: len(results)}
	if s.Total == 0 {
		return s
	}

	probabilities := make([]float64, 0, len(results))
	for _, r := range results {
		switch r.Verdict {
		case analysis.VerdictLikelyMisleading:
			s.MisleadingCount++
		case analysis.VerdictLikelyReal:
			s.RealCount++
		}
		probabilities = append(probabilities, r.FakeProbability)
	}

	mean, err := stats.Mean(probabilities)
	if err != nil {
		return s
	}
	s.AvgFake = mean
	return s
}
