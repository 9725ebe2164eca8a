// Package insights computes batch-level statistics shown in the dashboard
// footer: the distribution of fake probabilities and how engagement velocity
// relates to the fake score within the current batch.
package insights

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"trendtruth/domain/analysis"
)

// highRiskThreshold marks the fake-probability level counted as high risk
const highRiskThreshold = 70.0

// BatchInsights summarizes score distribution within one batch
type BatchInsights struct {
	MeanFake       float64 `json:"mean_fake"`
	MedianFake     float64 `json:"median_fake"`
	StdDevFake     float64 `json:"stddev_fake"`
	SpreadFakeCorr float64 `json:"spread_fake_correlation"`
	HighRiskCount  int     `json:"high_risk_count"`
}

// Compute derives insights from a batch of results. With fewer than two
// results the distribution stats degrade to zero rather than erroring.
func Compute(results []analysis.Result) BatchInsights {
	out := BatchInsights{}
	if len(results) == 0 {
		return out
	}

	fakes := make([]float64, 0, len(results))
	spreads := make([]float64, 0, len(results))
	for _, r := range results {
		fakes = append(fakes, r.FakeProbability)
		spreads = append(spreads, r.SpreadIndex)
		if r.FakeProbability >= highRiskThreshold {
			out.HighRiskCount++
		}
	}

	if mean, err := stats.Mean(fakes); err == nil {
		out.MeanFake = mean
	}
	if median, err := stats.Median(fakes); err == nil {
		out.MedianFake = median
	}
	if len(fakes) >= 2 {
		if sd, err := stats.StandardDeviationSample(fakes); err == nil {
			out.StdDevFake = sd
		}
		corr := stat.Correlation(spreads, fakes, nil)
		// Constant series produce NaN; report 0 for display
		if corr == corr {
			out.SpreadFakeCorr = corr
		}
	}

	return out
}
