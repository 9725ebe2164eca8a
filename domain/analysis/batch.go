package analysis

import (
	"time"

	"trendtruth/domain/core"
	"trendtruth/domain/trend"
)

// Batch is one full analyze response: the unit the dashboard renders.
// It is replaced wholesale on every refresh; nothing merges across batches.
type Batch struct {
	GeneratedAt         string       `json:"generated_at"`
	AnalyzedCount       int          `json:"analyzed_count"`
	SelectedCategory    string       `json:"selected_category"`
	AvailableCategories []string     `json:"available_categories"`
	Results             []Result     `json:"results"`
	SourceHealth        SourceHealth `json:"source_health"`
}

// NewBatch builds a batch with non-nil collections so the wire shape is
// always [] / {} rather than null.
func NewBatch(generatedAt core.Timestamp, category string, results []Result, health SourceHealth) *Batch {
	if results == nil {
		results = []Result{}
	}
	if health == nil {
		health = SourceHealth{}
	}
	return &Batch{
		GeneratedAt:         generatedAt.RFC3339(),
		AnalyzedCount:       len(results),
		SelectedCategory:    category,
		AvailableCategories: trend.CategoryIDs(),
		Results:             results,
		SourceHealth:        health,
	}
}

// GeneratedTime parses the batch timestamp; zero time when unparseable
func (b *Batch) GeneratedTime() time.Time {
	ts, err := core.ParseWireTimestamp(b.GeneratedAt)
	if err != nil {
		return time.Time{}
	}
	return ts.Time()
}

// Run is the persisted summary of one fresh analysis cycle
type Run struct {
	ID              core.RunID `db:"id"`
	Category        string     `db:"category"`
	Limit           int        `db:"limit_requested"`
	Total           int        `db:"total"`
	MisleadingCount int        `db:"misleading_count"`
	RealCount       int        `db:"real_count"`
	AvgFake         float64    `db:"avg_fake_probability"`
	GeneratedAt     time.Time  `db:"generated_at"`
}
