package dashboard

import (
	"trendtruth/domain/analysis"
	"trendtruth/domain/trend"
)

// Group is one category section of the "all" view
type Group struct {
	CategoryID string            `json:"category_id"`
	Label      string            `json:"label"`
	Items      []analysis.Result `json:"items"`
}

// Partition sections results by trend category, emitting groups in the fixed
// display order of known. The "all" pseudo-category never becomes a section,
// empty sections are omitted, and within a section items keep their batch
// order (no resorting by score or verdict). Results whose category is empty
// or not in known fall back to the default category.
func Partition(results []analysis.Result, known []trend.Category) []Group {
	knownIDs := make(map[string]bool, len(known))
	for _, c := range known {
		knownIDs[c.ID] = true
	}

	buckets := make(map[string][]analysis.Result, len(known))
	for _, r := range results {
		id := r.Trend.Category
		if id == "" || id == trend.CategoryAll || !knownIDs[id] {
			id = trend.CategoryDefault
		}
		buckets[id] = append(buckets[id], r)
	}

	groups := make([]Group, 0, len(known))
	for _, c := range known {
		if c.ID == trend.CategoryAll {
			continue
		}
		items := buckets[c.ID]
		if len(items) == 0 {
			continue
		}
		groups = append(groups, Group{CategoryID: c.ID, Label: c.Label, Items: items})
	}
	return groups
}
