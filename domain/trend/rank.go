package trend

import (
	"regexp"
	"sort"
	"strings"
)

var titleNormalizer = regexp.MustCompile(`[^a-z0-9 ]+`)

// normalizeTitle reduces a headline to its comparable form for deduplication
func normalizeTitle(title string) string {
	return strings.TrimSpace(titleNormalizer.ReplaceAllString(strings.ToLower(title), ""))
}

// DedupeAndRank collapses near-duplicate headlines (keeping the copy with the
// highest engagement), orders the remainder by engagement then recency, and
// truncates to limit. Items whose titles normalize to nothing are dropped.
func DedupeAndRank(items []Item, limit int) []Item {
	type keyed struct {
		order int
		item  Item
	}
	unique := make(map[string]keyed, len(items))
	for i, item := range items {
		key := normalizeTitle(item.Title)
		if key == "" {
			continue
		}
		existing, ok := unique[key]
		if !ok || item.Metrics.Engagement > existing.item.Metrics.Engagement {
			if !ok {
				unique[key] = keyed{order: i, item: item}
			} else {
				unique[key] = keyed{order: existing.order, item: item}
			}
		}
	}

	ranked := make([]keyed, 0, len(unique))
	for _, k := range unique {
		ranked = append(ranked, k)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i].item, ranked[j].item
		if a.Metrics.Engagement != b.Metrics.Engagement {
			return a.Metrics.Engagement > b.Metrics.Engagement
		}
		if a.CreatedUTC != b.CreatedUTC {
			return a.CreatedUTC > b.CreatedUTC
		}
		// Stable tiebreak on first-seen position
		return ranked[i].order < ranked[j].order
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]Item, 0, len(ranked))
	for _, k := range ranked {
		out = append(out, k.item)
	}
	return out
}
