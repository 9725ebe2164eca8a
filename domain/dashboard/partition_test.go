package dashboard

import (
	"testing"

	"trendtruth/domain/analysis"
	"trendtruth/domain/trend"
)

func resultInCategory(title, category string) analysis.Result {
	return analysis.Result{Trend: trend.Item{Title: title, Category: category}}
}

func TestPartition_IsASetPartition(t *testing.T) {
	results := []analysis.Result{
		resultInCategory("a", "sports"),
		resultInCategory("b", "world"),
		resultInCategory("c", "sports"),
		resultInCategory("d", ""),          // falls back
		resultInCategory("e", "not-a-cat"), // falls back
	}

	groups := Partition(results, trend.KnownCategories())

	seen := map[string]int{}
	total := 0
	for _, g := range groups {
		for _, item := range g.Items {
			seen[item.Trend.Title]++
			total++
		}
	}

	if total != len(results) {
		t.Fatalf("partition lost or duplicated items: %d in, %d out", len(results), total)
	}
	for _, r := range results {
		if seen[r.Trend.Title] != 1 {
			t.Errorf("item %q appears %d times", r.Trend.Title, seen[r.Trend.Title])
		}
	}
}

func TestPartition_FallbackRoutesToDefaultCategory(t *testing.T) {
	results := []analysis.Result{
		resultInCategory("orphan", "zzz-unknown"),
	}

	groups := Partition(results, trend.KnownCategories())

	if len(groups) != 1 || groups[0].CategoryID != trend.CategoryDefault {
		t.Fatalf("expected a single %q group, got %+v", trend.CategoryDefault, groups)
	}
}

func TestPartition_EmptyGroupsOmittedAndOrderFixed(t *testing.T) {
	// Input deliberately ordered against display order
	results := []analysis.Result{
		resultInCategory("s1", "sports"),
		resultInCategory("w1", "world"),
		resultInCategory("s2", "sports"),
	}

	groups := Partition(results, trend.KnownCategories())

	if len(groups) != 2 {
		t.Fatalf("expected 2 non-empty groups, got %d", len(groups))
	}
	// "world" precedes "sports" in the fixed category order
	if groups[0].CategoryID != "world" || groups[1].CategoryID != "sports" {
		t.Errorf("groups out of display order: %q, %q", groups[0].CategoryID, groups[1].CategoryID)
	}
}

func TestPartition_NeverEmitsAllGroup(t *testing.T) {
	results := []analysis.Result{
		resultInCategory("x", trend.CategoryAll),
	}

	groups := Partition(results, trend.KnownCategories())

	for _, g := range groups {
		if g.CategoryID == trend.CategoryAll {
			t.Fatalf("%q must never be a section", trend.CategoryAll)
		}
	}
	// The item itself routes to the fallback group
	if len(groups) != 1 || groups[0].CategoryID != trend.CategoryDefault {
		t.Errorf("expected fallback routing, got %+v", groups)
	}
}

func TestPartition_PreservesWithinGroupOrder(t *testing.T) {
	results := []analysis.Result{
		resultInCategory("first", "tech"),
		resultInCategory("second", "tech"),
		resultInCategory("third", "tech"),
	}

	groups := Partition(results, trend.KnownCategories())

	if len(groups) != 1 {
		t.Fatalf("expected one group, got %d", len(groups))
	}
	for i, want := range []string{"first", "second", "third"} {
		if groups[0].Items[i].Trend.Title != want {
			t.Errorf("position %d: got %q, want %q", i, groups[0].Items[i].Trend.Title, want)
		}
	}
}
