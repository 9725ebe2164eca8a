package trend

import (
	"testing"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"sports", "sports"},
		{"SPORTS", "sports"},
		{"  Tech  ", "tech"},
		{"technology", "tech"},
		{"finance", "business"},
		{"", "all"},
		{"garbage-category", "all"},
		{"all", "all"},
		{"trending", "trending"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := NormalizeCategory(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestKnownCategoriesOrderIsStable(t *testing.T) {
	first := CategoryIDs()
	second := CategoryIDs()

	if len(first) == 0 {
		t.Fatal("expected at least one known category")
	}
	if first[0] != CategoryAll {
		t.Errorf("expected %q to lead the category list, got %q", CategoryAll, first[0])
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("category order changed between calls at index %d", i)
		}
	}
}

func TestKnownCategoriesCopyIsIsolated(t *testing.T) {
	cats := KnownCategories()
	cats[0].Label = "mutated"

	if KnownCategories()[0].Label == "mutated" {
		t.Error("KnownCategories must return a copy, not the shared slice")
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := CategoryLabel("sports"); got != "Sports" {
		t.Errorf("CategoryLabel(sports) = %q", got)
	}
	if got := CategoryLabel("unlisted"); got != "Unlisted" {
		t.Errorf("CategoryLabel(unlisted) = %q", got)
	}
	if got := CategoryLabel(""); got != "All" {
		t.Errorf("CategoryLabel(\"\") = %q", got)
	}
}
