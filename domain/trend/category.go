package trend

import "strings"

// Category is a topical bucket used to group and filter trends
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

const (
	// CategoryAll is the pseudo-category meaning "no server-side filter"
	CategoryAll = "all"
	// CategoryDefault is where trends land when their category is unknown
	CategoryDefault = "trending"
)

// knownCategories is the fixed display order for the dashboard sections.
// "all" leads because it is the default selection in the category picker.
var knownCategories = []Category{
	{ID: CategoryAll, Label: "All"},
	{ID: CategoryDefault, Label: "Trending"},
	{ID: "world", Label: "World"},
	{ID: "politics", Label: "Politics"},
	{ID: "business", Label: "Business"},
	{ID: "tech", Label: "Tech"},
	{ID: "science", Label: "Science"},
	{ID: "sports", Label: "Sports"},
	{ID: "entertainment", Label: "Entertainment"},
}

// categoryAliases maps request spellings onto canonical category IDs
var categoryAliases = map[string]string{
	"technology": "tech",
	"sci":        "science",
	"biz":        "business",
	"finance":    "business",
	"ent":        "entertainment",
	"movies":     "entertainment",
	"news":       "world",
}

// KnownCategories returns the category list in display order
func KnownCategories() []Category {
	out := make([]Category, len(knownCategories))
	copy(out, knownCategories)
	return out
}

// CategoryIDs returns the known category identifiers in display order
func CategoryIDs() []string {
	ids := make([]string, 0, len(knownCategories))
	for _, c := range knownCategories {
		ids = append(ids, c.ID)
	}
	return ids
}

// CategoryLabel resolves a category ID to its display label.
// Unknown IDs fall back to a title-cased echo of the ID.
func CategoryLabel(id string) string {
	for _, c := range knownCategories {
		if c.ID == id {
			return c.Label
		}
	}
	if id == "" {
		return "All"
	}
	return strings.ToUpper(id[:1]) + id[1:]
}

// NormalizeCategory maps arbitrary request input onto a known category ID.
// Anything unrecognized degrades to "all" rather than failing the request.
func NormalizeCategory(raw string) string {
	id := strings.ToLower(strings.TrimSpace(raw))
	if id == "" {
		return CategoryAll
	}
	if canonical, ok := categoryAliases[id]; ok {
		id = canonical
	}
	for _, c := range knownCategories {
		if c.ID == id {
			return id
		}
	}
	return CategoryAll
}

// IsKnownCategory reports whether id is one of the fixed category IDs
func IsKnownCategory(id string) bool {
	for _, c := range knownCategories {
		if c.ID == id {
			return true
		}
	}
	return false
}
