package ports

import (
	"context"

	"trendtruth/domain/trend"
)

// TrendSource pulls candidate trends from one social platform.
// Fetch returns the platform's trends for a category, already tagged with
// their category IDs. Implementations must respect ctx and degrade with an
// error rather than blocking; the caller turns errors into health entries.
type TrendSource interface {
	// Name is the source_health key for this platform, e.g. "reddit"
	Name() string
	Fetch(ctx context.Context, category string, limit int) ([]trend.Item, error)
}
