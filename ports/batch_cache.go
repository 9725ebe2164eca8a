package ports

import (
	"context"
	"time"

	"trendtruth/domain/analysis"
)

// BatchCache stores analyze responses keyed by "category:limit".
// Get returns core.ErrCacheMiss when the key is absent or expired.
type BatchCache interface {
	Get(ctx context.Context, key string) (*analysis.Batch, error)
	Set(ctx context.Context, key string, batch *analysis.Batch, ttl time.Duration) error
}
