package ports

import (
	"context"

	"trendtruth/domain/analysis"
)

// BatchRequest carries the parameters of one analyze call
type BatchRequest struct {
	Limit        int
	Category     string
	ForceRefresh bool
}

// BatchFetcher is the dashboard controller's view of the analyze backend.
// The production implementation speaks HTTP to GET /api/analyze; tests
// substitute fakes.
type BatchFetcher interface {
	FetchBatch(ctx context.Context, req BatchRequest) (*analysis.Batch, error)
}
