package ports

import (
	"context"

	"trendtruth/domain/analysis"
)

// RunRepository persists summaries of fresh analysis cycles.
// Persistence is best-effort for the analyze path: a failing save is logged,
// never surfaced to the caller of /api/analyze.
type RunRepository interface {
	SaveRun(ctx context.Context, run analysis.Run) error
	ListRecent(ctx context.Context, limit int) ([]analysis.Run, error)
}
