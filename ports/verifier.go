package ports

import (
	"context"

	"trendtruth/domain/analysis"
)

// ClaimVerifier checks a claim against external reporting and returns the
// corroborating evidence found. A verification that finds nothing is a valid
// empty Evidence, not an error; errors mean the verifier itself failed.
type ClaimVerifier interface {
	Verify(ctx context.Context, claim string) (analysis.Evidence, error)
}
