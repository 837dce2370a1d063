package driving

import (
	"context"

	"github.com/naikan-labs/docchat-cli/internal/core/domain"
)

// EvalRunner sweeps the retrieval pipeline over a set of test cases at
// varying retrieval depths and reports ranking quality.
type EvalRunner interface {
	// Run evaluates all cases at each top-k value and returns one run
	// per top-k, in the order given.
	Run(ctx context.Context, cases []domain.EvalCase, topKs []int) ([]domain.EvalRun, error)
}
