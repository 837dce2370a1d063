package driven

import (
	"context"

	"github.com/naikan-labs/docchat-cli/internal/core/domain"
)

// EvalStore persists retrieval-quality evaluation runs so parameter sweeps
// can be compared across invocations. The chat transcript itself is never
// persisted; only eval runs are.
type EvalStore interface {
	// SaveRun stores a completed evaluation run.
	SaveRun(ctx context.Context, run domain.EvalRun) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.EvalRun, error)

	// Close releases resources.
	Close() error
}
