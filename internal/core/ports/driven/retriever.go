package driven

import (
	"context"

	"github.com/naikan-labs/docchat-cli/internal/core/domain"
)

// Retriever answers a user query from the pre-indexed document corpus.
//
// Implementations must guarantee:
//   - Context is ordered by descending relevance (index 0 most relevant).
//   - Page is absent (nil), not zero, when the source has no pagination.
//   - Answer is the mode's sentinel exactly when no usable match exists.
type Retriever interface {
	// Ask runs retrieval + generation for the query in the given mode.
	Ask(ctx context.Context, query string, mode domain.AnswerMode) (domain.RetrievalResult, error)
}
