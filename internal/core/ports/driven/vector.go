package driven

import (
	"context"

	"github.com/naikan-labs/docchat-cli/internal/core/domain"
)

// VectorIndex queries a pre-built vector store of document chunks.
// Building and maintaining the index is out of scope; the store arrives
// fully indexed.
type VectorIndex interface {
	// Query returns up to topK passages most similar to the embedding,
	// ordered by descending relevance.
	Query(ctx context.Context, embedding []float32, topK int) ([]domain.RetrievedPassage, error)

	// Ping validates the index is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
