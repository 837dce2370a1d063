package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/naikan-labs/docchat-cli/internal/core/domain"
	"github.com/naikan-labs/docchat-cli/internal/core/ports/driven"
	"github.com/naikan-labs/docchat-cli/internal/core/ports/driving"
	"github.com/naikan-labs/docchat-cli/internal/logger"
)

// Ensure EvalService implements the interface.
var _ driving.EvalRunner = (*EvalService)(nil)

// RetrieverFactory builds a retriever for a given retrieval depth. The
// eval runner sweeps top-k values, and each value needs its own pipeline
// instance since top-k is fixed at construction.
type RetrieverFactory func(topK int) driven.Retriever

// EvalService measures retrieval quality: for each test case it asks the
// pipeline and records where the expected source landed in the returned
// context. Runs are persisted through the EvalStore when one is configured.
type EvalService struct {
	newRetriever RetrieverFactory
	store        driven.EvalStore
}

// NewEvalService creates a new evaluation runner. The store is optional;
// without it runs are only returned, not persisted.
func NewEvalService(factory RetrieverFactory, store driven.EvalStore) *EvalService {
	return &EvalService{newRetriever: factory, store: store}
}

// Run evaluates all cases at each top-k value.
func (s *EvalService) Run(
	ctx context.Context, cases []domain.EvalCase, topKs []int,
) ([]domain.EvalRun, error) {
	if s.newRetriever == nil {
		return nil, domain.ErrNoRetriever
	}
	if len(cases) == 0 {
		return nil, fmt.Errorf("%w: no eval cases", domain.ErrInvalidInput)
	}
	if len(topKs) == 0 {
		topKs = []int{5}
	}

	runs := make([]domain.EvalRun, 0, len(topKs))
	for _, topK := range topKs {
		logger.Section(fmt.Sprintf("Eval top-k=%d", topK))
		run, err := s.runOnce(ctx, cases, topK)
		if err != nil {
			return runs, err
		}

		if s.store != nil {
			if err := s.store.SaveRun(ctx, run); err != nil {
				// A failed save should not discard the sweep results.
				logger.Warn("save eval run: %v", err)
			}
		}
		runs = append(runs, run)
	}

	return runs, nil
}

// runOnce evaluates all cases at a single retrieval depth.
func (s *EvalService) runOnce(
	ctx context.Context, cases []domain.EvalCase, topK int,
) (domain.EvalRun, error) {
	retriever := s.newRetriever(topK)
	if retriever == nil {
		return domain.EvalRun{}, domain.ErrNoRetriever
	}

	run := domain.EvalRun{
		ID:    uuid.NewString(),
		TopK:  topK,
		Total: len(cases),
		Cases: make([]domain.EvalCaseResult, 0, len(cases)),
	}

	for _, c := range cases {
		mode := c.Mode
		if !mode.Valid() {
			mode = domain.ModeDocumentSearch
		}

		raw, err := retriever.Ask(ctx, c.Query, mode)
		if err != nil {
			return run, fmt.Errorf("case %q: %w", c.Name, err)
		}

		result := scoreCase(c, raw)
		logger.Debug("case %q: want %q, got %q (rank %d)",
			c.Name, c.WantSource, result.GotSource, result.Rank)
		if result.Hit {
			run.Hits++
		}
		run.Cases = append(run.Cases, result)
	}

	run.CreatedAt = time.Now().UTC()
	return run, nil
}

// scoreCase ranks the expected source within the returned context,
// counting each distinct source once in first-occurrence order to match
// how citations are presented to the user.
func scoreCase(c domain.EvalCase, raw domain.RetrievalResult) domain.EvalCaseResult {
	result := domain.EvalCaseResult{
		Name:       c.Name,
		Query:      c.Query,
		WantSource: c.WantSource,
	}

	rank := 0
	seen := make(map[string]bool)
	for _, p := range raw.Context {
		if seen[p.Source] {
			continue
		}
		seen[p.Source] = true
		rank++
		if result.GotSource == "" {
			result.GotSource = p.Source
		}
		if p.Source == c.WantSource && result.Rank == 0 {
			result.Rank = rank
		}
	}

	result.Hit = result.Rank == 1
	return result
}
