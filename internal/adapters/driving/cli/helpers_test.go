package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/naikan-labs/docchat-cli/internal/adapters/driven/config/file"
	"github.com/naikan-labs/docchat-cli/internal/core/domain"
)

// testChatService returns a fixed inquiry record for any query.
type testChatService struct {
	record domain.DisplayRecord
	err    error
}

func (s *testChatService) Ask(_ context.Context, _ string, _ domain.AnswerMode) (domain.DisplayRecord, error) {
	return s.record, s.err
}

// testEvalRunner returns one canned run per top-k.
type testEvalRunner struct {
	err error
}

func (r *testEvalRunner) Run(_ context.Context, cases []domain.EvalCase, topKs []int) ([]domain.EvalRun, error) {
	if r.err != nil {
		return nil, r.err
	}
	runs := make([]domain.EvalRun, 0, len(topKs))
	for _, k := range topKs {
		run := domain.EvalRun{
			ID:        "run-" + time.Now().Format("150405"),
			CreatedAt: time.Now(),
			TopK:      k,
			Total:     len(cases),
			Hits:      len(cases),
		}
		for _, c := range cases {
			run.Cases = append(run.Cases, domain.EvalCaseResult{
				Name:       c.Name,
				Query:      c.Query,
				WantSource: c.WantSource,
				GotSource:  c.WantSource,
				Rank:       1,
				Hit:        true,
			})
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// testEvalStore keeps runs in memory.
type testEvalStore struct {
	runs []domain.EvalRun
}

func (s *testEvalStore) SaveRun(_ context.Context, run domain.EvalRun) error {
	s.runs = append(s.runs, run)
	return nil
}

func (s *testEvalStore) ListRuns(_ context.Context, limit int) ([]domain.EvalRun, error) {
	out := make([]domain.EvalRun, 0, len(s.runs))
	for i := len(s.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.runs[i])
	}
	return out, nil
}

func (s *testEvalStore) Close() error { return nil }

// setupTestServices wires mock services and returns a cleanup func.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	SetServices(Services{
		Chat: &testChatService{record: domain.DisplayRecord{
			Mode:         domain.ModeInquiry,
			Answer:       "Vacation is 20 days per year.",
			SourceLabel:  domain.LabelSource,
			FileInfoList: []string{"hr/policy.pdf (page 3)"},
		}},
		EvalRunner:  &testEvalRunner{},
		EvalStore:   &testEvalStore{},
		ConfigStore: store,
	})

	return func() {
		SetServices(Services{})
	}
}
