package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naikan-labs/docchat-cli/internal/core/domain"
	"github.com/naikan-labs/docchat-cli/internal/core/ports/driven"
)

// fakeLLM records the last chat request and returns a canned answer.
type fakeLLM struct {
	answer   string
	err      error
	lastMsgs []driven.ChatMessage
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	return f.Chat(ctx, []driven.ChatMessage{{Role: "user", Content: prompt}}, driven.ChatOptions{})
}

func (f *fakeLLM) Chat(_ context.Context, msgs []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	f.lastMsgs = msgs
	return f.answer, f.err
}

func (f *fakeLLM) ModelName() string             { return "fake" }
func (f *fakeLLM) Ping(context.Context) error    { return nil }
func (f *fakeLLM) Close() error                  { return nil }

// fakeEmbedding returns a fixed vector.
type fakeEmbedding struct {
	err error
}

func (f *fakeEmbedding) Embed(context.Context, string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (f *fakeEmbedding) Dimensions() int           { return 3 }
func (f *fakeEmbedding) ModelName() string         { return "fake-embed" }
func (f *fakeEmbedding) Ping(context.Context) error { return nil }
func (f *fakeEmbedding) Close() error              { return nil }

// fakeIndex returns canned passages and records the requested topK.
type fakeIndex struct {
	passages []domain.RetrievedPassage
	err      error
	lastTopK int
}

func (f *fakeIndex) Query(_ context.Context, _ []float32, topK int) ([]domain.RetrievedPassage, error) {
	f.lastTopK = topK
	return f.passages, f.err
}

func (f *fakeIndex) Ping(context.Context) error { return nil }
func (f *fakeIndex) Close() error               { return nil }

// TestRAGService_Ask tests the happy-path composition
func TestRAGService_Ask(t *testing.T) {
	llm := &fakeLLM{answer: "  the answer  "}
	index := &fakeIndex{passages: []domain.RetrievedPassage{
		{Source: "hr/policy.pdf", Page: intPtr(1), Content: "policy text"},
		{Source: "it/handbook.pdf", Content: "handbook text"},
	}}
	svc := NewRAGService(llm, &fakeEmbedding{}, index, nil, RAGOptions{TopK: 7})

	result, err := svc.Ask(context.Background(), "travel policy?", domain.ModeInquiry)
	require.NoError(t, err)

	assert.Equal(t, "the answer", result.Answer)
	assert.Len(t, result.Context, 2)
	assert.Equal(t, 7, index.lastTopK)

	// System + user prompt, with the passages labelled by source.
	require.Len(t, llm.lastMsgs, 2)
	assert.Equal(t, "system", llm.lastMsgs[0].Role)
	assert.Contains(t, llm.lastMsgs[1].Content, "hr/policy.pdf (page 2)")
	assert.Contains(t, llm.lastMsgs[1].Content, "policy text")
	assert.Contains(t, llm.lastMsgs[1].Content, "travel policy?")
}

// TestRAGService_AskDocSearchPrompt tests that document-search mode pins its sentinel
func TestRAGService_AskDocSearchPrompt(t *testing.T) {
	llm := &fakeLLM{answer: "found it"}
	index := &fakeIndex{passages: []domain.RetrievedPassage{{Source: "a.pdf", Content: "text"}}}
	svc := NewRAGService(llm, &fakeEmbedding{}, index, nil, RAGOptions{})

	_, err := svc.Ask(context.Background(), "minutes", domain.ModeDocumentSearch)
	require.NoError(t, err)

	require.Len(t, llm.lastMsgs, 2)
	assert.Contains(t, llm.lastMsgs[1].Content, domain.AnswerNoDocMatch)
	assert.False(t, strings.Contains(llm.lastMsgs[1].Content, domain.AnswerNoInquiryMatch))
}

// TestRAGService_EmptyIndex tests the sentinel short-circuit without an LLM call
func TestRAGService_EmptyIndex(t *testing.T) {
	llm := &fakeLLM{answer: "should not be called"}
	svc := NewRAGService(llm, &fakeEmbedding{}, &fakeIndex{}, nil, RAGOptions{})

	result, err := svc.Ask(context.Background(), "anything", domain.ModeDocumentSearch)
	require.NoError(t, err)
	assert.Equal(t, domain.AnswerNoDocMatch, result.Answer)
	assert.Empty(t, result.Context)
	assert.Nil(t, llm.lastMsgs)

	result, err = svc.Ask(context.Background(), "anything", domain.ModeInquiry)
	require.NoError(t, err)
	assert.Equal(t, domain.AnswerNoInquiryMatch, result.Answer)
}

// TestRAGService_MissingServices tests the unavailability errors
func TestRAGService_MissingServices(t *testing.T) {
	_, err := NewRAGService(nil, &fakeEmbedding{}, &fakeIndex{}, nil, RAGOptions{}).
		Ask(context.Background(), "q", domain.ModeInquiry)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)

	_, err = NewRAGService(&fakeLLM{}, nil, &fakeIndex{}, nil, RAGOptions{}).
		Ask(context.Background(), "q", domain.ModeInquiry)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)

	_, err = NewRAGService(&fakeLLM{}, &fakeEmbedding{}, nil, nil, RAGOptions{}).
		Ask(context.Background(), "q", domain.ModeInquiry)
	assert.ErrorIs(t, err, domain.ErrVectorIndexUnavailable)
}

// TestRAGService_ErrorPropagation tests embed/query/generate failures
func TestRAGService_ErrorPropagation(t *testing.T) {
	embedErr := errors.New("embed down")
	_, err := NewRAGService(&fakeLLM{}, &fakeEmbedding{err: embedErr}, &fakeIndex{}, nil, RAGOptions{}).
		Ask(context.Background(), "q", domain.ModeInquiry)
	assert.ErrorIs(t, err, embedErr)

	queryErr := errors.New("index down")
	_, err = NewRAGService(&fakeLLM{}, &fakeEmbedding{}, &fakeIndex{err: queryErr}, nil, RAGOptions{}).
		Ask(context.Background(), "q", domain.ModeInquiry)
	assert.ErrorIs(t, err, queryErr)

	llmErr := errors.New("llm down")
	index := &fakeIndex{passages: []domain.RetrievedPassage{{Source: "a.pdf"}}}
	_, err = NewRAGService(&fakeLLM{err: llmErr}, &fakeEmbedding{}, index, nil, RAGOptions{}).
		Ask(context.Background(), "q", domain.ModeInquiry)
	assert.ErrorIs(t, err, llmErr)
}
