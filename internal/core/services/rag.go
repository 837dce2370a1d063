package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/naikan-labs/docchat-cli/internal/core/domain"
	"github.com/naikan-labs/docchat-cli/internal/core/ports/driven"
	"github.com/naikan-labs/docchat-cli/internal/logger"
)

// Ensure RAGService implements the interface.
var _ driven.Retriever = (*RAGService)(nil)

// Default prompts used when no PromptStore is configured or a named prompt
// cannot be loaded. Each mode prompt takes the context block and the user
// query as fmt verbs and pins the mode's sentinel answer.
const (
	defaultSystemPrompt = `You are an assistant for an internal company document corpus.
Answer strictly from the provided context. Never invent documents or content.`

	defaultDocSearchPrompt = `Decide whether the context below contains information related to the request.
If it does, answer briefly. If nothing in the context is related, reply with exactly:
` + domain.AnswerNoDocMatch + `

Context:
%s

Request: %s`

	defaultInquiryPrompt = `Answer the question using only the context below.
If the context does not contain the information needed, reply with exactly:
` + domain.AnswerNoInquiryMatch + `

Context:
%s

Question: %s`
)

// RAGOptions configures the retrieval composition.
type RAGOptions struct {
	// TopK is the number of passages requested from the vector index.
	// Defaults to 5.
	TopK int

	// Temperature is passed to the LLM. Defaults to 0 (deterministic).
	Temperature float64

	// MaxTokens caps the generated answer. Defaults to 1024.
	MaxTokens int
}

// RAGService implements the Retriever port by composing the external
// services: embed the query, fetch the nearest passages from the vector
// index, and condition the LLM on them. No ranking or chunking logic of
// its own; everything clever happens on the other side of the ports.
type RAGService struct {
	llm         driven.LLMService
	embedding   driven.EmbeddingService
	vectorIndex driven.VectorIndex
	prompts     driven.PromptStore
	opts        RAGOptions
}

// NewRAGService creates a new RAG retriever. The prompt store is optional.
func NewRAGService(
	llm driven.LLMService,
	embedding driven.EmbeddingService,
	vectorIndex driven.VectorIndex,
	prompts driven.PromptStore,
	opts RAGOptions,
) *RAGService {
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 1024
	}

	return &RAGService{
		llm:         llm,
		embedding:   embedding,
		vectorIndex: vectorIndex,
		prompts:     prompts,
		opts:        opts,
	}
}

// Ask embeds the query, retrieves the top-k passages, and generates an
// answer conditioned on them. When the index returns nothing, the mode's
// sentinel answer is returned without calling the LLM.
func (s *RAGService) Ask(
	ctx context.Context, query string, mode domain.AnswerMode,
) (domain.RetrievalResult, error) {
	logger.Section("Retrieval")
	logger.Debug("Mode: %s, TopK: %d", mode, s.opts.TopK)

	if s.llm == nil {
		return domain.RetrievalResult{}, domain.ErrLLMUnavailable
	}
	if s.embedding == nil {
		return domain.RetrievalResult{}, domain.ErrEmbeddingUnavailable
	}
	if s.vectorIndex == nil {
		return domain.RetrievalResult{}, domain.ErrVectorIndexUnavailable
	}

	vec, err := s.embedding.Embed(ctx, query)
	if err != nil {
		return domain.RetrievalResult{}, fmt.Errorf("embed query: %w", err)
	}

	passages, err := s.vectorIndex.Query(ctx, vec, s.opts.TopK)
	if err != nil {
		return domain.RetrievalResult{}, fmt.Errorf("vector query: %w", err)
	}
	logger.Debug("Retrieved %d passages", len(passages))

	if len(passages) == 0 {
		return domain.RetrievalResult{Answer: sentinelFor(mode)}, nil
	}

	answer, err := s.generate(ctx, query, mode, passages)
	if err != nil {
		return domain.RetrievalResult{}, fmt.Errorf("generate answer: %w", err)
	}

	return domain.RetrievalResult{
		Answer:  strings.TrimSpace(answer),
		Context: passages,
	}, nil
}

// generate builds the mode prompt and runs the chat completion.
func (s *RAGService) generate(
	ctx context.Context, query string, mode domain.AnswerMode, passages []domain.RetrievedPassage,
) (string, error) {
	promptName := driven.PromptInquiry
	fallback := defaultInquiryPrompt
	if mode == domain.ModeDocumentSearch {
		promptName = driven.PromptDocSearch
		fallback = defaultDocSearchPrompt
	}

	template := s.loadPrompt(promptName, fallback)
	prompt := fmt.Sprintf(template, contextBlock(passages), query)

	messages := []driven.ChatMessage{
		{Role: "system", Content: s.loadPrompt(driven.PromptSystem, defaultSystemPrompt)},
		{Role: "user", Content: prompt},
	}

	return s.llm.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
	})
}

// contextBlock renders the retrieved passages into the prompt context,
// labelling each with its source so the model can ground its answer.
func contextBlock(passages []domain.RetrievedPassage) string {
	var b strings.Builder
	for i, p := range passages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%d] %s\n%s", i+1, domain.FormatFileInfo(p.Source, p.Page), p.Content)
	}
	return b.String()
}

// loadPrompt loads a prompt from the store, falling back to the default.
func (s *RAGService) loadPrompt(name, fallback string) string {
	if s.prompts == nil {
		return fallback
	}
	prompt, err := s.prompts.Load(name)
	if err != nil {
		logger.Warn("prompt %q unavailable, using default: %v", name, err)
		return fallback
	}
	return prompt
}

func sentinelFor(mode domain.AnswerMode) string {
	if mode == domain.ModeDocumentSearch {
		return domain.AnswerNoDocMatch
	}
	return domain.AnswerNoInquiryMatch
}
