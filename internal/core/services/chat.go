package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/naikan-labs/docchat-cli/internal/core/domain"
	"github.com/naikan-labs/docchat-cli/internal/core/ports/driven"
	"github.com/naikan-labs/docchat-cli/internal/core/ports/driving"
	"github.com/naikan-labs/docchat-cli/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatService answers user queries by dispatching to the retriever and
// normalising the raw result into a display record for the selected mode.
type ChatService struct {
	retriever driven.Retriever
}

// NewChatService creates a new chat service.
func NewChatService(retriever driven.Retriever) *ChatService {
	return &ChatService{retriever: retriever}
}

// Ask runs retrieval + generation for the query and returns the canonical
// display record. The caller appends turns to the session.
func (s *ChatService) Ask(
	ctx context.Context, query string, mode domain.AnswerMode,
) (domain.DisplayRecord, error) {
	logger.Section("Chat Ask")
	logger.Debug("Mode: %s, Query: %q", mode, query)

	if s.retriever == nil {
		return domain.DisplayRecord{}, domain.ErrNoRetriever
	}
	if !mode.Valid() {
		return domain.DisplayRecord{}, fmt.Errorf("%w: %q", domain.ErrInvalidMode, mode)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return domain.DisplayRecord{}, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	raw, err := s.retriever.Ask(ctx, query, mode)
	if err != nil {
		return domain.DisplayRecord{}, fmt.Errorf("retrieval failed: %w", err)
	}
	logger.Debug("Answer length: %d, context passages: %d", len(raw.Answer), len(raw.Context))

	var rec domain.DisplayRecord
	switch mode {
	case domain.ModeDocumentSearch:
		rec = domain.NormalizeDocumentSearch(raw)
	case domain.ModeInquiry:
		rec = domain.NormalizeInquiry(raw)
	}

	return rec, nil
}
