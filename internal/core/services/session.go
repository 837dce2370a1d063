package services

import (
	"sync"

	"github.com/google/uuid"

	"github.com/naikan-labs/docchat-cli/internal/core/domain"
	"github.com/naikan-labs/docchat-cli/internal/core/ports/driving"
)

// Ensure Session implements the interface.
var _ driving.SessionService = (*Session)(nil)

// Session holds the in-memory conversation state for one chat session.
// Created empty at session start and discarded with the process; nothing
// here touches disk. Guarded by a mutex because bubbletea commands run in
// their own goroutines.
type Session struct {
	mu    sync.RWMutex
	id    string
	mode  domain.AnswerMode
	turns domain.Transcript
}

// NewSession creates an empty session in document-search mode.
func NewSession() *Session {
	return &Session{
		id:   uuid.NewString(),
		mode: domain.ModeDocumentSearch,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// AppendUserTurn records a user message.
func (s *Session) AppendUserTurn(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, domain.UserTurn(text))
}

// AppendAssistantTurn records an assistant payload.
func (s *Session) AppendAssistantTurn(content any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, domain.Turn{Role: domain.RoleAssistant, Content: content})
}

// Transcript returns a copy of the conversation so far. Callers may read
// it freely without affecting session state.
func (s *Session) Transcript() domain.Transcript {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(domain.Transcript, len(s.turns))
	copy(out, s.turns)
	return out
}

// Mode returns the currently selected answer mode.
func (s *Session) Mode() domain.AnswerMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode selects the answer mode for subsequent queries. Invalid modes
// are ignored.
func (s *Session) SetMode(mode domain.AnswerMode) {
	if !mode.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// Reset clears the transcript. The mode selection survives a reset.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
}
