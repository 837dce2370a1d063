package driving

import (
	"context"

	"github.com/naikan-labs/docchat-cli/internal/core/domain"
)

// ChatService answers a user query and shapes the result for display.
type ChatService interface {
	// Ask runs the query through retrieval + generation in the given
	// mode and returns the canonical display record.
	Ask(ctx context.Context, query string, mode domain.AnswerMode) (domain.DisplayRecord, error)
}

// SessionService owns the in-memory conversation state for one session:
// the transcript and the selected answer mode. Created at session start,
// discarded at session end, never persisted.
type SessionService interface {
	// ID returns the session identifier.
	ID() string

	// AppendUserTurn records a user message.
	AppendUserTurn(text string)

	// AppendAssistantTurn records an assistant payload. Normally a
	// domain.DisplayRecord; legacy strings are accepted and normalised
	// at render time.
	AppendAssistantTurn(content any)

	// Transcript returns a copy of the conversation so far.
	Transcript() domain.Transcript

	// Mode returns the currently selected answer mode.
	Mode() domain.AnswerMode

	// SetMode selects the answer mode for subsequent queries.
	SetMode(mode domain.AnswerMode)

	// Reset clears the transcript.
	Reset()
}
