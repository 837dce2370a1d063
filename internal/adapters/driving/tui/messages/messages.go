// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/naikan-labs/docchat-cli/internal/core/domain"
)

// AskCompleted carries the answer for a submitted query back to the model.
type AskCompleted struct {
	Record domain.DisplayRecord
	Err    error
}

// ModeChanged is sent when the answer mode selector is toggled.
type ModeChanged struct {
	Mode domain.AnswerMode
}

// TranscriptCleared is sent after the conversation has been reset.
type TranscriptCleared struct{}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
