package domain

import (
	"fmt"
	"strings"
)

// AnswerMode selects how a user query is answered and how the result is
// presented. The mode is chosen by the user per session and dispatched to
// the matching normaliser.
type AnswerMode string

const (
	// ModeDocumentSearch answers "where is this information" with the
	// location of the most relevant document plus candidate alternatives.
	ModeDocumentSearch AnswerMode = "document-search"

	// ModeInquiry answers the question directly from document content,
	// with a cited source list.
	ModeInquiry AnswerMode = "inquiry"
)

// String returns the mode identifier.
func (m AnswerMode) String() string {
	return string(m)
}

// Label returns the human-readable mode name shown in the UI.
func (m AnswerMode) Label() string {
	switch m {
	case ModeDocumentSearch:
		return "Document search"
	case ModeInquiry:
		return "Inquiry"
	default:
		return "Unknown"
	}
}

// Description returns the sidebar help text for the mode.
func (m AnswerMode) Description() string {
	switch m {
	case ModeDocumentSearch:
		return "Find which internal document holds the information you describe."
	case ModeInquiry:
		return "Get an answer to your question based on internal documents."
	default:
		return ""
	}
}

// Valid reports whether the mode is one of the two known modes.
func (m AnswerMode) Valid() bool {
	return m == ModeDocumentSearch || m == ModeInquiry
}

// Toggle returns the other mode.
func (m AnswerMode) Toggle() AnswerMode {
	if m == ModeDocumentSearch {
		return ModeInquiry
	}
	return ModeDocumentSearch
}

// ParseAnswerMode parses a mode identifier, accepting a few aliases used
// on the command line.
func ParseAnswerMode(s string) (AnswerMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "document-search", "search", "doc":
		return ModeDocumentSearch, nil
	case "inquiry", "ask", "qa":
		return ModeInquiry, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}
