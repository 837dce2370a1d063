package domain

// Role identifies who produced a transcript turn.
type Role string

const (
	// RoleUser is a turn typed by the user.
	RoleUser Role = "user"

	// RoleAssistant is a turn produced by the chatbot.
	RoleAssistant Role = "assistant"
)

// Turn is a single entry in the conversation transcript.
type Turn struct {
	// Role is who produced the turn.
	Role Role

	// Text is the raw user input. Only set on user turns.
	Text string

	// Content is the assistant payload. Normally a DisplayRecord, but
	// legacy history may carry a plain string or other shapes; renderers
	// must pass it through CoerceRecord rather than type-assert ad hoc.
	Content any
}

// Transcript is the ordered conversation history for one session. It lives
// in memory for the session's duration and is never persisted.
type Transcript []Turn

// UserTurn builds a user turn.
func UserTurn(text string) Turn {
	return Turn{Role: RoleUser, Text: text}
}

// AssistantTurn builds an assistant turn. The content is normally a
// DisplayRecord; legacy strings are accepted and normalised at render time.
func AssistantTurn(content any) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}
