package chat

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naikan-labs/docchat-cli/internal/adapters/driving/tui/messages"
	"github.com/naikan-labs/docchat-cli/internal/core/domain"
)

// stubChat returns a canned record or error.
type stubChat struct {
	record domain.DisplayRecord
	err    error
	asked  []string
	modes  []domain.AnswerMode
}

func (s *stubChat) Ask(_ context.Context, query string, mode domain.AnswerMode) (domain.DisplayRecord, error) {
	s.asked = append(s.asked, query)
	s.modes = append(s.modes, mode)
	return s.record, s.err
}

// stubSession is an in-memory session stub.
type stubSession struct {
	mode   domain.AnswerMode
	turns  domain.Transcript
	resets int
}

func newStubSession() *stubSession {
	return &stubSession{mode: domain.ModeDocumentSearch}
}

func (s *stubSession) ID() string { return "test-session" }

func (s *stubSession) AppendUserTurn(text string) {
	s.turns = append(s.turns, domain.UserTurn(text))
}

func (s *stubSession) AppendAssistantTurn(content any) {
	s.turns = append(s.turns, domain.AssistantTurn(content))
}

func (s *stubSession) Transcript() domain.Transcript { return s.turns }

func (s *stubSession) Mode() domain.AnswerMode { return s.mode }

func (s *stubSession) SetMode(mode domain.AnswerMode) { s.mode = mode }

func (s *stubSession) Reset() {
	s.turns = nil
	s.resets++
}

func newTestView(chat *stubChat, session *stubSession) *View {
	v := NewView(nil, chat, session)
	v.SetDimensions(80, 24)
	return v
}

// TestView_SubmitAsksInSessionMode tests that enter submits the typed query
func TestView_SubmitAsksInSessionMode(t *testing.T) {
	chat := &stubChat{record: domain.DisplayRecord{Mode: domain.ModeInquiry, Answer: "yes"}}
	session := newStubSession()
	session.SetMode(domain.ModeInquiry)
	v := newTestView(chat, session)

	v.SetInput("is there a travel policy")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, v.Waiting())
	assert.Empty(t, v.Input())

	// The user turn is visible before the answer arrives.
	require.Len(t, session.Transcript(), 1)
	assert.Equal(t, domain.RoleUser, session.Transcript()[0].Role)

	// Run the ask command directly.
	msg := v.performAsk("is there a travel policy", session.Mode())()
	completed, ok := msg.(messages.AskCompleted)
	require.True(t, ok)
	require.NoError(t, completed.Err)
	assert.Equal(t, []string{"is there a travel policy"}, chat.asked)
	assert.Equal(t, domain.ModeInquiry, chat.modes[0])
}

// TestView_AskCompletedAppendsRecord tests that the answer lands in the transcript
func TestView_AskCompletedAppendsRecord(t *testing.T) {
	session := newStubSession()
	v := newTestView(&stubChat{}, session)

	rec := domain.DisplayRecord{
		Mode:         domain.ModeDocumentSearch,
		MainMessage:  domain.MessageMain,
		MainFilePath: "hr/policy.pdf",
	}
	v.waiting = true
	v, _ = v.Update(messages.AskCompleted{Record: rec})

	assert.False(t, v.Waiting())
	require.Len(t, session.Transcript(), 1)
	assert.Contains(t, v.View(), "hr/policy.pdf")
}

// TestView_AskCompletedError tests that errors surface without touching the transcript
func TestView_AskCompletedError(t *testing.T) {
	session := newStubSession()
	v := newTestView(&stubChat{}, session)

	wantErr := errors.New("llm unreachable")
	v.waiting = true
	v, _ = v.Update(messages.AskCompleted{Err: wantErr})

	assert.False(t, v.Waiting())
	assert.ErrorIs(t, v.Err(), wantErr)
	assert.Empty(t, session.Transcript())
	assert.Contains(t, v.View(), "llm unreachable")
}

// TestView_EmptySubmitIgnored tests that blank input does not submit
func TestView_EmptySubmitIgnored(t *testing.T) {
	chat := &stubChat{}
	session := newStubSession()
	v := newTestView(chat, session)

	v.SetInput("   ")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, v.Waiting())
	assert.Empty(t, session.Transcript())
	assert.Empty(t, chat.asked)
}

// TestView_TabTogglesMode tests the mode selector round trip
func TestView_TabTogglesMode(t *testing.T) {
	session := newStubSession()
	v := newTestView(&stubChat{}, session)

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.NotNil(t, cmd)
	assert.Equal(t, domain.ModeInquiry, session.Mode())

	changed, ok := cmd().(messages.ModeChanged)
	require.True(t, ok)
	assert.Equal(t, domain.ModeInquiry, changed.Mode)

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.ModeDocumentSearch, session.Mode())
	assert.NotNil(t, v)
}

// TestView_ModeToggleFrozenWhileWaiting tests that pending answers lock the mode
func TestView_ModeToggleFrozenWhileWaiting(t *testing.T) {
	session := newStubSession()
	v := newTestView(&stubChat{}, session)
	v.waiting = true

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyTab})

	assert.Nil(t, cmd)
	assert.Equal(t, domain.ModeDocumentSearch, session.Mode())
	assert.NotNil(t, v)
}

// TestView_ClearResetsTranscript tests ctrl+l
func TestView_ClearResetsTranscript(t *testing.T) {
	session := newStubSession()
	session.AppendUserTurn("hello")
	v := newTestView(&stubChat{}, session)

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlL})

	require.NotNil(t, cmd)
	assert.Empty(t, session.Transcript())
	assert.Equal(t, 1, session.resets)
	_, ok := cmd().(messages.TranscriptCleared)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

// TestView_NoChatService tests the guard when no service is wired
func TestView_NoChatService(t *testing.T) {
	v := newTestView(nil, newStubSession())
	v.chatService = nil

	msg := v.performAsk("anything", domain.ModeInquiry)()
	completed, ok := msg.(messages.AskCompleted)
	require.True(t, ok)
	assert.ErrorIs(t, completed.Err, ErrNoChatService)
}

// TestView_ViewShowsModeAndGreeting tests the static chrome
func TestView_ViewShowsModeAndGreeting(t *testing.T) {
	session := newStubSession()
	v := newTestView(&stubChat{}, session)

	out := v.View()
	assert.Contains(t, out, "Docchat")
	assert.Contains(t, out, "mode: "+domain.ModeDocumentSearch.Label())
	assert.Contains(t, out, "tab switch mode")
}
