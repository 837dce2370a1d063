// Package chat provides the conversation view for the TUI.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naikan-labs/docchat-cli/internal/adapters/driving/tui/messages"
	"github.com/naikan-labs/docchat-cli/internal/adapters/driving/tui/render"
	"github.com/naikan-labs/docchat-cli/internal/adapters/driving/tui/styles"
	"github.com/naikan-labs/docchat-cli/internal/core/domain"
	"github.com/naikan-labs/docchat-cli/internal/core/ports/driving"
)

// ErrNoChatService is returned when a query is submitted without a service.
var ErrNoChatService = errors.New("chat: chat service not configured")

// greeting is the assistant's opening line, shown before any turns exist.
const greeting = "Ask about the internal document corpus. " +
	"Document search finds where something is written; inquiry answers from the content. " +
	"Press tab to switch modes."

// View represents the chat view with transcript, input, and status bar.
type View struct {
	styles   *styles.Styles
	renderer *render.Renderer

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	chatService driving.ChatService
	session     driving.SessionService
	ctx         context.Context

	width   int
	height  int
	ready   bool
	waiting bool
	err     error
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, chatService driving.ChatService, session driving.SessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Type a question..."
	ti.CharLimit = 512
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(s.Theme().Primary)

	vp := viewport.New(80, 16)

	return &View{
		styles:      s,
		renderer:    render.New(s),
		input:       ti,
		viewport:    vp,
		spinner:     sp,
		chatService: chatService,
		session:     session,
		ctx:         context.Background(),
		width:       80,
		height:      24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	v.refreshTranscript()
	return textinput.Blink
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AskCompleted:
		v.handleAskCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.waiting = false
		v.err = msg.Err
		return v, nil

	case spinner.TickMsg:
		if !v.waiting {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	var cmds []tea.Cmd

	var inputCmd tea.Cmd
	v.input, inputCmd = v.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	var vpCmd tea.Cmd
	v.viewport, vpCmd = v.viewport.Update(msg)
	if vpCmd != nil {
		cmds = append(cmds, vpCmd)
	}

	return v, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		return v, func() tea.Msg { return messages.Quit{} }

	case tea.KeyTab:
		// Mode toggle applies to subsequent queries only.
		if v.session != nil && !v.waiting {
			mode := v.session.Mode().Toggle()
			v.session.SetMode(mode)
			return v, func() tea.Msg { return messages.ModeChanged{Mode: mode} }
		}
		return v, nil

	case tea.KeyCtrlL:
		if v.session != nil && !v.waiting {
			v.session.Reset()
			v.err = nil
			v.refreshTranscript()
			return v, func() tea.Msg { return messages.TranscriptCleared{} }
		}
		return v, nil

	case tea.KeyEnter:
		return v.submit()

	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}

	if v.waiting {
		// Input is frozen while an answer is pending.
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit sends the current input as a query.
func (v *View) submit() (*View, tea.Cmd) {
	if v.waiting {
		return v, nil
	}

	query := strings.TrimSpace(v.input.Value())
	if query == "" {
		return v, nil
	}

	mode := domain.ModeDocumentSearch
	if v.session != nil {
		mode = v.session.Mode()
		v.session.AppendUserTurn(query)
	}

	v.input.SetValue("")
	v.err = nil
	v.waiting = true
	v.refreshTranscript()

	return v, tea.Batch(v.spinner.Tick, v.performAsk(query, mode))
}

// performAsk runs the query through the chat service.
func (v *View) performAsk(query string, mode domain.AnswerMode) tea.Cmd {
	return func() tea.Msg {
		if v.chatService == nil {
			return messages.AskCompleted{Err: ErrNoChatService}
		}

		rec, err := v.chatService.Ask(v.ctx, query, mode)
		return messages.AskCompleted{Record: rec, Err: err}
	}
}

// handleAskCompleted records the answer and refreshes the transcript.
func (v *View) handleAskCompleted(msg messages.AskCompleted) {
	v.waiting = false

	if msg.Err != nil {
		v.err = msg.Err
		return
	}

	v.err = nil
	if v.session != nil {
		v.session.AppendAssistantTurn(msg.Record)
	}
	v.refreshTranscript()
}

// refreshTranscript re-renders the conversation into the viewport and
// scrolls to the latest turn.
func (v *View) refreshTranscript() {
	var transcript domain.Transcript
	if v.session != nil {
		transcript = v.session.Transcript()
	}

	sections := []string{v.styles.Muted.Render(greeting)}
	if len(transcript) > 0 {
		sections = append(sections, v.renderer.Transcript(transcript))
	}

	v.viewport.SetContent(strings.Join(sections, "\n\n"))
	v.viewport.GotoBottom()
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)

	header := v.styles.Title.Render("Docchat")
	sections = append(sections, header, "")

	sections = append(sections, v.viewport.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.waiting {
		sections = append(sections, v.spinner.View()+v.styles.Muted.Render(" thinking..."), "")
	}

	sections = append(sections, v.styles.InputField.Render(v.input.View()), "")
	sections = append(sections, v.statusLine())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// statusLine renders the mode indicator and key hints.
func (v *View) statusLine() string {
	mode := domain.ModeDocumentSearch
	if v.session != nil {
		mode = v.session.Mode()
	}

	left := v.styles.Subtitle.Render("mode: " + mode.Label())
	right := v.styles.Help.Render("tab switch mode · ctrl+l clear · esc quit")
	return v.styles.StatusBar.Render(left + "  " + right)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.Width = width - 8
	// Reserve space for header, input box, status, and padding.
	vpHeight := height - 10
	if vpHeight < 3 {
		vpHeight = 3
	}
	v.viewport.Width = width
	v.viewport.Height = vpHeight
	v.refreshTranscript()
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Waiting returns whether an answer is pending.
func (v *View) Waiting() bool {
	return v.waiting
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Input returns the current input value.
func (v *View) Input() string {
	return v.input.Value()
}

// SetInput sets the input value.
func (v *View) SetInput(value string) {
	v.input.SetValue(value)
}
