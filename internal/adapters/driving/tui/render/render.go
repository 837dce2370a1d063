// Package render turns transcript turns into terminal output. The renderer
// is pure string building so the chat view, the one-shot command, and tests
// all share the exact same presentation.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/naikan-labs/docchat-cli/internal/adapters/driving/tui/styles"
	"github.com/naikan-labs/docchat-cli/internal/core/domain"
)

// Turn labels shown in the conversation.
const (
	userLabel      = "You"
	assistantLabel = "Docchat"
)

// divider separates the answer from its citation block in inquiry mode.
const divider = "──────────"

// Renderer renders display records and transcripts with a style set.
type Renderer struct {
	styles *styles.Styles
}

// New creates a renderer. A nil style set falls back to the defaults.
func New(s *styles.Styles) *Renderer {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Renderer{styles: s}
}

// Record renders one assistant display record.
//
// Document-search records render the main citation and any sub-choices;
// a no-match record renders its answer text alone. Inquiry records render
// the answer followed by the citation block when one exists.
func (r *Renderer) Record(rec domain.DisplayRecord) string {
	if rec.Mode == domain.ModeDocumentSearch && !rec.NoFilePath {
		return r.renderDocumentSearch(rec)
	}
	return r.renderInquiry(rec)
}

// Turn renders a single transcript turn with its speaker label.
// Assistant content is coerced so legacy string turns render identically
// to their record form.
func (r *Renderer) Turn(t domain.Turn) string {
	if t.Role == domain.RoleUser {
		return r.styles.UserLabel.Render(userLabel) + "\n" + r.styles.Normal.Render(t.Text)
	}
	return r.styles.AssistantLabel.Render(assistantLabel) + "\n" + r.Record(domain.CoerceRecord(t.Content))
}

// Transcript replays the whole conversation, oldest turn first.
func (r *Renderer) Transcript(tr domain.Transcript) string {
	sections := make([]string, 0, len(tr))
	for _, t := range tr {
		sections = append(sections, r.Turn(t))
	}
	return strings.Join(sections, "\n\n")
}

// renderDocumentSearch renders the citation-first variant.
func (r *Renderer) renderDocumentSearch(rec domain.DisplayRecord) string {
	lines := []string{
		r.styles.Normal.Render(rec.MainMessage),
		r.styles.Citation.Render(citationLine(rec.MainFilePath, rec.MainPage)),
	}

	if len(rec.SubChoices) > 0 {
		lines = append(lines, r.styles.Normal.Render(rec.SubMessage))
		for _, sub := range rec.SubChoices {
			lines = append(lines, r.styles.SubCitation.Render(citationLine(sub.Source, sub.Page)))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderInquiry renders the answer-first variant. Also covers no-match
// document-search records, which carry only their answer text.
func (r *Renderer) renderInquiry(rec domain.DisplayRecord) string {
	lines := []string{r.styles.Normal.Render(rec.Answer)}

	if rec.SourceLabel != "" {
		lines = append(lines,
			r.styles.Muted.Render(divider),
			r.styles.SourceLabel.Render(rec.SourceLabel+":"),
		)
		for _, info := range rec.FileInfoList {
			icon := domain.ResolveIcon(stripPageSuffix(info))
			lines = append(lines, r.styles.SubCitation.Render(icon.Glyph()+" "+info))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// citationLine renders "<glyph> path (page N)" for a document citation.
func citationLine(source string, page *int) string {
	return domain.ResolveIcon(source).Glyph() + " " + domain.FormatFileInfo(source, page)
}

// stripPageSuffix removes a trailing " (page N)" so icon resolution sees
// the bare source path.
func stripPageSuffix(info string) string {
	if i := strings.LastIndex(info, " (page "); i >= 0 && strings.HasSuffix(info, ")") {
		return info[:i]
	}
	return info
}
