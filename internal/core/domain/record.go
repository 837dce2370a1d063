package domain

import "fmt"

// SubChoice is a secondary citation: a distinct-source document offered as
// an alternative location in document-search mode.
type SubChoice struct {
	// Source is the document path.
	Source string

	// Page is the zero-based page index, nil when unavailable.
	Page *int
}

// DisplayRecord is the canonical, mode-tagged record stored in the
// transcript and replayed by the renderer. Exactly one field group is
// populated, discriminated by Mode.
//
// Pages are stored zero-based and displayed one-based.
type DisplayRecord struct {
	// Mode discriminates the variant.
	Mode AnswerMode

	// Document-search fields.

	// MainMessage introduces the main citation.
	MainMessage string
	// MainFilePath is the most relevant document's path.
	MainFilePath string
	// MainPage is the main document's page, nil when unavailable.
	MainPage *int
	// SubMessage introduces the sub-choices. Empty when there are none.
	SubMessage string
	// SubChoices lists alternative document locations in relevance order.
	SubChoices []SubChoice
	// NoFilePath marks a "no relevant document found" outcome. Such a
	// record carries only Answer and renders as plain text.
	NoFilePath bool

	// Inquiry fields.

	// Answer is the generated answer text. Also set on NoFilePath records.
	Answer string
	// SourceLabel heads the citation block. Empty when there is none.
	SourceLabel string
	// FileInfoList holds pre-formatted citation entries, one per distinct
	// source, in first-occurrence order. Nil when the answer is the
	// no-match sentinel.
	FileInfoList []string
}

// NormalizeDocumentSearch maps a raw retrieval result to a document-search
// display record.
//
// An empty context or the no-match sentinel yields a NoFilePath record.
// Otherwise the top-ranked passage becomes the main citation and the rest
// become sub-choices, deduplicated by source path only: the main path is
// excluded, and only the first (highest-ranked) occurrence of each other
// source survives, regardless of page.
func NormalizeDocumentSearch(raw RetrievalResult) DisplayRecord {
	if len(raw.Context) == 0 || raw.Answer == AnswerNoDocMatch {
		return DisplayRecord{
			Mode:       ModeDocumentSearch,
			NoFilePath: true,
			Answer:     MessageNoDocMatch,
		}
	}

	main := raw.Context[0]
	rec := DisplayRecord{
		Mode:         ModeDocumentSearch,
		MainMessage:  MessageMain,
		MainFilePath: main.Source,
		MainPage:     main.Page,
	}

	seen := make(map[string]bool)
	for _, p := range raw.Context[1:] {
		if p.Source == rec.MainFilePath || seen[p.Source] {
			continue
		}
		seen[p.Source] = true
		rec.SubChoices = append(rec.SubChoices, SubChoice{Source: p.Source, Page: p.Page})
	}
	if len(rec.SubChoices) > 0 {
		rec.SubMessage = MessageSub
	}

	return rec
}

// NormalizeInquiry maps a raw retrieval result to an inquiry display record.
//
// The no-match sentinel yields a bare answer with no citation block.
// Otherwise each distinct source in the context contributes one formatted
// citation entry, in first-occurrence order; later passages from an
// already-cited source are dropped regardless of page.
func NormalizeInquiry(raw RetrievalResult) DisplayRecord {
	rec := DisplayRecord{
		Mode:   ModeInquiry,
		Answer: raw.Answer,
	}
	if raw.Answer == AnswerNoInquiryMatch {
		return rec
	}

	rec.SourceLabel = LabelSource
	rec.FileInfoList = []string{}
	seen := make(map[string]bool)
	for _, p := range raw.Context {
		if seen[p.Source] {
			continue
		}
		seen[p.Source] = true
		rec.FileInfoList = append(rec.FileInfoList, FormatFileInfo(p.Source, p.Page))
	}

	return rec
}

// FormatFileInfo renders a citation entry: "path (page N)" when a page is
// known, else just the path. The stored zero-based page is shown one-based.
func FormatFileInfo(source string, page *int) string {
	if page != nil {
		return fmt.Sprintf("%s (page %d)", source, *page+1)
	}
	return source
}

// CoerceRecord normalises an assistant turn's stored content into a
// DisplayRecord. This is the single migration point for legacy content:
// records pass through, plain strings (the pre-record history format)
// become inquiry answers, and anything else is stringified rather than
// rejected so one malformed turn can never break transcript rendering.
func CoerceRecord(content any) DisplayRecord {
	switch v := content.(type) {
	case nil:
		return DisplayRecord{Mode: ModeInquiry}
	case DisplayRecord:
		return v
	case *DisplayRecord:
		if v != nil {
			return *v
		}
		return DisplayRecord{Mode: ModeInquiry}
	case string:
		return DisplayRecord{Mode: ModeInquiry, Answer: v}
	default:
		return DisplayRecord{Mode: ModeInquiry, Answer: fmt.Sprint(v)}
	}
}
