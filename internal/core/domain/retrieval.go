package domain

// RetrievedPassage is a single passage returned by the retrieval pipeline.
type RetrievedPassage struct {
	// Source is the originating document path or identifier.
	Source string

	// Page is the zero-based page index. Nil for formats without
	// pagination (web pages, plain text).
	Page *int

	// Content is the passage text used as generation context.
	Content string

	// Score is the relevance score reported by the vector index.
	Score float64
}

// RetrievalResult is the raw output of the retrieval+generation pipeline.
// Context is ordered by descending relevance: index 0 is the most relevant
// passage, and the normalisers depend on that ordering.
type RetrievalResult struct {
	// Answer is the generated answer, or one of the sentinel answers
	// when nothing usable was found.
	Answer string

	// Context holds the passages the answer was generated from.
	Context []RetrievedPassage
}

// Sentinel answers. The prompts instruct the model to emit these verbatim
// when the retrieved context cannot support an answer, and the normalisers
// compare against them to detect the no-match case.
const (
	// AnswerNoDocMatch is the document-search no-match sentinel.
	AnswerNoDocMatch = "no relevant document found"

	// AnswerNoInquiryMatch is the inquiry no-match sentinel.
	AnswerNoInquiryMatch = "I could not find the information needed to answer your question."
)

// User-facing display strings.
const (
	// MessageNoDocMatch replaces the sentinel in document-search mode.
	MessageNoDocMatch = "No internal documents related to your input were found."

	// MessageMain introduces the main document citation.
	MessageMain = "Information related to your input may be found in the following file:"

	// MessageSub introduces the sub-document candidates.
	MessageSub = "Other candidate locations:"

	// LabelSource heads the citation block in inquiry mode.
	LabelSource = "Source"
)
