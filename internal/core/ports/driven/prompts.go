package driven

// Prompt names used with the PromptStore.
const (
	// PromptSystem is the system prompt shared by both modes.
	PromptSystem = "system"

	// PromptDocSearch frames the document-search question. It takes the
	// context block and the query as fmt verbs.
	PromptDocSearch = "doc_search"

	// PromptInquiry frames the inquiry question. It takes the context
	// block and the query as fmt verbs.
	PromptInquiry = "inquiry"
)

// PromptStore loads named prompt templates. Implementations fall back to
// embedded defaults when a user-customised prompt is unavailable.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)
}
