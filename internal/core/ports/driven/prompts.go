package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return the
	// embedded default or an error when no default exists.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptSystem is the system message sent with every question.
	// This prompt has no format placeholders.
	PromptSystem = "system"

	// PromptQuestion introduces a form question.
	// The template expects a %s placeholder for the question text.
	PromptQuestion = "question"

	// PromptSummarize asks for a summary of the selection (%s).
	PromptSummarize = "summarize"

	// PromptExpand asks for an expanded version of the selection (%s).
	PromptExpand = "expand"

	// PromptAnswer asks for an academic answer to the selection (%s).
	PromptAnswer = "answer"

	// PromptImprove asks for an edited version of the selection (%s).
	PromptImprove = "improve"
)

// PromptStoreAware is an optional interface for services that can use custom prompts.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service should use hardcoded default prompts.
	SetPromptStore(store PromptStore)
}
