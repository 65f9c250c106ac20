package driven

import "context"

// LLMService sends chat completions to one configured model.
// Adapters exist for z.ai, OpenAI, Anthropic and Ollama.
type LLMService interface {
	// Chat returns the assistant's reply to messages.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	ModelName() string

	// Ping makes the cheapest request that proves the key and model work.
	Ping(ctx context.Context) error

	Close() error
}

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    string
	Content string
}

// ChatOptions tunes a single completion. Zero values use provider defaults.
type ChatOptions struct {
	MaxTokens   int
	Temperature float64
}
