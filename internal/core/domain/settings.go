package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies a chat-completion service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderZAI is the z.ai cloud API (OpenAI-compatible).
	AIProviderZAI AIProvider = "zai"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderZAI, AIProviderOpenAI, AIProviderAnthropic, AIProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderZAI || p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderZAI:
		return "z.ai (cloud)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderOllama:
		return "Ollama (local)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint. Empty uses the provider default.
	BaseURL string

	// APIKey is the API key (for cloud providers).
	APIKey string

	// Temperature controls randomness of answers.
	Temperature float64

	// MaxTokens caps the length of each answer.
	MaxTokens int
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// FillSettings controls how forms are processed.
type FillSettings struct {
	// Delay is the pause between consecutive questions.
	Delay time.Duration

	// Watch keeps answering as new questions appear in a form file.
	Watch bool
}

// GoogleSettings holds credentials for the Google Forms and Docs sources.
// Either a pasted access token or the result of "settings google-login".
type GoogleSettings struct {
	// ClientID and ClientSecret identify the OAuth2 desktop client used to log in.
	ClientID     string
	ClientSecret string

	// AccessToken is an OAuth2 bearer token with forms/documents read scope.
	AccessToken string

	// RefreshToken renews AccessToken after it expires.
	RefreshToken string

	// Expiry is when AccessToken stops working. Zero means unknown.
	Expiry time.Time
}

// CanRefresh returns true if expired access tokens can be renewed.
func (g GoogleSettings) CanRefresh() bool {
	return g.RefreshToken != "" && g.ClientID != ""
}

// IsConfigured returns true if a Google access token is available.
func (g GoogleSettings) IsConfigured() bool {
	return g.AccessToken != "" || g.CanRefresh()
}

// AppSettings holds all application settings.
type AppSettings struct {
	// LLM holds LLM provider settings.
	LLM LLMSettings

	// Fill holds form processing settings.
	Fill FillSettings

	// Google holds Google API credentials.
	Google GoogleSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The API key is left empty; users must set it before answering.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{
			Provider:    AIProviderZAI,
			Model:       DefaultLLMModels()[AIProviderZAI],
			Temperature: 0.3,
			MaxTokens:   500,
		},
		Fill: FillSettings{
			Delay: time.Second,
		},
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderZAI,
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderOllama,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderZAI:       "z-code-2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
		AIProviderOllama:    "llama3.2",
	}
}
