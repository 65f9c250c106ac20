package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetAPIKey stores the API key for the configured provider.
	SetAPIKey(key string) error

	// SetLLMProvider configures the LLM provider. Empty model or base URL
	// fall back to the provider defaults.
	SetLLMProvider(provider domain.AIProvider, model, baseURL string) error

	// SetFill updates form processing settings.
	SetFill(delay time.Duration, watch bool) error

	// SetGoogleToken stores a pasted OAuth2 access token for Google sources.
	// It replaces any stored login; an empty token removes Google access.
	SetGoogleToken(token string) error

	// SetGoogleLogin stores the client and tokens from an OAuth2 login or refresh.
	SetGoogleLogin(g domain.GoogleSettings) error

	// Validate checks the current settings can be used to answer questions.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateLLMConfig pings the configured LLM provider.
	ValidateLLMConfig(ctx context.Context) error
}
