package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driven"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// EnvAPIKey overrides the stored LLM API key when set.
//
//nolint:gosec // G101: This is an environment variable name, not a credential.
const EnvAPIKey = "AUTOANSWER_API_KEY"

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider    = "llm.provider"
	keyLLMModel       = "llm.model"
	keyLLMBaseURL     = "llm.base_url"
	keyLLMAPIKey      = "llm.api_key"
	keyLLMTemperature = "llm.temperature"
	keyLLMMaxTokens   = "llm.max_tokens"
	keyFillDelayMS    = "fill.delay_ms"
	keyFillWatch      = "fill.watch"
	keyGoogleToken    = "google.access_token"
	keyGoogleRefresh  = "google.refresh_token"
	keyGoogleExpiry   = "google.expiry"
	keyGoogleClientID = "google.client_id"
	keyGoogleSecret   = "google.client_secret"
)

var googleKeys = []string{keyGoogleToken, keyGoogleRefresh, keyGoogleExpiry, keyGoogleClientID, keyGoogleSecret}

// defaultOllamaURL is used when switching to a local provider without a base URL.
const defaultOllamaURL = "http://localhost:11434"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
// The AUTOANSWER_API_KEY environment variable takes precedence over the stored key.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	apiKey := s.configStore.GetString(keyLLMAPIKey)
	if env := strings.TrimSpace(os.Getenv(EnvAPIKey)); env != "" {
		apiKey = env
	}

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider:    s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:       s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:     s.configStore.GetString(keyLLMBaseURL), // No default - empty uses the provider endpoint
			APIKey:      apiKey,
			Temperature: s.getFloat(keyLLMTemperature, defaults.LLM.Temperature),
			MaxTokens:   s.getInt(keyLLMMaxTokens, defaults.LLM.MaxTokens),
		},
		Fill: domain.FillSettings{
			Delay: s.getDelay(defaults.Fill.Delay),
			Watch: s.getBool(keyFillWatch, defaults.Fill.Watch),
		},
		Google: domain.GoogleSettings{
			ClientID:     s.configStore.GetString(keyGoogleClientID),
			ClientSecret: s.configStore.GetString(keyGoogleSecret),
			AccessToken:  s.configStore.GetString(keyGoogleToken),
			RefreshToken: s.configStore.GetString(keyGoogleRefresh),
			Expiry:       s.getTime(keyGoogleExpiry),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" && settings.LLM.APIKey != os.Getenv(EnvAPIKey) {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keyLLMTemperature, settings.LLM.Temperature); err != nil {
		return fmt.Errorf("save llm temperature: %w", err)
	}
	if err := s.configStore.Set(keyLLMMaxTokens, settings.LLM.MaxTokens); err != nil {
		return fmt.Errorf("save llm max_tokens: %w", err)
	}

	if err := s.configStore.Set(keyFillDelayMS, int(settings.Fill.Delay/time.Millisecond)); err != nil {
		return fmt.Errorf("save fill delay: %w", err)
	}
	if err := s.configStore.Set(keyFillWatch, settings.Fill.Watch); err != nil {
		return fmt.Errorf("save fill watch: %w", err)
	}

	if settings.Google.IsConfigured() {
		if err := s.saveGoogle(settings.Google); err != nil {
			return err
		}
	}

	return nil
}

// saveGoogle writes the non-empty Google credential fields.
func (s *SettingsService) saveGoogle(g domain.GoogleSettings) error {
	values := map[string]string{
		keyGoogleClientID: g.ClientID,
		keyGoogleSecret:   g.ClientSecret,
		keyGoogleToken:    g.AccessToken,
		keyGoogleRefresh:  g.RefreshToken,
	}
	if !g.Expiry.IsZero() {
		values[keyGoogleExpiry] = g.Expiry.UTC().Format(time.RFC3339)
	}
	for _, key := range googleKeys {
		v, ok := values[key]
		if !ok || v == "" {
			continue
		}
		if err := s.configStore.Set(key, v); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

// SetAPIKey stores the API key for the configured provider.
func (s *SettingsService) SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: please enter a valid API key", domain.ErrInvalidInput)
	}
	return s.configStore.Set(keyLLMAPIKey, key)
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, baseURL string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid LLM provider: %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else if defaultModel, ok := domain.DefaultLLMModels()[provider]; ok {
		settings.LLM.Model = defaultModel
	}

	switch {
	case baseURL != "":
		settings.LLM.BaseURL = strings.TrimRight(baseURL, "/")
	case provider.IsLocal():
		settings.LLM.BaseURL = defaultOllamaURL
	default:
		settings.LLM.BaseURL = ""
	}

	return s.Save(settings)
}

// SetFill updates form processing settings.
func (s *SettingsService) SetFill(delay time.Duration, watch bool) error {
	if delay < 0 {
		return fmt.Errorf("%w: delay must not be negative", domain.ErrInvalidInput)
	}
	if err := s.configStore.Set(keyFillDelayMS, int(delay/time.Millisecond)); err != nil {
		return fmt.Errorf("save fill delay: %w", err)
	}
	if err := s.configStore.Set(keyFillWatch, watch); err != nil {
		return fmt.Errorf("save fill watch: %w", err)
	}
	return nil
}

// SetGoogleToken stores the OAuth2 access token for Google sources.
// A pasted token replaces any login, and an empty token removes all Google credentials.
func (s *SettingsService) SetGoogleToken(token string) error {
	if err := s.clearGoogle(); err != nil {
		return err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.configStore.Set(keyGoogleToken, token)
}

// SetGoogleLogin stores the client and tokens obtained by an OAuth2 login.
// Fields left empty in g are kept from the stored settings.
func (s *SettingsService) SetGoogleLogin(g domain.GoogleSettings) error {
	if g.AccessToken == "" && g.RefreshToken == "" {
		return fmt.Errorf("%w: login returned no token", domain.ErrInvalidInput)
	}
	if g.RefreshToken != "" && g.ClientID == "" && s.configStore.GetString(keyGoogleClientID) == "" {
		return fmt.Errorf("%w: a refresh token needs the client ID", domain.ErrInvalidInput)
	}
	if g.Expiry.IsZero() {
		if err := s.configStore.Delete(keyGoogleExpiry); err != nil {
			return fmt.Errorf("clear google expiry: %w", err)
		}
	}
	return s.saveGoogle(g)
}

func (s *SettingsService) clearGoogle() error {
	for _, key := range googleKeys {
		if err := s.configStore.Delete(key); err != nil {
			return fmt.Errorf("clear %s: %w", key, err)
		}
	}
	return nil
}

// Validate checks the current settings can be used to answer questions.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.LLM.Provider.IsValid() {
		return fmt.Errorf("%w: invalid LLM provider: %s", domain.ErrInvalidInput, settings.LLM.Provider)
	}
	if settings.LLM.Provider.RequiresAPIKey() && settings.LLM.APIKey == "" {
		return fmt.Errorf("%w: set it with 'autoanswer settings apikey' or %s", domain.ErrAPIKeyNotSet, EnvAPIKey)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig pings the provider named by the stored LLM settings.
func (s *SettingsService) ValidateLLMConfig(ctx context.Context) error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(ctx, &settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDelay(defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(keyFillDelayMS); !exists {
		return defaultVal
	}
	ms := s.configStore.GetInt(keyFillDelayMS)
	if ms < 0 {
		return defaultVal
	}
	return time.Duration(ms) * time.Millisecond
}

// getTime parses an RFC 3339 value. Missing or malformed values are zero.
func (s *SettingsService) getTime(key string) time.Time {
	t, err := time.Parse(time.RFC3339, s.configStore.GetString(key))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
