package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

func TestInitResult_Close(t *testing.T) {
	result := &InitResult{}
	// Should not panic
	result.Close()
}

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name      string
		settings  *domain.LLMSettings
		wantNil   bool
		wantModel string
	}{
		{
			name:     "nil settings returns nil",
			settings: nil,
			wantNil:  true,
		},
		{
			name:     "missing API key returns nil",
			settings: &domain.LLMSettings{Provider: domain.AIProviderZAI},
			wantNil:  true,
		},
		{
			name:      "zai provider",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderZAI, APIKey: "k", Model: "z-code-2"},
			wantModel: "z-code-2",
		},
		{
			name:      "openai provider",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderOpenAI, APIKey: "k", Model: "gpt-4o-mini"},
			wantModel: "gpt-4o-mini",
		},
		{
			name:      "anthropic provider",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderAnthropic, APIKey: "k", Model: "claude"},
			wantModel: "claude",
		},
		{
			name:      "ollama provider needs no key",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderOllama, Model: "llama3.2"},
			wantModel: "llama3.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings)
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, svc)
				return
			}
			require.NotNil(t, svc)
			assert.Equal(t, tt.wantModel, svc.ModelName())
			assert.NoError(t, svc.Close())
		})
	}
}

func TestInitializeAIServices(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.LLM.APIKey = "k"

	result := InitializeAIServices(&settings, t.TempDir())
	defer result.Close()

	require.NotNil(t, result.LLMService)
	assert.Equal(t, "z-code-2", result.LLMService.ModelName())
	assert.NotNil(t, result.PromptStore)
	assert.Empty(t, result.Warnings)
}

func TestInitializeAIServices_MissingKey(t *testing.T) {
	settings := domain.DefaultAppSettings()

	result := InitializeAIServices(&settings, t.TempDir())

	assert.Nil(t, result.LLMService)
	assert.NotNil(t, result.PromptStore)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "API key not set")
}
