// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"fmt"

	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driven/config/file"
	anthropicllm "github.com/custodia-labs/autoanswer-cli/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/custodia-labs/autoanswer-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/autoanswer-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driven"
)

// InitResult contains the result of AI service initialisation.
type InitResult struct {
	LLMService  driven.LLMService
	PromptStore driven.PromptStore // User-customisable prompt templates.
	Warnings    []string           // Non-fatal issues, e.g. a missing API key.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.LLMService != nil {
		r.LLMService.Close()
	}
}

// InitializeAIServices builds the LLM service and prompt store from settings.
// Connectivity is not checked: an unreachable provider surfaces as failed
// questions rather than blocking every command. A missing API key leaves
// LLMService nil and adds a warning.
func InitializeAIServices(settings *domain.AppSettings, promptDir string) *InitResult {
	result := &InitResult{}

	prompts, err := file.NewPromptStore(promptDir)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("custom prompts unavailable: %v", err))
	} else {
		result.PromptStore = prompts
	}

	if settings == nil {
		return result
	}
	if !settings.LLM.IsConfigured() {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s: API key not set. Run 'autoanswer settings apikey'", settings.LLM.Provider.Description()))
		return result
	}

	llm, err := CreateLLMService(&settings.LLM)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("LLM unavailable: %v", err))
		return result
	}
	result.LLMService = llm
	return result
}

// CreateLLMService creates the appropriate LLM service based on settings.
// Returns nil if the provider is not configured.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderZAI:
		return createZAILLM(settings)

	case domain.AIProviderOpenAI:
		return createOpenAILLM(settings)

	case domain.AIProviderAnthropic:
		return createAnthropicLLM(settings)

	case domain.AIProviderOllama:
		return createOllamaLLM(settings), nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}

// createZAILLM creates a z.ai service over the OpenAI-compatible adapter.
func createZAILLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	baseURL := settings.BaseURL
	if baseURL == "" {
		baseURL = openaillm.ZAIBaseURL
	}
	return openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: baseURL,
		Model:   settings.Model,
		Name:    "z.ai",
	})
}

// createOpenAILLM creates an OpenAI LLM service.
func createOpenAILLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	return openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// createAnthropicLLM creates an Anthropic LLM service.
func createAnthropicLLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	return anthropicllm.NewLLMService(anthropicllm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// createOllamaLLM creates an Ollama LLM service.
func createOllamaLLM(settings *domain.LLMSettings) driven.LLMService {
	return ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}
