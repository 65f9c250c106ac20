// Package openai provides an LLM service adapter for OpenAI-compatible
// chat-completion APIs, including OpenAI itself and z.ai.
package openai

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driven/llm/chatapi"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driven"
	"github.com/custodia-labs/autoanswer-cli/internal/logger"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultBaseURL  = "https://api.openai.com/v1"
	ZAIBaseURL      = "https://api.z.ai/v1"
	DefaultLLMModel = "gpt-4o-mini"
)

// LLMConfig holds configuration for an OpenAI-compatible LLM service.
type LLMConfig struct {
	// APIKey is the bearer token (required).
	APIKey string

	// BaseURL is the API root. Empty uses DefaultBaseURL; z.ai uses ZAIBaseURL.
	BaseURL string

	// Model defaults to DefaultLLMModel.
	Model string

	// Name labels the provider in errors (default "openai").
	Name string

	// Timeout bounds each request attempt.
	Timeout time.Duration

	// MaxRetries bounds retries of rate-limited or failed requests.
	MaxRetries int
}

// LLMService answers over /chat/completions.
type LLMService struct {
	api   *chatapi.Client
	model string
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message      message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
}

// NewLLMService creates an OpenAI-compatible LLM service.
func NewLLMService(cfg LLMConfig) (*LLMService, error) {
	if cfg.Name == "" {
		cfg.Name = "openai"
	}
	if cfg.APIKey == "" {
		return nil, errors.New(cfg.Name + ": API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}

	return &LLMService{
		api: chatapi.New(chatapi.Config{
			Provider:   cfg.Name,
			BaseURL:    cfg.BaseURL,
			Header:     http.Header{"Authorization": {"Bearer " + cfg.APIKey}},
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
		}),
		model: cfg.Model,
	}, nil
}

// Chat returns the first choice of a completion.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	req := completionRequest{
		Model:       s.model,
		Messages:    make([]message, len(messages)),
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}
	for i, m := range messages {
		req.Messages[i] = message{Role: m.Role, Content: m.Content}
	}

	var resp completionResponse
	if err := s.api.Post(ctx, "/chat/completions", req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New(s.api.Provider() + ": no response choices returned")
	}

	choice := resp.Choices[0]
	if choice.FinishReason == "length" {
		logger.Debug("%s reply cut off at %d tokens", s.api.Provider(), opts.MaxTokens)
	}
	return choice.Message.Content, nil
}

// ModelName returns the configured model.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping lists models, which checks the key without running inference.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.api.Get(ctx, "/models", nil)
}

// Close releases resources.
func (s *LLMService) Close() error {
	return nil
}
