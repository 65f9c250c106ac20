package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driven"
)

func TestConfigValidator_ValidateLLM_NothingToValidate(t *testing.T) {
	validator := NewConfigValidator()

	assert.NoError(t, validator.ValidateLLM(context.Background(), nil))
	assert.NoError(t, validator.ValidateLLM(context.Background(), &domain.LLMSettings{Provider: domain.AIProviderZAI}))
}

func TestConfigValidator_ValidateLLM_PingsProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models":[{"name":"llama3.2:latest","model":"llama3.2:latest"}]}`))
	}))
	defer server.Close()

	err := NewConfigValidator().ValidateLLM(context.Background(), &domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  server.URL,
		Model:    "llama3.2",
	})
	assert.NoError(t, err)
}

func TestConfigValidator_ValidateLLM_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	err := NewConfigValidator().ValidateLLM(context.Background(), &domain.LLMSettings{
		Provider: domain.AIProviderOpenAI,
		APIKey:   "bad",
		BaseURL:  server.URL,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.Contains(t, err.Error(), "OpenAI (cloud) unreachable")
	assert.Contains(t, err.Error(), "autoanswer settings llm")
}

func TestConfigValidator_ValidateLLM_Unreachable(t *testing.T) {
	err := NewConfigValidator().ValidateLLM(context.Background(), &domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  "http://127.0.0.1:1",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestConfigValidator_ValidateLLM_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	start := time.Now()
	err := NewConfigValidator().WithTimeout(50*time.Millisecond).ValidateLLM(context.Background(), &domain.LLMSettings{
		Provider: domain.AIProviderZAI,
		APIKey:   "k",
		BaseURL:  server.URL,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestConfigValidator_ValidateLLM_CreateError(t *testing.T) {
	v := NewConfigValidator()
	v.create = func(*domain.LLMSettings) (driven.LLMService, error) {
		return nil, errors.New("bad base url")
	}

	err := v.ValidateLLM(context.Background(), &domain.LLMSettings{Provider: domain.AIProviderZAI, APIKey: "k"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.Contains(t, err.Error(), "bad base url")
}

func TestConfigValidator_WithTimeout_IgnoresNonPositive(t *testing.T) {
	v := NewConfigValidator().WithTimeout(0).WithTimeout(-time.Second)
	assert.Equal(t, DefaultPingTimeout, v.timeout)
}
