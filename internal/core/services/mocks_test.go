package services

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driven"
)

// mockLLMService implements driven.LLMService for testing.
// Replies are chosen by the first key contained in the user message.
type mockLLMService struct {
	mu       sync.Mutex
	replies  map[string]string
	fallback string
	err      error
	calls    [][]driven.ChatMessage
	opts     []driven.ChatOptions
}

func (m *mockLLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, messages)
	m.opts = append(m.opts, opts)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.err != nil {
		return "", m.err
	}
	user := messages[len(messages)-1].Content
	for key, reply := range m.replies {
		if strings.Contains(user, key) {
			return reply, nil
		}
	}
	return m.fallback, nil
}

func (m *mockLLMService) ModelName() string {
	return "mock-model"
}

func (m *mockLLMService) Ping(_ context.Context) error {
	return nil
}

func (m *mockLLMService) Close() error {
	return nil
}

func (m *mockLLMService) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
