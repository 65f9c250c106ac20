package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driven"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driving"
	"github.com/custodia-labs/autoanswer-cli/internal/logger"
)

// Ensure AssistService implements the interfaces.
var (
	_ driving.AssistService   = (*AssistService)(nil)
	_ driven.PromptStoreAware = (*AssistService)(nil)
)

// AssistService runs summarise/expand/answer/improve/generate actions
// over a piece of document text.
type AssistService struct {
	llm      driven.LLMService
	prompts  prompter
	chatOpts driven.ChatOptions
}

// NewAssistService creates a new assist service.
// The llm parameter may be nil; Run then returns domain.ErrLLMUnavailable.
func NewAssistService(llm driven.LLMService, settings domain.AppSettings) *AssistService {
	return &AssistService{
		llm: llm,
		chatOpts: driven.ChatOptions{
			MaxTokens:   settings.LLM.MaxTokens,
			Temperature: settings.LLM.Temperature,
		},
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *AssistService) SetPromptStore(store driven.PromptStore) {
	s.prompts = prompter{store: store}
}

// Available returns true if an LLM is configured.
func (s *AssistService) Available() bool {
	return s.llm != nil
}

// Run executes the action against the text.
func (s *AssistService) Run(ctx context.Context, action domain.AssistAction, text string) (*domain.AssistResult, error) {
	if !action.IsValid() {
		return nil, fmt.Errorf("%w: unknown assist action %q", domain.ErrInvalidInput, action)
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptySelection
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	logger.Section("Assist: " + action.Title())
	prompt := s.prompts.assist(action, text)
	logger.Debug("Prompt: %q", prompt)

	reply, err := s.llm.Chat(ctx, []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: s.prompts.system()},
		{Role: driven.RoleUser, Content: prompt},
	}, s.chatOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", strings.ToLower(action.Title()), err)
	}

	return &domain.AssistResult{
		Action:  action,
		Title:   action.Title(),
		Content: strings.TrimSpace(reply),
	}, nil
}
