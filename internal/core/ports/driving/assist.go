package driving

import (
	"context"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

// AssistService runs document assistance actions over selected text.
type AssistService interface {
	// Run executes the action against the text.
	// Blank text returns domain.ErrEmptySelection.
	Run(ctx context.Context, action domain.AssistAction, text string) (*domain.AssistResult, error)

	// Available returns true if an LLM is configured.
	Available() bool
}
