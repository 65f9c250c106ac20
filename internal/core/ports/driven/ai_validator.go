package driven

import (
	"context"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

// AIConfigValidator checks LLM settings against the live provider
// before they are relied on for answering.
type AIConfigValidator interface {
	// ValidateLLM pings the provider described by config.
	// Settings that are not configured yet validate as nil.
	ValidateLLM(ctx context.Context, config *domain.LLMSettings) error
}
