package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driven"
)

var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// DefaultPingTimeout bounds a single connectivity check.
const DefaultPingTimeout = 5 * time.Second

// ConfigValidator checks that LLM settings reach a working provider.
type ConfigValidator struct {
	timeout time.Duration
	create  func(*domain.LLMSettings) (driven.LLMService, error)
}

// NewConfigValidator returns a validator using DefaultPingTimeout.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{timeout: DefaultPingTimeout, create: CreateLLMService}
}

// WithTimeout overrides the ping timeout. Non-positive values are ignored.
func (v *ConfigValidator) WithTimeout(d time.Duration) *ConfigValidator {
	if d > 0 {
		v.timeout = d
	}
	return v
}

// ValidateLLM builds a service from config and pings it.
// Unconfigured settings have nothing to check and return nil.
func (v *ConfigValidator) ValidateLLM(ctx context.Context, config *domain.LLMSettings) error {
	if config == nil || !config.IsConfigured() {
		return nil
	}

	svc, err := v.create(config)
	if err != nil {
		return fmt.Errorf("%w: %w. Run 'autoanswer settings llm' to fix", domain.ErrLLMUnavailable, err)
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %s unreachable (%w). Run 'autoanswer settings llm' to fix",
			domain.ErrLLMUnavailable, config.Provider.Description(), err)
	}
	return nil
}
