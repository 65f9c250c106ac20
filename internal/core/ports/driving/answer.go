package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

// AnswerService answers form questions through the LLM and reconciles the
// replies against each question's options.
type AnswerService interface {
	// AnswerQuestion answers a single question.
	// LLM failures are reported in the outcome status, not as an error.
	AnswerQuestion(ctx context.Context, q domain.Question) (domain.Outcome, error)

	// AnswerForm answers every unprocessed question of a form in order.
	AnswerForm(ctx context.Context, form *domain.Form, opts AnswerOptions) (*domain.Run, error)
}

// Observer receives each outcome as soon as its question is processed.
type Observer func(index int, outcome domain.Outcome)

// AnswerOptions configures a form run.
type AnswerOptions struct {
	// Delay paces consecutive LLM requests. Zero uses the configured delay.
	Delay time.Duration

	// Processed holds question IDs that must not be answered again.
	// Newly answered IDs are added to it.
	Processed map[string]bool

	// Observer is called after each question. Optional.
	Observer Observer

	// SkipHistory disables persisting the run.
	SkipHistory bool
}

// FormWatcher answers a form file again whenever it changes.
type FormWatcher interface {
	// Watch blocks until ctx is cancelled, answering new questions as the
	// file at path gains them.
	Watch(ctx context.Context, path string, opts AnswerOptions) error
}
