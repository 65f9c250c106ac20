package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driven"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driving"
	"github.com/custodia-labs/autoanswer-cli/internal/core/reconcile"
	"github.com/custodia-labs/autoanswer-cli/internal/logger"
)

// Ensure AnswerService implements the interfaces.
var (
	_ driving.AnswerService   = (*AnswerService)(nil)
	_ driven.PromptStoreAware = (*AnswerService)(nil)
)

// AnswerService asks the LLM each question and reconciles the reply
// against the question's options.
type AnswerService struct {
	llm      driven.LLMService
	runStore driven.RunStore
	prompts  prompter
	chatOpts driven.ChatOptions
	delay    time.Duration
	now      func() time.Time
}

// NewAnswerService creates a new answer service.
// The runStore parameter is optional; without it runs are not persisted.
func NewAnswerService(llm driven.LLMService, runStore driven.RunStore, settings domain.AppSettings) *AnswerService {
	return &AnswerService{
		llm:      llm,
		runStore: runStore,
		chatOpts: driven.ChatOptions{
			MaxTokens:   settings.LLM.MaxTokens,
			Temperature: settings.LLM.Temperature,
		},
		delay: settings.Fill.Delay,
		now:   time.Now,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *AnswerService) SetPromptStore(store driven.PromptStore) {
	s.prompts = prompter{store: store}
}

// AnswerQuestion answers a single question.
// Returns domain.ErrLLMUnavailable without an LLM, and ctx.Err() when the
// context ends mid-request. Any other LLM failure is an OutcomeFailed.
func (s *AnswerService) AnswerQuestion(ctx context.Context, q domain.Question) (domain.Outcome, error) {
	outcome := domain.Outcome{
		QuestionID:   q.ID,
		QuestionText: q.Text,
		FieldType:    q.FieldType,
		Options:      q.Options,
		Match:        domain.MatchResult{Kind: q.Kind, SelectedIndex: -1},
	}

	if s.llm == nil {
		return outcome, domain.ErrLLMUnavailable
	}

	if err := q.Validate(); err != nil {
		logger.Warn("Question %s unsupported: %v", q.ID, err)
		outcome.Status = domain.OutcomeUnsupported
		outcome.Error = err.Error()
		return outcome, nil
	}

	logger.Section("Question " + q.ID)
	prompt := s.prompts.question(q)
	logger.Debug("Prompt: %q", prompt)

	answer, err := s.llm.Chat(ctx, []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: s.prompts.system()},
		{Role: driven.RoleUser, Content: prompt},
	}, s.chatOpts)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return outcome, ctxErr
		}
		logger.Error("API error for question %s: %v", q.ID, err)
		outcome.Status = domain.OutcomeFailed
		outcome.Error = err.Error()
		return outcome, nil
	}

	outcome.Answer = strings.TrimSpace(answer)
	logger.Debug("Answer: %q", outcome.Answer)

	outcome.Match = reconcile.Reconcile(q, answer)
	if outcome.Match.Matched() {
		outcome.Status = domain.OutcomeAnswered
		logger.Debug("Selected: %q", outcome.Selected())
	} else {
		outcome.Status = domain.OutcomeSkipped
		logger.Debug("No option matched, leaving for review")
	}

	return outcome, nil
}

// AnswerForm answers every question of the form not listed in opts.Processed.
// Questions are answered sequentially, paced by the configured delay.
// On cancellation the partial run is saved and returned with ctx.Err().
func (s *AnswerService) AnswerForm(ctx context.Context, form *domain.Form, opts driving.AnswerOptions) (*domain.Run, error) {
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	if form == nil {
		return nil, fmt.Errorf("%w: form is required", domain.ErrInvalidInput)
	}

	delay := opts.Delay
	if delay == 0 {
		delay = s.delay
	}
	pace := newPacer(delay)

	run := &domain.Run{
		ID:        uuid.New().String(),
		FormID:    form.ID,
		FormTitle: form.Title,
		Model:     s.llm.ModelName(),
		StartedAt: s.now(),
	}

	logger.Section("Answer Form")
	logger.Debug("Form %q: %d questions, delay %s", form.ID, len(form.Questions), delay)

	var runErr error
	for i := range form.Questions {
		q := form.Questions[i]
		if opts.Processed[q.ID] {
			logger.Debug("Skipping processed question %s", q.ID)
			continue
		}

		if err := pace.Wait(ctx); err != nil {
			runErr = ctxError(ctx, err)
			break
		}

		outcome, err := s.AnswerQuestion(ctx, q)
		if err != nil {
			runErr = err
			break
		}

		if opts.Processed != nil {
			opts.Processed[q.ID] = true
		}
		run.Outcomes = append(run.Outcomes, outcome)
		if opts.Observer != nil {
			opts.Observer(i, outcome)
		}
	}

	run.FinishedAt = s.now()
	summary := run.Summary()
	logger.Info("Run %s: %d answered, %d skipped, %d failed, %d unsupported",
		run.ID, summary.Answered, summary.Skipped, summary.Failed, summary.Unsupported)

	if s.runStore != nil && !opts.SkipHistory && len(run.Outcomes) > 0 {
		// Partial runs are saved after cancellation too.
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		if err := s.runStore.Save(saveCtx, run); err != nil {
			logger.Warn("Failed to save run %s: %v", run.ID, err)
		}
		cancel()
	}

	return run, runErr
}

// ctxError prefers the context's own error over the limiter's wrapping of it.
func ctxError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
