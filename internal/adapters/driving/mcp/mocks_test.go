package mcp

import (
	"context"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driving"
	"github.com/custodia-labs/autoanswer-cli/internal/core/reconcile"
)

// mockAnswerService answers every question with a fixed reply.
type mockAnswerService struct {
	reply    string
	err      error
	received []domain.Question
}

func (m *mockAnswerService) AnswerQuestion(_ context.Context, q domain.Question) (domain.Outcome, error) {
	m.received = append(m.received, q)
	if m.err != nil {
		return domain.Outcome{}, m.err
	}
	match := reconcile.Reconcile(q, m.reply)
	status := domain.OutcomeAnswered
	if !match.Matched() {
		status = domain.OutcomeSkipped
	}
	return domain.Outcome{
		QuestionID:   q.ID,
		QuestionText: q.Text,
		FieldType:    q.FieldType,
		Options:      q.Options,
		Answer:       m.reply,
		Match:        match,
		Status:       status,
	}, nil
}

func (m *mockAnswerService) AnswerForm(
	_ context.Context, _ *domain.Form, _ driving.AnswerOptions,
) (*domain.Run, error) {
	return &domain.Run{}, m.err
}

// mockAssistService echoes the action title and text.
type mockAssistService struct {
	err error
}

func (m *mockAssistService) Run(
	_ context.Context, action domain.AssistAction, text string,
) (*domain.AssistResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.AssistResult{Action: action, Title: action.Title(), Content: "re: " + text}, nil
}

func (m *mockAssistService) Available() bool {
	return true
}
