package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/reconcile"
)

// ResolveInput is the input schema for the resolve_choice tool.
type ResolveInput struct {
	Kind    string   `json:"kind" jsonschema:"how to reconcile the answer: single, multi or text"`
	Answer  string   `json:"answer" jsonschema:"the answer text to reconcile"`
	Options []string `json:"options,omitempty" jsonschema:"candidate option labels in display order"`
}

// MatchOutput is the reconciler's decision with the chosen labels resolved.
type MatchOutput struct {
	Kind            domain.QuestionKind `json:"kind"`
	Verbatim        string              `json:"verbatim,omitempty"`
	SelectedIndex   int                 `json:"selected_index"`
	HasSelection    bool                `json:"has_selection"`
	SelectedIndices []int               `json:"selected_indices,omitempty"`
	Labels          []string            `json:"labels"`
}

// AnswerInput is the input schema for the answer_question tool.
type AnswerInput struct {
	Text      string   `json:"text" jsonschema:"the question as shown on the form"`
	FieldType string   `json:"field_type,omitempty" jsonschema:"short_answer, paragraph, multiple_choice, checkbox or dropdown (default short_answer)"`
	Options   []string `json:"options,omitempty" jsonschema:"option labels for choice questions"`
}

// AnswerOutput is the output schema for the answer_question tool.
type AnswerOutput struct {
	Answer   string               `json:"answer"`
	Status   domain.OutcomeStatus `json:"status"`
	Selected []string             `json:"selected"`
	Match    domain.MatchResult   `json:"match"`
	Error    string               `json:"error,omitempty"`
}

// AssistInput is the input schema for the assist tool.
type AssistInput struct {
	Action string `json:"action" jsonschema:"summarize, expand, answer, improve or generate"`
	Text   string `json:"text" jsonschema:"the selected text, or the prompt for generate"`
}

// AssistOutput is the output schema for the assist tool.
type AssistOutput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve_choice",
		Description: "Match an answer against a question's options without calling an LLM",
	}, s.handleResolve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "answer_question",
		Description: "Answer a form question with the configured LLM and reconcile the reply",
	}, s.handleAnswer)

	if s.ports.Assist != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "assist",
			Description: "Summarize, expand, answer, improve or generate text",
		}, s.handleAssist)
	}
}

// handleResolve runs the reconciler directly.
func (s *Server) handleResolve(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ResolveInput,
) (*mcp.CallToolResult, MatchOutput, error) {
	result := domain.MatchResult{SelectedIndex: -1}

	switch strings.ToLower(input.Kind) {
	case "single", string(domain.KindSingleChoice):
		result.Kind = domain.KindSingleChoice
		result.SelectedIndex, result.HasSelection = reconcile.ResolveSingleChoice(input.Answer, input.Options)
	case "multi", string(domain.KindMultiChoice):
		result.Kind = domain.KindMultiChoice
		result.SelectedIndices = reconcile.ResolveMultiChoice(input.Answer, input.Options)
	case "text", string(domain.KindFreeText):
		result.Kind = domain.KindFreeText
		result.Verbatim = reconcile.NormalizeVerbatim(input.Answer)
	default:
		return nil, MatchOutput{}, fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidInput, input.Kind)
	}

	labels := result.Labels(input.Options)
	if labels == nil {
		labels = []string{}
	}
	return nil, MatchOutput{
		Kind:            result.Kind,
		Verbatim:        result.Verbatim,
		SelectedIndex:   result.SelectedIndex,
		HasSelection:    result.HasSelection,
		SelectedIndices: result.SelectedIndices,
		Labels:          labels,
	}, nil
}

// handleAnswer answers a single ad-hoc question.
func (s *Server) handleAnswer(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnswerInput,
) (*mcp.CallToolResult, AnswerOutput, error) {
	fieldType := domain.FieldType(strings.ToLower(input.FieldType))
	if fieldType == "" {
		fieldType = domain.FieldShortAnswer
	}

	q := domain.NewQuestion("mcp", input.Text, fieldType, input.Options...)
	outcome, err := s.ports.Answer.AnswerQuestion(ctx, q)
	if err != nil {
		return nil, AnswerOutput{}, err
	}

	selected := outcome.Selected()
	if selected == nil {
		selected = []string{}
	}
	return nil, AnswerOutput{
		Answer:   outcome.Answer,
		Status:   outcome.Status,
		Selected: selected,
		Match:    outcome.Match,
		Error:    outcome.Error,
	}, nil
}

// handleAssist runs an assist action.
func (s *Server) handleAssist(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AssistInput,
) (*mcp.CallToolResult, AssistOutput, error) {
	action := domain.AssistAction(strings.ToLower(input.Action))
	result, err := s.ports.Assist.Run(ctx, action, input.Text)
	if err != nil {
		return nil, AssistOutput{}, err
	}
	return nil, AssistOutput{Title: result.Title, Content: result.Content}, nil
}
