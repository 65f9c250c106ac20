package domain

import (
	"fmt"
	"strings"
)

// QuestionKind classifies a question by how its answer is reconciled.
type QuestionKind string

// Question kinds.
const (
	// KindFreeText questions take the answer verbatim.
	KindFreeText QuestionKind = "free_text"

	// KindSingleChoice questions select at most one option.
	KindSingleChoice QuestionKind = "single_choice"

	// KindMultiChoice questions select any subset of options.
	KindMultiChoice QuestionKind = "multi_choice"
)

// IsValid returns true if the kind is recognised.
func (k QuestionKind) IsValid() bool {
	switch k {
	case KindFreeText, KindSingleChoice, KindMultiChoice:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k QuestionKind) String() string {
	return string(k)
}

// FieldType identifies the form control a question is rendered with.
type FieldType string

// Supported field types.
const (
	// FieldShortAnswer is a single-line text input.
	FieldShortAnswer FieldType = "short_answer"

	// FieldParagraph is a multi-line text area.
	FieldParagraph FieldType = "paragraph"

	// FieldMultipleChoice is a radio group.
	FieldMultipleChoice FieldType = "multiple_choice"

	// FieldCheckbox is a checkbox group.
	FieldCheckbox FieldType = "checkbox"

	// FieldDropdown is a select menu.
	FieldDropdown FieldType = "dropdown"
)

// IsValid returns true if the field type is recognised.
func (f FieldType) IsValid() bool {
	switch f {
	case FieldShortAnswer, FieldParagraph, FieldMultipleChoice, FieldCheckbox, FieldDropdown:
		return true
	default:
		return false
	}
}

// Kind returns the reconciliation kind for the field type.
// Unknown field types report an empty kind.
func (f FieldType) Kind() QuestionKind {
	switch f {
	case FieldShortAnswer, FieldParagraph:
		return KindFreeText
	case FieldMultipleChoice, FieldDropdown:
		return KindSingleChoice
	case FieldCheckbox:
		return KindMultiChoice
	default:
		return ""
	}
}

// String returns the string representation.
func (f FieldType) String() string {
	return string(f)
}

// Description returns a human-readable description of the field type.
func (f FieldType) Description() string {
	switch f {
	case FieldShortAnswer:
		return "Short answer"
	case FieldParagraph:
		return "Paragraph"
	case FieldMultipleChoice:
		return "Multiple choice"
	case FieldCheckbox:
		return "Checkboxes"
	case FieldDropdown:
		return "Dropdown"
	default:
		return "Unknown"
	}
}

// PromptHint returns the field name used when asking the LLM for a free-text answer.
func (f FieldType) PromptHint() string {
	switch f {
	case FieldShortAnswer:
		return "short answer"
	case FieldParagraph:
		return "paragraph"
	default:
		return string(f)
	}
}

// AllFieldTypes returns every supported field type.
func AllFieldTypes() []FieldType {
	return []FieldType{
		FieldShortAnswer,
		FieldParagraph,
		FieldMultipleChoice,
		FieldCheckbox,
		FieldDropdown,
	}
}

// Question is a single form field to be answered.
type Question struct {
	// ID identifies the question within its form.
	ID string `json:"id"`

	// Text is the question title as shown to the respondent.
	Text string `json:"text"`

	// FieldType is the form control the question is rendered with.
	FieldType FieldType `json:"field_type"`

	// Kind is derived from FieldType.
	Kind QuestionKind `json:"kind"`

	// Options holds the candidate option labels in display order.
	// Empty for free-text questions.
	Options []string `json:"options,omitempty"`

	// Required marks questions the form will not submit without.
	Required bool `json:"required,omitempty"`
}

// NewQuestion builds a question with its kind derived from the field type.
func NewQuestion(id, text string, fieldType FieldType, options ...string) Question {
	return Question{
		ID:        id,
		Text:      text,
		FieldType: fieldType,
		Kind:      fieldType.Kind(),
		Options:   options,
	}
}

// Validate checks the question is answerable.
// A choice question without options wraps ErrMalformedQuestion.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: question text is required", ErrInvalidInput)
	}
	if !q.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedFieldType, q.FieldType)
	}
	if q.Kind != KindFreeText && len(q.Options) == 0 {
		return fmt.Errorf("%w: %s question %q has no options", ErrMalformedQuestion, q.Kind, q.ID)
	}
	return nil
}

// Form is an ordered collection of questions.
type Form struct {
	// ID identifies the form (file path or remote form ID).
	ID string `json:"id"`

	// Title is the form's display title.
	Title string `json:"title,omitempty"`

	// Source names the form source the form was loaded from.
	Source string `json:"source,omitempty"`

	// Questions holds the form's questions in display order.
	Questions []Question `json:"questions"`
}
