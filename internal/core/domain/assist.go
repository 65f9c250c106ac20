package domain

// AssistAction identifies a document assistance operation.
type AssistAction string

// Available assist actions.
const (
	AssistSummarize AssistAction = "summarize"
	AssistExpand    AssistAction = "expand"
	AssistAnswer    AssistAction = "answer"
	AssistImprove   AssistAction = "improve"
	AssistGenerate  AssistAction = "generate"
)

// IsValid returns true if the action is recognised.
func (a AssistAction) IsValid() bool {
	switch a {
	case AssistSummarize, AssistExpand, AssistAnswer, AssistImprove, AssistGenerate:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (a AssistAction) String() string {
	return string(a)
}

// Label returns the menu label for the action.
func (a AssistAction) Label() string {
	switch a {
	case AssistSummarize:
		return "Summarize selected text"
	case AssistExpand:
		return "Expand selected text"
	case AssistAnswer:
		return "Answer question in selection"
	case AssistImprove:
		return "Improve writing"
	case AssistGenerate:
		return "Generate content"
	default:
		return unknownDescription
	}
}

// Title returns the heading shown above the action's result.
func (a AssistAction) Title() string {
	switch a {
	case AssistSummarize:
		return "Summary"
	case AssistExpand:
		return "Expanded Text"
	case AssistAnswer:
		return "Answer"
	case AssistImprove:
		return "Improved Writing"
	case AssistGenerate:
		return "Generated Content"
	default:
		return unknownDescription
	}
}

// AllAssistActions returns every assist action in menu order.
func AllAssistActions() []AssistAction {
	return []AssistAction{
		AssistSummarize,
		AssistExpand,
		AssistAnswer,
		AssistImprove,
		AssistGenerate,
	}
}

// AssistResult is the reply to an assist action.
type AssistResult struct {
	Action  AssistAction `json:"action"`
	Title   string       `json:"title"`
	Content string       `json:"content"`
}
