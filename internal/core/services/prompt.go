package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driven"
)

// Fallback prompts used when no PromptStore is configured or a load fails.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const (
	defaultSystemPrompt    = "You are an academic assistant helping to answer questions accurately and concisely. Provide direct answers that can be used in a form."
	defaultQuestionPrompt  = "Please answer this question concisely: %s"
	defaultSummarizePrompt = "Please summarize the following text concisely:\n%s"
	defaultExpandPrompt    = "Please expand on the following text with more details and explanation:\n%s"
	defaultAnswerPrompt    = "Please answer this question with academic accuracy:\n%s"
	defaultImprovePrompt   = "Please improve the following text for clarity, grammar, and style while maintaining the original meaning:\n%s"
)

var fallbackPrompts = map[string]string{
	driven.PromptSystem:    defaultSystemPrompt,
	driven.PromptQuestion:  defaultQuestionPrompt,
	driven.PromptSummarize: defaultSummarizePrompt,
	driven.PromptExpand:    defaultExpandPrompt,
	driven.PromptAnswer:    defaultAnswerPrompt,
	driven.PromptImprove:   defaultImprovePrompt,
}

// assistPromptNames maps assist actions to their prompt templates.
// AssistGenerate has no template: the user text is the prompt.
var assistPromptNames = map[domain.AssistAction]string{
	domain.AssistSummarize: driven.PromptSummarize,
	domain.AssistExpand:    driven.PromptExpand,
	domain.AssistAnswer:    driven.PromptAnswer,
	domain.AssistImprove:   driven.PromptImprove,
}

// prompter renders prompts from a store, falling back to built-in defaults.
type prompter struct {
	store driven.PromptStore
}

// load returns the named template. Custom templates that lost their
// placeholder are ignored so the question text is never dropped.
func (p prompter) load(name string) string {
	fallback := fallbackPrompts[name]
	if p.store == nil {
		return fallback
	}
	prompt, err := p.store.Load(name)
	if err != nil || prompt == "" {
		return fallback
	}
	if name != driven.PromptSystem && strings.Count(prompt, "%s") != 1 {
		return fallback
	}
	return prompt
}

// system returns the system message.
func (p prompter) system() string {
	return p.load(driven.PromptSystem)
}

// question renders the user message for a form question.
func (p prompter) question(q domain.Question) string {
	var b strings.Builder
	b.WriteString(render(p.load(driven.PromptQuestion), q.Text))

	if len(q.Options) > 0 {
		b.WriteString("\nOptions: ")
		b.WriteString(strings.Join(q.Options, ", "))
		b.WriteString("\nPlease respond with the exact text of the best option(s).")
	}

	switch q.Kind {
	case domain.KindFreeText:
		fmt.Fprintf(&b, "\nProvide a concise answer suitable for a %s field.", q.FieldType.PromptHint())
	case domain.KindSingleChoice:
		b.WriteString("\nSelect exactly one option from the list above.")
	case domain.KindMultiChoice:
		b.WriteString("\nSelect all applicable options from the list above.")
	}

	return b.String()
}

// assist renders the user message for an assist action.
func (p prompter) assist(action domain.AssistAction, text string) string {
	name, ok := assistPromptNames[action]
	if !ok {
		return text
	}
	return render(p.load(name), text)
}

// render puts text in place of the template's %s. Other % characters are
// kept as written.
func render(tpl, text string) string {
	return strings.Replace(tpl, "%s", text, 1)
}

// BuildQuestionPrompt renders the default user message for a question.
func BuildQuestionPrompt(q domain.Question) string {
	return prompter{}.question(q)
}
