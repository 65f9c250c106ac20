package reconcile

import "github.com/custodia-labs/autoanswer-cli/internal/core/domain"

// Reconcile converts an answer into a match result for the question's kind.
//
// Callers should reject malformed questions with Question.Validate first.
// A choice question without options still yields an empty result here
// rather than a panic, and an unknown kind yields a zero result.
func Reconcile(q domain.Question, answer string) domain.MatchResult {
	result := domain.MatchResult{Kind: q.Kind, SelectedIndex: -1}

	switch q.Kind {
	case domain.KindFreeText:
		result.Verbatim = NormalizeVerbatim(answer)

	case domain.KindSingleChoice:
		idx, ok := ResolveSingleChoice(answer, q.Options)
		result.SelectedIndex = idx
		result.HasSelection = ok

	case domain.KindMultiChoice:
		result.SelectedIndices = ResolveMultiChoice(answer, q.Options)
	}

	return result
}
