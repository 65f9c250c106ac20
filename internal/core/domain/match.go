package domain

// MatchResult is the reconciler's decision for one answer.
// Which fields are meaningful depends on Kind.
type MatchResult struct {
	// Kind is the kind of question the result was produced for.
	Kind QuestionKind `json:"kind"`

	// Verbatim holds the text to inject for free-text questions.
	Verbatim string `json:"verbatim,omitempty"`

	// SelectedIndex is the chosen option for single-choice questions.
	// Only valid when HasSelection is true.
	SelectedIndex int `json:"selected_index"`

	// HasSelection reports whether a single-choice option cleared the threshold.
	HasSelection bool `json:"has_selection"`

	// SelectedIndices holds the chosen options for multi-choice questions,
	// in display order.
	SelectedIndices []int `json:"selected_indices,omitempty"`
}

// Matched returns true if the result carries something to fill in.
func (m MatchResult) Matched() bool {
	switch m.Kind {
	case KindFreeText:
		return m.Verbatim != ""
	case KindSingleChoice:
		return m.HasSelection
	case KindMultiChoice:
		return len(m.SelectedIndices) > 0
	default:
		return false
	}
}

// Labels maps the selected indices back to option labels.
// Free-text results return the verbatim text as the only label.
func (m MatchResult) Labels(options []string) []string {
	switch m.Kind {
	case KindFreeText:
		if m.Verbatim == "" {
			return nil
		}
		return []string{m.Verbatim}
	case KindSingleChoice:
		if !m.HasSelection || m.SelectedIndex < 0 || m.SelectedIndex >= len(options) {
			return nil
		}
		return []string{options[m.SelectedIndex]}
	case KindMultiChoice:
		labels := make([]string, 0, len(m.SelectedIndices))
		for _, idx := range m.SelectedIndices {
			if idx >= 0 && idx < len(options) {
				labels = append(labels, options[idx])
			}
		}
		return labels
	default:
		return nil
	}
}
