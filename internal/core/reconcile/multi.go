package reconcile

import "strings"

// ResolveMultiChoice returns the indices of every option the answer refers to,
// in display order. Each option is judged on its own: it is selected when its
// full text appears in the answer, or when strictly more than half of its
// significant tokens do. Options made only of short words can match through
// the first rule alone. Blank or whitespace-only options are never selected.
func ResolveMultiChoice(answer string, options []string) []int {
	ans := normalize(answer)
	selected := []int{}
	if ans == "" {
		return selected
	}

	for i, opt := range options {
		if optionSelected(ans, normalize(opt)) {
			selected = append(selected, i)
		}
	}
	return selected
}

func optionSelected(ans, opt string) bool {
	if opt == "" {
		return false
	}
	if strings.Contains(ans, opt) {
		return true
	}

	tokens := significantTokens(opt)
	if len(tokens) == 0 {
		return false
	}
	found := 0
	for _, tok := range tokens {
		if strings.Contains(ans, tok) {
			found++
		}
	}
	return found*2 > len(tokens)
}
