package reconcile

import "strings"

// ResolveSingleChoice picks the option the answer refers to.
// It returns the option index and true, or -1 and false when no option
// clears the acceptance threshold.
//
// Phase 1 returns the first option (in display order) that equals the
// answer, is contained in it, or contains it. Phase 2 runs only when
// phase 1 finds nothing and picks the option containing the most
// significant answer tokens; ties keep the earliest option and a best
// score of zero is no match. Blank or whitespace-only options are skipped
// in both phases.
func ResolveSingleChoice(answer string, options []string) (int, bool) {
	ans := normalize(answer)
	if ans == "" || len(options) == 0 {
		return -1, false
	}

	normalized := make([]string, len(options))
	for i, opt := range options {
		normalized[i] = normalize(opt)
	}

	if idx, ok := containmentMatch(ans, normalized); ok {
		return idx, true
	}
	return overlapMatch(ans, normalized)
}

// containmentMatch is phase 1. Blank options never match: the empty
// string is a substring of every answer.
func containmentMatch(ans string, options []string) (int, bool) {
	for i, opt := range options {
		if opt == "" {
			continue
		}
		if ans == opt || strings.Contains(ans, opt) || strings.Contains(opt, ans) {
			return i, true
		}
	}
	return -1, false
}

// overlapMatch is phase 2.
func overlapMatch(ans string, options []string) (int, bool) {
	tokens := significantTokens(ans)
	if len(tokens) == 0 {
		return -1, false
	}

	bestScore := 0
	bestIndex := -1
	for i, opt := range options {
		if score := overlapScore(tokens, opt); score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}
	if bestIndex < 0 {
		return -1, false
	}
	return bestIndex, true
}

// overlapScore counts the answer tokens that appear in the option text.
// Repeated tokens count once per occurrence in the answer.
func overlapScore(tokens []string, option string) int {
	score := 0
	for _, tok := range tokens {
		if strings.Contains(option, tok) {
			score++
		}
	}
	return score
}
