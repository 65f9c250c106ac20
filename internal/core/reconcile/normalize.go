package reconcile

import (
	"strings"
	"unicode/utf8"
)

// minSignificantLen is the length a token must exceed to count for scoring.
// Shorter words ("a", "the", "is") carry little content.
const minSignificantLen = 3

// normalize case-folds and trims s for comparison.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// significantTokens splits normalized text on whitespace and keeps
// tokens longer than minSignificantLen characters.
func significantTokens(normalized string) []string {
	fields := strings.Fields(normalized)
	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) > minSignificantLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// NormalizeVerbatim returns answer text ready to inject into a free-text field.
// Only leading and trailing whitespace is removed.
func NormalizeVerbatim(answer string) string {
	return strings.TrimSpace(answer)
}
