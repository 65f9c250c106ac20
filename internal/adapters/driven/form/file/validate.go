package file

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

// Issue captures a validation problem in a form file.
type Issue struct {
	Field   string
	Message string

	// Err is the domain sentinel behind the issue, if any.
	Err error
}

// ValidationError reports one or more validation issues.
// errors.Is matches the domain sentinels of its issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("form validation failed: %s", strings.Join(parts, "; "))
}

// Unwrap exposes the sentinels of all issues.
func (err *ValidationError) Unwrap() []error {
	var errs []error
	for _, issue := range err.Issues {
		if issue.Err != nil {
			errs = append(errs, issue.Err)
		}
	}
	return errs
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) addErr(field, message string, err error) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message, Err: err})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// normalizeDocument trims whitespace, derives missing IDs and converts the file
// schema into domain questions.
func normalizeDocument(doc document) ([]domain.Question, error) {
	collector := &issueCollector{}
	if len(doc.Questions) == 0 {
		collector.add("questions", "must include at least one entry")
	}

	questions := make([]domain.Question, 0, len(doc.Questions))
	seenIDs := map[string]struct{}{}
	repeats := map[string]int{}
	for i, entry := range doc.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)

		text := strings.TrimSpace(entry.Text)
		if text == "" {
			collector.add(prefix+".text", "is required")
		}

		fieldType := domain.FieldType(strings.ToLower(strings.TrimSpace(entry.Type)))
		if fieldType == "" {
			fieldType = domain.FieldShortAnswer
		}

		id := strings.TrimSpace(entry.ID)
		if id == "" {
			id = contentID(text, fieldType)
			repeats[id]++
			if n := repeats[id]; n > 1 {
				id = fmt.Sprintf("%s-%d", id, n)
			}
		}
		if _, exists := seenIDs[id]; exists {
			collector.add(prefix+".id", fmt.Sprintf("duplicate id %q", id))
		} else {
			seenIDs[id] = struct{}{}
		}
		if !fieldType.IsValid() {
			collector.addErr(prefix+".type", fmt.Sprintf("unknown type %q", entry.Type), domain.ErrUnsupportedFieldType)
			continue
		}

		options := normalizeStringSlice(entry.Options)
		q := domain.NewQuestion(id, text, fieldType, options...)
		q.Required = entry.Required
		switch {
		case q.Kind == domain.KindFreeText && len(options) > 0:
			collector.add(prefix+".options", fmt.Sprintf("not allowed for %s questions", fieldType))
		case q.Kind != domain.KindFreeText && len(options) == 0:
			collector.addErr(prefix+".options", "must include at least one entry", domain.ErrMalformedQuestion)
		default:
			for optionIndex, option := range options {
				if option == "" {
					collector.add(fmt.Sprintf("%s.options[%d]", prefix, optionIndex), "is required")
				}
			}
		}
		questions = append(questions, q)
	}

	if err := collector.result(); err != nil {
		return nil, err
	}
	return questions, nil
}

// contentID names a question without an explicit id by its normalized
// text and field type, so inserting or reordering questions in the file
// keeps every other question's id. Repeats of the same question get a
// -2, -3 suffix in file order.
func contentID(text string, fieldType domain.FieldType) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.Join(strings.Fields(text), " ")) + "\x00" + string(fieldType)))
	return "q-" + hex.EncodeToString(sum[:5])
}

func normalizeStringSlice(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		normalized = append(normalized, strings.TrimSpace(value))
	}
	return normalized
}
