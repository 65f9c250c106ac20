package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedQuestion indicates a choice question arrived without options.
	// The form source misclassified the field; the question cannot be reconciled.
	ErrMalformedQuestion = errors.New("malformed question")

	// ErrUnsupportedFieldType indicates a form field type the tool cannot answer.
	ErrUnsupportedFieldType = errors.New("unsupported field type")

	// ErrAPIKeyNotSet indicates the configured provider needs an API key and none is stored.
	ErrAPIKeyNotSet = errors.New("API key not set")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmptySelection indicates an assist action was requested without any text.
	ErrEmptySelection = errors.New("no text selected")

	// ErrFormSourceUnavailable indicates the requested form source is not configured.
	ErrFormSourceUnavailable = errors.New("form source unavailable")
)
