package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrMalformedQuestion", ErrMalformedQuestion},
		{"ErrUnsupportedFieldType", ErrUnsupportedFieldType},
		{"ErrAPIKeyNotSet", ErrAPIKeyNotSet},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrEmptySelection", ErrEmptySelection},
		{"ErrFormSourceUnavailable", ErrFormSourceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrMalformedQuestion, ErrInvalidInput))
	assert.False(t, errors.Is(ErrAPIKeyNotSet, ErrLLMUnavailable))
}

func TestErrors_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("load form: %w", ErrMalformedQuestion)

	assert.True(t, errors.Is(wrapped, ErrMalformedQuestion))
	assert.Contains(t, wrapped.Error(), "malformed question")
}
