package cli

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driven/google"
	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

func apiError(code int) error {
	return fmt.Errorf("get form abc: %w", google.WrapError(&googleapi.Error{Code: code}))
}

func TestWithGoogleHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		hint string
	}{
		{"unauthorized", apiError(http.StatusUnauthorized), "autoanswer settings google-login"},
		{"forbidden", apiError(http.StatusForbidden), "Check the form ID and that it is shared"},
		{"not found", apiError(http.StatusNotFound), "Check the form ID and that it is shared"},
		{"rate limited", apiError(http.StatusTooManyRequests), "wait a minute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := withGoogleHint(tt.err, "form")
			assert.ErrorIs(t, err, tt.err)
			assert.Contains(t, err.Error(), tt.hint)
		})
	}
}

func TestWithGoogleHint_PassesOtherErrors(t *testing.T) {
	assert.NoError(t, withGoogleHint(nil, "form"))

	plain := errors.New("boom")
	assert.Same(t, plain, withGoogleHint(plain, "form"))

	server := apiError(http.StatusInternalServerError)
	assert.Equal(t, server, withGoogleHint(server, "form"))

	assert.Equal(t, domain.ErrNotFound, withGoogleHint(domain.ErrNotFound, "form"))
}
