package google

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

type failingProvider struct{}

func (failingProvider) GetToken(context.Context) (string, error) {
	return "", errors.New("refresh failed")
}

func TestStaticToken(t *testing.T) {
	token, err := StaticToken(" ya29.abc ").GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ya29.abc", token)

	_, err = StaticToken("").GetToken(context.Background())
	assert.ErrorIs(t, err, domain.ErrFormSourceUnavailable)
}

func TestTokenSourceAdapter(t *testing.T) {
	ts := NewTokenSource(context.Background(), StaticToken("ya29.abc"))

	token, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "ya29.abc", token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)

	_, err = NewTokenSource(context.Background(), failingProvider{}).Token()
	assert.EqualError(t, err, "refresh failed")
}
