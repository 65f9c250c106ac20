package google

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driven"
)

// StaticToken is a driven.TokenProvider backed by a stored access token.
type StaticToken string

// Ensure StaticToken implements the interface.
var _ driven.TokenProvider = StaticToken("")

// GetToken returns the token, or domain.ErrFormSourceUnavailable when empty.
func (t StaticToken) GetToken(_ context.Context) (string, error) {
	token := strings.TrimSpace(string(t))
	if token == "" {
		return "", fmt.Errorf("%w: google access not set (run autoanswer settings google-login)", domain.ErrFormSourceUnavailable)
	}
	return token, nil
}

// TokenSourceAdapter adapts a driven.TokenProvider to oauth2.TokenSource.
type TokenSourceAdapter struct {
	provider driven.TokenProvider
	ctx      context.Context
}

// NewTokenSource creates an oauth2.TokenSource from a TokenProvider.
func NewTokenSource(ctx context.Context, provider driven.TokenProvider) oauth2.TokenSource {
	return &TokenSourceAdapter{
		provider: provider,
		ctx:      ctx,
	}
}

// Token implements oauth2.TokenSource.
func (t *TokenSourceAdapter) Token() (*oauth2.Token, error) {
	accessToken, err := t.provider.GetToken(t.ctx)
	if err != nil {
		return nil, err
	}

	return &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}, nil
}
