package google

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/forms/v1"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driven"
	"github.com/custodia-labs/autoanswer-cli/internal/logger"
)

// Scopes are the read-only scopes requested at login.
var Scopes = []string{
	forms.FormsBodyReadonlyScope,
	docs.DocumentsReadonlyScope,
}

// OAuthConfig returns the OAuth2 configuration for a desktop client.
func OAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       Scopes,
		Endpoint:     googleoauth.Endpoint,
	}
}

// SaveFunc persists a refreshed token.
type SaveFunc func(tok *oauth2.Token) error

// NewTokenProvider returns a provider for the stored Google credentials.
// Logins with a refresh token renew the access token when it expires and
// hand the new token to save. Pasted tokens are used as they are.
func NewTokenProvider(g domain.GoogleSettings, save SaveFunc) driven.TokenProvider {
	if !g.CanRefresh() {
		return StaticToken(g.AccessToken)
	}
	return newRefreshingToken(OAuthConfig(g.ClientID, g.ClientSecret, ""), g, save)
}

// RefreshingToken is a driven.TokenProvider that renews expired tokens.
type RefreshingToken struct {
	mu   sync.Mutex
	src  oauth2.TokenSource
	last string
	save SaveFunc
}

// Ensure RefreshingToken implements the interface.
var _ driven.TokenProvider = (*RefreshingToken)(nil)

func newRefreshingToken(cfg *oauth2.Config, g domain.GoogleSettings, save SaveFunc) *RefreshingToken {
	tok := &oauth2.Token{
		AccessToken:  g.AccessToken,
		RefreshToken: g.RefreshToken,
		Expiry:       g.Expiry,
		TokenType:    "Bearer",
	}
	// Refresh requests outlive any single call, so they get their own context.
	return &RefreshingToken{
		src:  cfg.TokenSource(context.Background(), tok),
		last: g.AccessToken,
		save: save,
	}
}

// GetToken returns a valid access token, refreshing it if needed.
func (r *RefreshingToken) GetToken(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tok, err := r.src.Token()
	if err != nil {
		return "", fmt.Errorf("%w: refresh google token (run 'autoanswer settings google-login'): %v",
			domain.ErrFormSourceUnavailable, err)
	}

	if tok.AccessToken != r.last {
		r.last = tok.AccessToken
		logger.Debug("Google access token refreshed, expires %s", tok.Expiry.Format("15:04:05"))
		if r.save != nil {
			if err := r.save(tok); err != nil {
				logger.Warn("saving refreshed google token: %v", err)
			}
		}
	}
	return tok.AccessToken, nil
}
