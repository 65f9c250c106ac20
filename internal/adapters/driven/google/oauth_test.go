package google

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

// tokenServer answers refresh requests with a new access token.
func tokenServer(t *testing.T, status int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "1//refresh", r.PostForm.Get("refresh_token"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte(`{"access_token":"ya29.new","token_type":"Bearer","expires_in":3600}`))
		} else {
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func testConfig(tokenURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "id",
		ClientSecret: "secret",
		Endpoint:     oauth2.Endpoint{TokenURL: tokenURL, AuthStyle: oauth2.AuthStyleInParams},
	}
}

func loginSettings(expiry time.Time) domain.GoogleSettings {
	return domain.GoogleSettings{
		ClientID:     "id",
		ClientSecret: "secret",
		AccessToken:  "ya29.old",
		RefreshToken: "1//refresh",
		Expiry:       expiry,
	}
}

func TestOAuthConfig(t *testing.T) {
	cfg := OAuthConfig("id", "secret", "http://127.0.0.1:5000/callback")

	assert.Equal(t, "id", cfg.ClientID)
	assert.Equal(t, "http://127.0.0.1:5000/callback", cfg.RedirectURL)
	assert.Contains(t, cfg.Scopes, "https://www.googleapis.com/auth/forms.body.readonly")
	assert.Contains(t, cfg.Scopes, "https://www.googleapis.com/auth/documents.readonly")
	assert.Contains(t, cfg.Endpoint.AuthURL, "accounts.google.com")
}

func TestNewTokenProvider_StaticWithoutRefresh(t *testing.T) {
	p := NewTokenProvider(domain.GoogleSettings{AccessToken: "ya29.pasted"}, nil)

	assert.IsType(t, StaticToken(""), p)
	tok, err := p.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ya29.pasted", tok)
}

func TestNewTokenProvider_RefreshingWithLogin(t *testing.T) {
	p := NewTokenProvider(loginSettings(time.Now().Add(time.Hour)), nil)

	assert.IsType(t, &RefreshingToken{}, p)
}

func TestRefreshingToken_ValidTokenNotRefreshed(t *testing.T) {
	srv, hits := tokenServer(t, http.StatusOK)
	saved := 0
	r := newRefreshingToken(testConfig(srv.URL), loginSettings(time.Now().Add(time.Hour)), func(*oauth2.Token) error {
		saved++
		return nil
	})

	tok, err := r.GetToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ya29.old", tok)
	assert.Zero(t, hits.Load())
	assert.Zero(t, saved)
}

func TestRefreshingToken_ExpiredTokenRefreshedAndSaved(t *testing.T) {
	srv, hits := tokenServer(t, http.StatusOK)
	var saved []string
	r := newRefreshingToken(testConfig(srv.URL), loginSettings(time.Now().Add(-time.Minute)), func(tok *oauth2.Token) error {
		saved = append(saved, tok.AccessToken)
		return nil
	})

	tok, err := r.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ya29.new", tok)

	tok, err = r.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ya29.new", tok)

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, []string{"ya29.new"}, saved)
}

func TestRefreshingToken_SaveErrorIgnored(t *testing.T) {
	srv, _ := tokenServer(t, http.StatusOK)
	r := newRefreshingToken(testConfig(srv.URL), loginSettings(time.Now().Add(-time.Minute)), func(*oauth2.Token) error {
		return errors.New("disk full")
	})

	tok, err := r.GetToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ya29.new", tok)
}

func TestRefreshingToken_RefreshFails(t *testing.T) {
	srv, _ := tokenServer(t, http.StatusBadRequest)
	r := newRefreshingToken(testConfig(srv.URL), loginSettings(time.Now().Add(-time.Minute)), nil)

	_, err := r.GetToken(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFormSourceUnavailable)
	assert.Contains(t, err.Error(), "google-login")
}

func TestRefreshingToken_CancelledContext(t *testing.T) {
	r := newRefreshingToken(testConfig("http://127.0.0.1:1"), loginSettings(time.Now().Add(-time.Minute)), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.GetToken(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
