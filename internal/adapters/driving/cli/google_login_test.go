//nolint:noctx // The fake browser uses http.Get.
package cli

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

// fakeLogin replaces the browser with one that follows the consent redirect
// and the code exchange with one that returns tok.
func fakeLogin(t *testing.T, tok *oauth2.Token, exchangeErr error) *url.Values {
	t.Helper()
	var seen url.Values

	origOpen, origExchange := openBrowser, exchangeCode
	t.Cleanup(func() { openBrowser, exchangeCode = origOpen, origExchange })

	openBrowser = func(raw string) error {
		u, err := url.Parse(raw)
		if err != nil {
			return err
		}
		seen = u.Query()
		redirect := seen.Get("redirect_uri") + "?" + url.Values{
			"state": {seen.Get("state")},
			"code":  {"4/code"},
		}.Encode()
		go func() {
			resp, err := http.Get(redirect)
			if err == nil {
				resp.Body.Close()
			}
		}()
		return nil
	}
	exchangeCode = func(_ context.Context, cfg *oauth2.Config, code, verifier string) (*oauth2.Token, error) {
		assert.Equal(t, "4/code", code)
		assert.NotEmpty(t, verifier)
		assert.Equal(t, seen.Get("redirect_uri"), cfg.RedirectURL)
		return tok, exchangeErr
	}
	return &seen
}

func TestGoogleLogin_StoresTokens(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	seen := fakeLogin(t, &oauth2.Token{AccessToken: "ya29.a", RefreshToken: "1//r", Expiry: expiry}, nil)
	settings := newMockSettings()

	out, err := execute(t, &Services{Settings: settings}, "",
		"settings", "google-login", "--client-id", "id.apps", "--client-secret", "shh", "--timeout", "5s")

	require.NoError(t, err)
	assert.Contains(t, out, "Open this URL")
	assert.Contains(t, out, "Signed in to Google.")

	assert.Equal(t, "id.apps", seen.Get("client_id"))
	assert.Equal(t, "S256", seen.Get("code_challenge_method"))
	assert.NotEmpty(t, seen.Get("code_challenge"))
	assert.Equal(t, "offline", seen.Get("access_type"))
	assert.Contains(t, seen.Get("scope"), "forms.body.readonly")

	g := settings.settings.Google
	assert.Equal(t, "id.apps", g.ClientID)
	assert.Equal(t, "shh", g.ClientSecret)
	assert.Equal(t, "ya29.a", g.AccessToken)
	assert.Equal(t, "1//r", g.RefreshToken)
	assert.True(t, expiry.Equal(g.Expiry))
}

func TestGoogleLogin_ReusesStoredClient(t *testing.T) {
	seen := fakeLogin(t, &oauth2.Token{AccessToken: "ya29.b"}, nil)
	settings := newMockSettings()
	settings.settings.Google = domain.GoogleSettings{ClientID: "stored.apps", ClientSecret: "s"}

	out, err := execute(t, &Services{Settings: settings}, "", "settings", "google-login", "--timeout", "5s")

	require.NoError(t, err)
	assert.Equal(t, "stored.apps", seen.Get("client_id"))
	assert.Contains(t, out, "No refresh token was issued")
	assert.Equal(t, "ya29.b", settings.settings.Google.AccessToken)
}

func TestGoogleLogin_Errors(t *testing.T) {
	t.Run("no service", func(t *testing.T) {
		_, err := execute(t, &Services{}, "", "settings", "google-login")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "settings service not configured")
	})

	t.Run("no client id", func(t *testing.T) {
		_, err := execute(t, &Services{Settings: newMockSettings()}, "", "settings", "google-login")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("exchange fails", func(t *testing.T) {
		fakeLogin(t, nil, errors.New("invalid_grant"))
		settings := newMockSettings()

		_, err := execute(t, &Services{Settings: settings}, "",
			"settings", "google-login", "--client-id", "id", "--timeout", "5s")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "exchange code: invalid_grant")
		assert.False(t, settings.settings.Google.IsConfigured())
	})

	t.Run("timeout", func(t *testing.T) {
		orig := openBrowser
		openBrowser = func(string) error { return nil }
		t.Cleanup(func() { openBrowser = orig })

		_, err := execute(t, &Services{Settings: newMockSettings()}, "",
			"settings", "google-login", "--client-id", "id", "--timeout", "50ms")

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "  ", "b", "c"))
	assert.Empty(t, firstNonEmpty("", " "))
}
