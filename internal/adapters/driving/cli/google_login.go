package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driven/google"
	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driving/oauth"
	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/logger"
)

var settingsGoogleLoginCmd = &cobra.Command{
	Use:   "google-login",
	Short: "Sign in to Google in the browser",
	Long: `Sign in to Google with an OAuth2 desktop client and store a refreshable token.

Create a "Desktop app" OAuth client in the Google Cloud console and pass its
ID and secret. They are remembered, so later logins need no flags. The
login requests read-only access to Google Forms and Google Docs.`,
	Args: cobra.NoArgs,
	RunE: runGoogleLogin,
}

var (
	loginClientID     string
	loginClientSecret string
	loginPort         int
	loginNoBrowser    bool
	loginTimeout      time.Duration
)

// openBrowser and exchangeCode are replaced in tests.
var (
	openBrowser  = oauth.OpenBrowser
	exchangeCode = func(ctx context.Context, cfg *oauth2.Config, code, verifier string) (*oauth2.Token, error) {
		return cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	}
)

func init() {
	settingsGoogleLoginCmd.Flags().StringVar(&loginClientID, "client-id", "", "OAuth2 client ID (default: stored)")
	settingsGoogleLoginCmd.Flags().StringVar(&loginClientSecret, "client-secret", "", "OAuth2 client secret (default: stored)")
	settingsGoogleLoginCmd.Flags().IntVar(&loginPort, "port", 0, "loopback port for the redirect (0 picks a free one)")
	settingsGoogleLoginCmd.Flags().BoolVar(&loginNoBrowser, "no-browser", false, "print the URL instead of opening a browser")
	settingsGoogleLoginCmd.Flags().DurationVar(&loginTimeout, "timeout", 5*time.Minute, "how long to wait for consent")
	settingsCmd.AddCommand(settingsGoogleLoginCmd)
}

func runGoogleLogin(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	clientID := firstNonEmpty(loginClientID, settings.Google.ClientID)
	clientSecret := firstNonEmpty(loginClientSecret, settings.Google.ClientSecret)
	if clientID == "" {
		return fmt.Errorf("%w: --client-id is required for the first login", domain.ErrInvalidInput)
	}

	state, err := oauth.GenerateState()
	if err != nil {
		return err
	}
	server := oauth.NewCallbackServer(loginPort, state)
	if err := server.Start(); err != nil {
		return fmt.Errorf("start callback server: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Stop(ctx); err != nil {
			logger.Warn("stopping callback server: %v", err)
		}
	}()

	cfg := google.OAuthConfig(clientID, clientSecret, server.RedirectURI())
	verifier := oauth2.GenerateVerifier()
	authURL := cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.S256ChallengeOption(verifier),
	)

	stderr := cmd.ErrOrStderr()
	_, _ = fmt.Fprintf(stderr, "Open this URL to sign in:\n\n  %s\n\n", authURL)
	if !loginNoBrowser {
		if err := openBrowser(authURL); err != nil {
			logger.Warn("opening browser: %v", err)
		}
	}
	_, _ = fmt.Fprintln(stderr, "Waiting for authorization...")

	ctx, cancel := context.WithTimeout(cmd.Context(), loginTimeout)
	defer cancel()

	code, err := server.WaitForCode(ctx)
	if err != nil {
		return fmt.Errorf("google login: %w", err)
	}
	tok, err := exchangeCode(ctx, cfg, code, verifier)
	if err != nil {
		return fmt.Errorf("google login: exchange code: %w", err)
	}

	login := domain.GoogleSettings{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
	}
	if err := settingsService.SetGoogleLogin(login); err != nil {
		return fmt.Errorf("save google login: %w", err)
	}

	if tok.RefreshToken == "" {
		cmd.Println("Signed in to Google. No refresh token was issued; log in again when the token expires.")
	} else {
		cmd.Println("Signed in to Google.")
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
