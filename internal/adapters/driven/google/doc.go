// Package google provides shared infrastructure for the Google Forms and
// Google Docs sources.
//
// It contains:
//   - a TokenSource adapter bridging driven.TokenProvider to oauth2.TokenSource
//   - the OAuth2 login configuration and a token provider that refreshes
//     expired access tokens
//   - service factories for the Forms and Docs API clients
//   - error mapping for common Google API failures (401, 403, 404, 429)
//   - per-service rate limiting
//
// # Usage
//
//	ts := google.NewTokenSource(ctx, google.NewTokenProvider(settings.Google, save))
//	svc, err := google.NewFormsService(ctx, ts, "")
//
// # OAuth2 Scopes
//
// The access token needs read scopes only:
//   - https://www.googleapis.com/auth/forms.body.readonly
//   - https://www.googleapis.com/auth/documents.readonly
package google
