package driven

import "context"

// TokenProvider provides access tokens for the Google API sources.
type TokenProvider interface {
	// GetToken returns a bearer token.
	// Returns domain.ErrFormSourceUnavailable when no token is configured.
	GetToken(ctx context.Context) (string, error)
}
