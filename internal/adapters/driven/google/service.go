package google

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/forms/v1"
	"google.golang.org/api/option"
)

// clientOptions authenticates every request with ts.
// The HTTP client is built from ctx so callers can supply a base client
// through the oauth2.HTTPClient context key. An empty endpoint uses the
// API default.
func clientOptions(ctx context.Context, ts oauth2.TokenSource, endpoint string) []option.ClientOption {
	opts := []option.ClientOption{option.WithHTTPClient(oauth2.NewClient(ctx, ts))}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return opts
}

// NewFormsService creates a Google Forms API service using the provided TokenSource.
func NewFormsService(ctx context.Context, ts oauth2.TokenSource, endpoint string) (*forms.Service, error) {
	return forms.NewService(ctx, clientOptions(ctx, ts, endpoint)...)
}

// NewDocsService creates a Google Docs API service using the provided TokenSource.
func NewDocsService(ctx context.Context, ts oauth2.TokenSource, endpoint string) (*docs.Service, error) {
	return docs.NewService(ctx, clientOptions(ctx, ts, endpoint)...)
}

// WithBaseClient returns a context that makes the service factories send
// requests through client instead of http.DefaultClient.
func WithBaseClient(ctx context.Context, client *http.Client) context.Context {
	if client == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, client)
}
