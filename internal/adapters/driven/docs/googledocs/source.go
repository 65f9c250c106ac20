// Package googledocs reads the plain text of Google Docs for assist actions.
package googledocs

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/docs/v1"

	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driven/google"
	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driven"
	"github.com/custodia-labs/autoanswer-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// Config configures the Google Docs source.
type Config struct {
	// TokenProvider supplies the OAuth2 bearer token.
	TokenProvider driven.TokenProvider

	// Endpoint overrides the API root. Empty uses the public endpoint.
	Endpoint string

	// HTTPClient is the base client for requests. Nil uses http.DefaultClient.
	HTTPClient *http.Client
}

// Source reads Google Docs.
type Source struct {
	cfg     Config
	limiter *google.RateLimiter
}

// New creates a Google Docs source.
func New(cfg Config) *Source {
	return &Source{
		cfg:     cfg,
		limiter: google.NewRateLimiter(google.ServiceDocs),
	}
}

// Text returns the document title and its body as plain text.
// Table cells are flattened in reading order.
func (s *Source) Text(ctx context.Context, documentID string) (string, string, error) {
	documentID = ParseDocumentID(documentID)
	if documentID == "" {
		return "", "", fmt.Errorf("%w: google document ID is required", domain.ErrInvalidInput)
	}
	if s.cfg.TokenProvider == nil {
		return "", "", fmt.Errorf("%w: google access token not set", domain.ErrFormSourceUnavailable)
	}

	ctx = google.WithBaseClient(ctx, s.cfg.HTTPClient)
	svc, err := google.NewDocsService(ctx, google.NewTokenSource(ctx, s.cfg.TokenProvider), s.cfg.Endpoint)
	if err != nil {
		return "", "", fmt.Errorf("create docs service: %w", err)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", "", err
	}

	logger.Debug("Fetching Google Doc %s", documentID)
	doc, err := svc.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		s.limiter.Observe(err)
		return "", "", fmt.Errorf("get document %s: %w", documentID, google.WrapError(err))
	}

	var b strings.Builder
	if doc.Body != nil {
		writeContent(&b, doc.Body.Content)
	}
	return doc.Title, strings.TrimSpace(b.String()), nil
}

func writeContent(b *strings.Builder, content []*docs.StructuralElement) {
	for _, el := range content {
		if el == nil {
			continue
		}
		switch {
		case el.Paragraph != nil:
			for _, pe := range el.Paragraph.Elements {
				if pe != nil && pe.TextRun != nil {
					b.WriteString(pe.TextRun.Content)
				}
			}
		case el.Table != nil:
			for _, row := range el.Table.TableRows {
				for _, cell := range row.TableCells {
					writeContent(b, cell.Content)
				}
			}
		}
	}
}

// ParseDocumentID extracts the document ID from a bare ID or a URL such as
// https://docs.google.com/document/d/<id>/edit.
func ParseDocumentID(ref string) string {
	ref = strings.TrimSpace(ref)
	if _, rest, ok := strings.Cut(ref, "/document/d/"); ok {
		id, _, _ := strings.Cut(rest, "/")
		id, _, _ = strings.Cut(id, "?")
		return id
	}
	return ref
}
