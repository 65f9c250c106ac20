package driven

import (
	"context"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

// FormSource loads a form and its questions.
// The reference is source specific: a file path or a remote form ID.
type FormSource interface {
	// Name identifies the source ("file", "googleforms").
	Name() string

	// Load fetches the form. Questions are returned in display order.
	Load(ctx context.Context, ref string) (*domain.Form, error)
}

// DocumentSource reads the plain text of a document for assist actions.
type DocumentSource interface {
	// Text returns the document title and body text.
	Text(ctx context.Context, documentID string) (title, body string, err error)
}
