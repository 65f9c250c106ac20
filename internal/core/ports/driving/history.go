package driving

import (
	"context"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

// HistoryService exposes past answering runs.
type HistoryService interface {
	// List returns the most recent runs, newest first.
	List(ctx context.Context, limit int) ([]domain.Run, error)

	// Get retrieves a run with its outcomes.
	Get(ctx context.Context, id string) (*domain.Run, error)

	// Delete removes a run.
	Delete(ctx context.Context, id string) error
}
