package driven

import (
	"context"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

// RunStore persists answering runs and their per-question outcomes.
type RunStore interface {
	// Save stores or replaces a run with its outcomes.
	Save(ctx context.Context, run *domain.Run) error

	// Get retrieves a run by ID.
	// Returns domain.ErrNotFound if the run does not exist.
	Get(ctx context.Context, id string) (*domain.Run, error)

	// List returns the most recent runs, newest first, without outcomes.
	// A limit of zero or less returns all runs.
	List(ctx context.Context, limit int) ([]domain.Run, error)

	// Delete removes a run and its outcomes.
	// Returns domain.ErrNotFound if the run does not exist.
	Delete(ctx context.Context, id string) error
}
