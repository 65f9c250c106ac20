package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driven"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// DefaultHistoryLimit is used when List is called without a positive limit.
const DefaultHistoryLimit = 20

// HistoryService exposes past answering runs.
type HistoryService struct {
	runStore driven.RunStore
}

// NewHistoryService creates a new history service.
func NewHistoryService(runStore driven.RunStore) *HistoryService {
	return &HistoryService{runStore: runStore}
}

// List returns the most recent runs, newest first, without outcomes.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.Run, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	runs, err := s.runStore.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Get retrieves a run with its outcomes.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.Run, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: run ID is required", domain.ErrInvalidInput)
	}
	return s.runStore.Get(ctx, id)
}

// Delete removes a run.
func (s *HistoryService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: run ID is required", domain.ErrInvalidInput)
	}
	return s.runStore.Delete(ctx, id)
}
