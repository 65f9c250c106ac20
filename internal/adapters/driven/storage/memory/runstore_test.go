package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

func testRun(id string, started time.Time) *domain.Run {
	return &domain.Run{
		ID:        id,
		FormID:    "form.yaml",
		StartedAt: started,
		Outcomes: []domain.Outcome{
			{QuestionID: "q1", Status: domain.OutcomeAnswered},
		},
	}
}

func TestRunStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewRunStore()
	run := testRun("run-1", time.Now())

	require.NoError(t, store.Save(ctx, run))

	got, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "form.yaml", got.FormID)
	require.Len(t, got.Outcomes, 1)

	// Mutating the returned copy must not affect the store.
	got.Outcomes[0].Status = domain.OutcomeFailed
	again, _ := store.Get(ctx, "run-1")
	assert.Equal(t, domain.OutcomeAnswered, again.Outcomes[0].Status)
}

func TestRunStore_GetNotFound(t *testing.T) {
	_, err := NewRunStore().Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewRunStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_ = store.Save(ctx, testRun("old", base))
	_ = store.Save(ctx, testRun("new", base.Add(time.Hour)))
	_ = store.Save(ctx, testRun("mid", base.Add(time.Minute)))

	runs, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "mid", runs[1].ID)
	assert.Equal(t, "old", runs[2].ID)
	assert.Nil(t, runs[0].Outcomes)

	limited, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestRunStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewRunStore()
	_ = store.Save(ctx, testRun("run-1", time.Now()))

	require.NoError(t, store.Delete(ctx, "run-1"))
	assert.ErrorIs(t, store.Delete(ctx, "run-1"), domain.ErrNotFound)
}
