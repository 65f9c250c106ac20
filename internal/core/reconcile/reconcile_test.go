package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

func TestReconcile_FreeText(t *testing.T) {
	q := domain.NewQuestion("q1", "Where is the Eiffel Tower?", domain.FieldShortAnswer)

	result := Reconcile(q, "  Paris, France  ")

	assert.Equal(t, domain.KindFreeText, result.Kind)
	assert.Equal(t, "Paris, France", result.Verbatim)
	assert.True(t, result.Matched())
	assert.Equal(t, []string{"Paris, France"}, result.Labels(q.Options))
}

func TestReconcile_SingleChoice(t *testing.T) {
	q := domain.NewQuestion("q1", "Pick a colour", domain.FieldMultipleChoice, "Red", "Blue", "Red Apple")

	result := Reconcile(q, "red")

	assert.Equal(t, domain.KindSingleChoice, result.Kind)
	assert.True(t, result.HasSelection)
	assert.Equal(t, 0, result.SelectedIndex)
	assert.Equal(t, []string{"Red"}, result.Labels(q.Options))
}

func TestReconcile_Dropdown_NoMatch(t *testing.T) {
	q := domain.NewQuestion("q1", "Pick a fruit", domain.FieldDropdown, "Apple", "Banana", "Cherry")

	result := Reconcile(q, "xyz123")

	assert.False(t, result.HasSelection)
	assert.Equal(t, -1, result.SelectedIndex)
	assert.False(t, result.Matched())
	assert.Empty(t, result.Labels(q.Options))
}

func TestReconcile_MultiChoice(t *testing.T) {
	q := domain.NewQuestion("q1", "What do you see?", domain.FieldCheckbox, "Blue Sky", "Green Grass")

	result := Reconcile(q, "the sky is blue today")

	assert.Equal(t, domain.KindMultiChoice, result.Kind)
	assert.Equal(t, []int{0}, result.SelectedIndices)
	assert.Equal(t, []string{"Blue Sky"}, result.Labels(q.Options))
}

func TestReconcile_MalformedChoiceQuestionIsTotal(t *testing.T) {
	single := domain.NewQuestion("q1", "Pick one", domain.FieldMultipleChoice)
	multi := domain.NewQuestion("q2", "Pick many", domain.FieldCheckbox)

	assert.NotPanics(t, func() {
		assert.False(t, Reconcile(single, "anything").Matched())
		assert.False(t, Reconcile(multi, "anything").Matched())
	})
}

func TestReconcile_UnknownKind(t *testing.T) {
	q := domain.Question{ID: "q1", Text: "?", FieldType: "file_upload", Options: []string{"a"}}

	result := Reconcile(q, "a")

	assert.False(t, result.Matched())
}
