package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	formfile "github.com/custodia-labs/autoanswer-cli/internal/adapters/driven/form/file"
	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driving"
)

// lineFormSource reads one short-answer question per "id|text" line.
type lineFormSource struct{}

func (lineFormSource) Name() string { return "lines" }

func (lineFormSource) Load(_ context.Context, ref string) (*domain.Form, error) {
	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, err
	}
	form := &domain.Form{ID: filepath.Base(ref)}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		id, text, ok := strings.Cut(line, "|")
		if !ok {
			return nil, errors.New("bad line")
		}
		form.Questions = append(form.Questions, domain.NewQuestion(id, text, domain.FieldShortAnswer))
	}
	return form, nil
}

func waitForOutcome(t *testing.T, ch <-chan domain.Outcome) domain.Outcome {
	t.Helper()
	select {
	case o := <-ch:
		return o
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for outcome")
		return domain.Outcome{}
	}
}

func TestFormWatcher_AnswersNewQuestions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.txt")
	require.NoError(t, os.WriteFile(path, []byte("q1|First?\n"), 0o600))

	llm := &mockLLMService{fallback: "an answer"}
	watcher := NewFormWatcher(NewAnswerService(llm, nil, testSettings()), lineFormSource{}, 20*time.Millisecond)

	outcomes := make(chan domain.Outcome, 10)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watcher.Watch(ctx, path, driving.AnswerOptions{
			SkipHistory: true,
			Observer:    func(_ int, o domain.Outcome) { outcomes <- o },
		})
	}()

	assert.Equal(t, "q1", waitForOutcome(t, outcomes).QuestionID)

	require.NoError(t, os.WriteFile(path, []byte("q1|First?\nq2|Second?\n"), 0o600))
	assert.Equal(t, "q2", waitForOutcome(t, outcomes).QuestionID)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}

	assert.Equal(t, 2, llm.callCount())
	assert.Empty(t, outcomes)
}

func TestFormWatcher_SharesProcessedSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.txt")
	require.NoError(t, os.WriteFile(path, []byte("q1|First?\nq2|Second?\n"), 0o600))

	llm := &mockLLMService{fallback: "x"}
	watcher := NewFormWatcher(NewAnswerService(llm, nil, testSettings()), lineFormSource{}, 0)

	processed := map[string]bool{"q1": true}
	outcomes := make(chan domain.Outcome, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = watcher.Watch(ctx, path, driving.AnswerOptions{
			Processed:   processed,
			SkipHistory: true,
			Observer:    func(_ int, o domain.Outcome) { outcomes <- o },
		})
	}()

	assert.Equal(t, "q2", waitForOutcome(t, outcomes).QuestionID)
	assert.Equal(t, 1, llm.callCount())
}

func TestFormWatcher_InsertedQuestionIsAnswered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.yaml")
	require.NoError(t, os.WriteFile(path, []byte("questions:\n  - text: Alpha question?\n  - text: Beta question?\n"), 0o600))

	llm := &mockLLMService{fallback: "x"}
	watcher := NewFormWatcher(NewAnswerService(llm, nil, testSettings()), formfile.New(), 20*time.Millisecond)

	outcomes := make(chan domain.Outcome, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = watcher.Watch(ctx, path, driving.AnswerOptions{
			SkipHistory: true,
			Observer:    func(_ int, o domain.Outcome) { outcomes <- o },
		})
	}()

	assert.Equal(t, "Alpha question?", waitForOutcome(t, outcomes).QuestionText)
	assert.Equal(t, "Beta question?", waitForOutcome(t, outcomes).QuestionText)

	require.NoError(t, os.WriteFile(path,
		[]byte("questions:\n  - text: NEW inserted question?\n  - text: Alpha question?\n  - text: Beta question?\n"), 0o600))

	assert.Equal(t, "NEW inserted question?", waitForOutcome(t, outcomes).QuestionText)
	select {
	case o := <-outcomes:
		t.Fatalf("question answered twice: %q", o.QuestionText)
	case <-time.After(200 * time.Millisecond):
	}
	assert.Equal(t, 3, llm.callCount())
}

func TestFormWatcher_MissingDirectory(t *testing.T) {
	watcher := NewFormWatcher(NewAnswerService(&mockLLMService{}, nil, testSettings()), lineFormSource{}, 0)

	err := watcher.Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "form.txt"), driving.AnswerOptions{})
	assert.Error(t, err)
}

func TestNewFormWatcher_DefaultDebounce(t *testing.T) {
	watcher := NewFormWatcher(nil, lineFormSource{}, 0)
	assert.Equal(t, DefaultDebounce, watcher.debounce)
}
