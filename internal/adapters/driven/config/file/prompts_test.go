package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driven"
)

func TestNewPromptStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	store, err := NewPromptStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".autoanswer", "prompts"), store.Dir())
}

func TestPromptStore_Load_CreatesDefaultFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptSystem)
	require.NoError(t, err)

	for _, f := range []string{
		"system.txt", "question.txt", "summarize.txt",
		"expand.txt", "answer.txt", "improve.txt", "README.md",
	} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, "expected file %s to exist", f)
	}
}

func TestPromptStore_Load_Defaults(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	system, err := store.Load(driven.PromptSystem)
	require.NoError(t, err)
	assert.Contains(t, system, "academic assistant")
	assert.NotContains(t, system, "%s")

	for _, name := range []string{
		driven.PromptQuestion, driven.PromptSummarize, driven.PromptExpand,
		driven.PromptAnswer, driven.PromptImprove,
	} {
		prompt, err := store.Load(name)
		require.NoError(t, err, name)
		assert.Contains(t, prompt, "%s", name)
	}
}

func TestPromptStore_Load_CustomContentIsTrimmed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "question.txt"), []byte("\n  Answer briefly: %s \n"), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptQuestion)
	require.NoError(t, err)
	assert.Equal(t, "Answer briefly: %s", prompt)
}

func TestPromptStore_Load_FallsBackAfterDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, _ = store.Load(driven.PromptExpand)
	require.NoError(t, os.Remove(filepath.Join(dir, "expand.txt")))
	store.Reload()

	prompt, err := store.Load(driven.PromptExpand)
	require.NoError(t, err)
	assert.Contains(t, prompt, "expand on the following text")
}

func TestPromptStore_Load_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("nonexistent_prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent_prompt")
}

func TestPromptStore_Reload_PicksUpEdits(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptImprove)
	require.NoError(t, err)

	path := filepath.Join(dir, "improve.txt")
	require.NoError(t, os.WriteFile(path, []byte("Polish: %s"), 0600))

	cached, _ := store.Load(driven.PromptImprove)
	assert.NotEqual(t, "Polish: %s", cached)

	store.Reload()
	fresh, err := store.Load(driven.PromptImprove)
	require.NoError(t, err)
	assert.Equal(t, "Polish: %s", fresh)
}

func TestPromptStore_DoesNotOverwriteExistingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "system.txt")
	require.NoError(t, os.WriteFile(path, []byte("Be terse."), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)
	_, _ = store.Load(driven.PromptQuestion)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Be terse.", string(data))
}

func TestPromptStore_Load_ConcurrentAccess(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			prompt, err := store.Load(driven.PromptSummarize)
			assert.NoError(t, err)
			assert.NotEmpty(t, prompt)
		}()
	}
	wg.Wait()
}

func TestPromptStore_Load_UnknownPromptIsNotFound(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("nonexistent_prompt")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPromptStore_Load_UnwritableDirUsesDefaults(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	store, err := NewPromptStore(filepath.Join(blocker, "prompts"))
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptQuestion)
	require.NoError(t, err)
	assert.Equal(t, "Please answer this question concisely: %s", prompt)
}

func TestPromptStore_EveryDriverPromptHasDefault(t *testing.T) {
	for _, name := range []string{
		driven.PromptSystem, driven.PromptQuestion, driven.PromptSummarize,
		driven.PromptExpand, driven.PromptAnswer, driven.PromptImprove,
	} {
		data, err := defaultsFS.ReadFile(defaultsDir + "/" + name + ".txt")
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}
}
