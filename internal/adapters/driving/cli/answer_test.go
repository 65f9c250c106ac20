package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driven/google"
	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

func answerServices(reply string) (*Services, *mockAnswerService, *mockFormSource) {
	answer := &mockAnswerService{reply: reply}
	files := &mockFormSource{name: "file", form: quizForm()}
	return &Services{Answer: answer, Settings: newMockSettings(), FileForms: files}, answer, files
}

func TestAnswerCmd_FormFile(t *testing.T) {
	s, answer, files := answerServices("Jupiter")

	out, err := execute(t, s, "", "answer", "quiz.yaml")

	require.NoError(t, err)
	assert.Equal(t, []string{"quiz.yaml"}, files.refs)
	require.Len(t, answer.options, 1)
	assert.Zero(t, answer.options[0].Delay)
	assert.Contains(t, out, "Astronomy quiz (2 questions)")
	assert.Contains(t, out, "    -> Jupiter")
	assert.Contains(t, out, `?? no option matched "Jupiter"`)
	assert.Contains(t, out, "Answered 1 of 2, 1 for review in 1.5s")
}

func TestAnswerCmd_FlagsReachOptions(t *testing.T) {
	s, answer, _ := answerServices("Mars")

	_, err := execute(t, s, "", "answer", "quiz.yaml", "--delay", "250ms", "--no-history")

	require.NoError(t, err)
	require.Len(t, answer.options, 1)
	assert.Equal(t, 250*time.Millisecond, answer.options[0].Delay)
	assert.True(t, answer.options[0].SkipHistory)
}

func TestAnswerCmd_JSON(t *testing.T) {
	s, answer, _ := answerServices("Venus")

	out, err := execute(t, s, "", "answer", "quiz.yaml", "--json")
	require.NoError(t, err)

	var run domain.Run
	require.NoError(t, json.Unmarshal([]byte(out), &run))
	assert.Equal(t, "run-1", run.ID)
	assert.Len(t, run.Outcomes, 2)
	assert.Nil(t, answer.options[0].Observer)
}

func TestAnswerCmd_GoogleForm(t *testing.T) {
	s, _, files := answerServices("Mars")
	forms := &mockFormSource{name: "googleforms", form: quizForm()}
	s.GoogleForms = forms

	_, err := execute(t, s, "", "answer", "--google-form", "abc123")

	require.NoError(t, err)
	assert.Equal(t, []string{"abc123"}, forms.refs)
	assert.Empty(t, files.refs)
}

func TestAnswerCmd_GoogleFormUnavailable(t *testing.T) {
	s, _, _ := answerServices("Mars")

	_, err := execute(t, s, "", "answer", "--google-form", "abc123")

	assert.ErrorIs(t, err, domain.ErrFormSourceUnavailable)
}

func TestAnswerCmd_GoogleFormSignedOut(t *testing.T) {
	s, answer, _ := answerServices("Mars")
	s.GoogleForms = &mockFormSource{name: "googleforms", err: apiError(http.StatusUnauthorized)}

	_, err := execute(t, s, "", "answer", "--google-form", "abc123")

	require.Error(t, err)
	assert.ErrorIs(t, err, google.ErrUnauthorized)
	assert.Contains(t, err.Error(), "run 'autoanswer settings google-login'")
	assert.Empty(t, answer.forms)
}

func TestAnswerCmd_GoogleFormNotShared(t *testing.T) {
	for _, code := range []int{http.StatusForbidden, http.StatusNotFound} {
		s, _, _ := answerServices("Mars")
		s.GoogleForms = &mockFormSource{name: "googleforms", err: apiError(code)}

		_, err := execute(t, s, "", "answer", "--google-form", "abc123")

		require.Error(t, err, "status %d", code)
		assert.Contains(t, err.Error(), "Check the form ID and that it is shared with your Google account")
	}
}

func TestAnswerCmd_Watch(t *testing.T) {
	s, answer, _ := answerServices("Mars")
	watcher := &mockWatcher{}
	s.Watcher = watcher

	out, err := execute(t, s, "", "answer", "quiz.yaml", "-w")

	require.NoError(t, err)
	assert.Equal(t, []string{"quiz.yaml"}, watcher.paths)
	assert.Empty(t, answer.forms)
	assert.Contains(t, out, "Watching quiz.yaml")
}

func TestAnswerCmd_WatchFromSettings(t *testing.T) {
	s, _, _ := answerServices("Mars")
	settings := newMockSettings()
	settings.settings.Fill.Watch = true
	s.Settings = settings
	watcher := &mockWatcher{}
	s.Watcher = watcher

	_, err := execute(t, s, "", "answer", "quiz.yaml")

	require.NoError(t, err)
	assert.Equal(t, []string{"quiz.yaml"}, watcher.paths)
}

func TestAnswerCmd_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *Services)
		args  []string
		want  string
	}{
		{"no form", nil, []string{"answer"}, "provide a form file or --google-form"},
		{"both", nil, []string{"answer", "quiz.yaml", "--google-form", "x"}, "not both"},
		{"no service", func(s *Services) { s.Answer = nil }, []string{"answer", "quiz.yaml"}, "answer service not configured"},
		{
			"invalid settings",
			func(s *Services) { s.Settings.(*mockSettingsService).validateErr = domain.ErrAPIKeyNotSet },
			[]string{"answer", "quiz.yaml"},
			"API key not set",
		},
		{
			"run error",
			func(s *Services) { s.Answer.(*mockAnswerService).err = errors.New("store down") },
			[]string{"answer", "quiz.yaml"},
			"answer failed: store down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := answerServices("Mars")
			if tt.setup != nil {
				tt.setup(s)
			}

			_, err := execute(t, s, "", tt.args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPrintOutcome_Failed(t *testing.T) {
	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(buf)

	printOutcome(cmd, domain.Outcome{QuestionText: "Q?", Status: domain.OutcomeFailed, Error: "timeout"})

	assert.Equal(t, "  Q?\n    !! failed: timeout\n", buf.String())
}
