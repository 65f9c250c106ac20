package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driving"
	"github.com/custodia-labs/autoanswer-cli/internal/core/reconcile"
)

// mockAnswerService reconciles a fixed reply for every question.
type mockAnswerService struct {
	reply   string
	err     error
	forms   []*domain.Form
	options []driving.AnswerOptions
}

func (m *mockAnswerService) AnswerQuestion(_ context.Context, q domain.Question) (domain.Outcome, error) {
	match := reconcile.Reconcile(q, m.reply)
	status := domain.OutcomeAnswered
	if !match.Matched() {
		status = domain.OutcomeSkipped
	}
	return domain.Outcome{
		QuestionID:   q.ID,
		QuestionText: q.Text,
		FieldType:    q.FieldType,
		Options:      q.Options,
		Answer:       m.reply,
		Match:        match,
		Status:       status,
	}, nil
}

func (m *mockAnswerService) AnswerForm(
	ctx context.Context, form *domain.Form, opts driving.AnswerOptions,
) (*domain.Run, error) {
	m.forms = append(m.forms, form)
	m.options = append(m.options, opts)
	if m.err != nil {
		return nil, m.err
	}

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	run := &domain.Run{ID: "run-1", FormID: form.ID, FormTitle: form.Title, Model: "mock", StartedAt: start}
	for i, q := range form.Questions {
		outcome, _ := m.AnswerQuestion(ctx, q)
		run.Outcomes = append(run.Outcomes, outcome)
		if opts.Observer != nil {
			opts.Observer(i, outcome)
		}
	}
	run.FinishedAt = start.Add(1500 * time.Millisecond)
	return run, nil
}

// mockAssistService echoes the action and text.
type mockAssistService struct {
	available bool
	err       error
	texts     []string
}

func (m *mockAssistService) Run(
	_ context.Context, action domain.AssistAction, text string,
) (*domain.AssistResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptySelection
	}
	m.texts = append(m.texts, text)
	if m.err != nil {
		return nil, m.err
	}
	return &domain.AssistResult{Action: action, Title: action.Title(), Content: "<" + text + ">"}, nil
}

func (m *mockAssistService) Available() bool {
	return m.available
}

// mockSettingsService keeps settings in memory.
type mockSettingsService struct {
	settings    domain.AppSettings
	validateErr error
	pingErr     error
}

func newMockSettings() *mockSettingsService {
	s := domain.DefaultAppSettings()
	s.LLM.APIKey = "sk-test-1234567890"
	return &mockSettingsService{settings: s}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(s *domain.AppSettings) error {
	m.settings = *s
	return nil
}

func (m *mockSettingsService) SetAPIKey(key string) error {
	if key == "" {
		return errors.New("API key cannot be empty")
	}
	m.settings.LLM.APIKey = key
	return nil
}

func (m *mockSettingsService) SetLLMProvider(p domain.AIProvider, model, baseURL string) error {
	if !p.IsValid() {
		return fmt.Errorf("%w: provider %q", domain.ErrInvalidInput, p)
	}
	if model == "" {
		model = domain.DefaultLLMModels()[p]
	}
	m.settings.LLM.Provider, m.settings.LLM.Model, m.settings.LLM.BaseURL = p, model, baseURL
	return nil
}

func (m *mockSettingsService) SetFill(delay time.Duration, watch bool) error {
	m.settings.Fill = domain.FillSettings{Delay: delay, Watch: watch}
	return nil
}

func (m *mockSettingsService) SetGoogleToken(token string) error {
	m.settings.Google = domain.GoogleSettings{AccessToken: strings.TrimSpace(token)}
	return nil
}

func (m *mockSettingsService) SetGoogleLogin(g domain.GoogleSettings) error {
	m.settings.Google = g
	return nil
}

func (m *mockSettingsService) Validate() error { return m.validateErr }

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

func (m *mockSettingsService) ValidateLLMConfig(context.Context) error { return m.pingErr }

// mockHistoryService serves runs from a map.
type mockHistoryService struct {
	runs    []domain.Run
	deleted []string
}

func (m *mockHistoryService) List(_ context.Context, limit int) ([]domain.Run, error) {
	if limit > 0 && limit < len(m.runs) {
		return m.runs[:limit], nil
	}
	return m.runs, nil
}

func (m *mockHistoryService) Get(_ context.Context, id string) (*domain.Run, error) {
	for i := range m.runs {
		if m.runs[i].ID == id {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockHistoryService) Delete(_ context.Context, id string) error {
	if _, err := m.Get(context.Background(), id); err != nil {
		return err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

// mockFormSource returns a fixed form.
type mockFormSource struct {
	name string
	form *domain.Form
	err  error
	refs []string
}

func (m *mockFormSource) Name() string { return m.name }

func (m *mockFormSource) Load(_ context.Context, ref string) (*domain.Form, error) {
	m.refs = append(m.refs, ref)
	if m.err != nil {
		return nil, m.err
	}
	if m.form == nil {
		return nil, domain.ErrNotFound
	}
	f := *m.form
	f.ID = ref
	return &f, nil
}

// mockDocSource returns fixed document text and records the references read.
type mockDocSource struct {
	body string
	err  error
	refs []string
}

func (m *mockDocSource) Text(_ context.Context, ref string) (string, string, error) {
	m.refs = append(m.refs, ref)
	if m.err != nil {
		return "", "", m.err
	}
	return "Doc", m.body, nil
}

// mockWatcher records Watch calls.
type mockWatcher struct {
	paths []string
}

func (m *mockWatcher) Watch(_ context.Context, path string, _ driving.AnswerOptions) error {
	m.paths = append(m.paths, path)
	return nil
}

func quizForm() *domain.Form {
	return &domain.Form{
		Title: "Astronomy quiz",
		Questions: []domain.Question{
			domain.NewQuestion("q1", "Largest planet?", domain.FieldMultipleChoice, "Mars", "Jupiter", "Venus"),
			domain.NewQuestion("q2", "Colours of the flag?", domain.FieldCheckbox, "Red", "Green", "Blue"),
		},
	}
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with the given services and arguments.
func execute(t *testing.T, s *Services, stdin string, args ...string) (string, error) {
	t.Helper()

	SetServices(s)
	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		SetServices(nil)
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
