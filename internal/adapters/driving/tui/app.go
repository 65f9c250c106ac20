package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driving/tui/views/result"
	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

// App is the assist TUI following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView   *menu.View
	input      *input.SelectionInput
	resultView *result.View
	statusBar  *status.Bar

	// initial is the selection the editor is prefilled with.
	initial string

	// action is the action chosen from the menu.
	action domain.AssistAction

	currentView messages.ViewType
	processing  bool
	err         error

	width  int
	height int
	ready  bool
}

var _ tea.Model = (*App)(nil)

// NewApp creates the assist TUI.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		menuView:    menu.NewView(s, km),
		input:       input.NewSelectionInput(s),
		resultView:  result.NewView(s, km),
		statusBar:   status.NewBar(s, km),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context assist calls run under.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// SetInitialText prefills the editor, e.g. with text read from a document.
func (a *App) SetInitialText(text string) {
	a.initial = text
}

// SetCopyFunc replaces the clipboard writer used by the result dialog.
func (a *App) SetCopyFunc(fn result.CopyFunc) {
	a.resultView.SetCopyFunc(fn)
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("autoanswer - assist")
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.processing {
			return a, nil
		}
		return a.handleKey(msg)

	case messages.ActionSelected:
		a.openEditor(msg.Action)
		return a, nil

	case messages.AssistRequested:
		a.processing = true
		a.err = nil
		return a, tea.Batch(a.statusBar.StartProcessing(), a.runAssist(msg.Action, msg.Text))

	case messages.AssistCompleted:
		a.processing = false
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetError(msg.Err)
			return a, nil
		}
		a.statusBar.Clear()
		a.resultView.SetResult(msg.Result)
		a.switchTo(messages.ViewResult)
		return a, nil

	case messages.Copied:
		if msg.Err != nil {
			a.statusBar.SetError(fmt.Errorf("copy: %w", msg.Err))
			return a, nil
		}
		a.statusBar.SetState(status.StateCopied)
		return a, nil

	case messages.ViewChanged:
		a.switchTo(msg.View)
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetError(msg.Err)
		return a, nil
	}

	a.statusBar, cmd = a.statusBar.Update(msg)
	if cmd != nil {
		return a, cmd
	}
	if a.currentView == messages.ViewInput {
		a.input, cmd = a.input.Update(msg)
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	k := msg.String()

	switch a.currentView {
	case messages.ViewMenu:
		if keymap.Matches(k, a.keymap.Help) {
			a.switchTo(messages.ViewHelp)
			return a, nil
		}
		a.menuView, cmd = a.menuView.Update(msg)
		return a, cmd

	case messages.ViewInput:
		switch {
		case keymap.Matches(k, a.keymap.Back):
			a.switchTo(messages.ViewMenu)
			return a, nil
		case keymap.Matches(k, a.keymap.Submit):
			return a, a.submit()
		}
		a.input, cmd = a.input.Update(msg)
		return a, cmd

	case messages.ViewResult:
		if a.statusBar.State() == status.StateCopied {
			a.statusBar.Clear()
		}
		a.resultView, cmd = a.resultView.Update(msg)
		return a, cmd

	case messages.ViewHelp:
		if keymap.Matches(k, a.keymap.Back) || keymap.Matches(k, a.keymap.Quit) {
			a.switchTo(messages.ViewMenu)
		}
		return a, nil
	}

	return a, nil
}

// openEditor shows the editor for the chosen action, prefilled with the initial text.
func (a *App) openEditor(action domain.AssistAction) {
	a.action = action
	a.input.Reset()
	a.input.SetValue(a.initial)
	a.input.Focus()
	if action == domain.AssistGenerate {
		a.input.SetLabel("Describe what to generate")
	} else {
		a.input.SetLabel(action.Label())
	}
	a.switchTo(messages.ViewInput)
}

func (a *App) submit() tea.Cmd {
	text := a.input.Value()
	if strings.TrimSpace(text) == "" {
		return func() tea.Msg {
			return messages.ErrorOccurred{Err: domain.ErrEmptySelection}
		}
	}
	action := a.action
	return func() tea.Msg {
		return messages.AssistRequested{Action: action, Text: text}
	}
}

func (a *App) runAssist(action domain.AssistAction, text string) tea.Cmd {
	ctx := a.ctx
	svc := a.ports.Assist
	return func() tea.Msg {
		res, err := svc.Run(ctx, action, text)
		return messages.AssistCompleted{Result: res, Err: err}
	}
}

func (a *App) switchTo(view messages.ViewType) {
	a.currentView = view
	if view != messages.ViewResult {
		a.statusBar.Clear()
	}
	switch view {
	case messages.ViewMenu:
		a.statusBar.SetHints(a.keymap.MenuHelp())
	case messages.ViewInput:
		a.statusBar.SetHints(a.keymap.InputHelp())
	case messages.ViewResult:
		a.statusBar.SetHints(a.keymap.ResultHelp())
	case messages.ViewHelp:
		a.statusBar.SetHints(nil)
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewMenu:
		body = a.menuView.View()
	case messages.ViewInput:
		body = a.input.View()
	case messages.ViewResult:
		body = a.resultView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	}

	return body + "\n" + a.statusBar.View()
}

func (a *App) viewHelp() string {
	return `Help

Menu:
  j/k, ↑/↓    Choose an action
  enter       Open the editor
  q           Quit

Editor:
  (type)      Edit the selected text
  ctrl+s      Send to the assistant
  esc         Back to menu

Result:
  j/k, ↑/↓    Scroll
  c           Copy to clipboard
  esc         Close

[esc] back to menu`
}

// Run starts the TUI in the alternate screen.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the active view.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Action returns the action chosen from the menu.
func (a *App) Action() domain.AssistAction {
	return a.action
}

// Processing reports whether an assist call is in flight.
func (a *App) Processing() bool {
	return a.processing
}

// Err returns the last error.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the terminal size is known.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sizes every view to the terminal.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.input.SetSize(width, height)
	a.resultView.SetDimensions(width, height-1)
	a.statusBar.SetWidth(width)
}
