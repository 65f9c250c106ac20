// Package status provides the status bar shown at the bottom of the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driving/tui/styles"
)

// State is what the status bar is currently reporting.
type State string

const (
	StateReady      State = "ready"
	StateProcessing State = "processing"
	StateCopied     State = "copied"
	StateError      State = "error"
)

// Bar displays the application state on the left and key hints on the right.
type Bar struct {
	styles  *styles.Styles
	spinner spinner.Model
	state   State
	message string
	hints   []key.Binding
	width   int
}

// NewBar creates a status bar in the ready state.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Warning

	return &Bar{
		styles:  s,
		spinner: sp,
		state:   StateReady,
		hints:   km.MenuHelp(),
		width:   80,
	}
}

// Init returns nil; the spinner starts when processing begins.
func (b *Bar) Init() tea.Cmd {
	return nil
}

// Update advances the spinner while processing.
func (b *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); ok && b.state == StateProcessing {
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(msg)
		return b, cmd
	}
	return b, nil
}

// View renders the bar at its configured width.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderHints()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (b *Bar) renderLeft() string {
	switch b.state {
	case StateProcessing:
		return b.spinner.View() + b.styles.Warning.Render(" Processing...")
	case StateCopied:
		return b.styles.Success.Render("Copied to clipboard!")
	case StateError:
		if b.message == "" {
			return b.styles.Error.Render("Error")
		}
		return b.styles.Error.Render("Error: " + b.message)
	default:
		if b.message != "" {
			return b.styles.Normal.Render(b.message)
		}
		return b.styles.Muted.Render("Ready")
	}
}

func (b *Bar) renderHints() string {
	parts := make([]string, 0, len(b.hints))
	for _, h := range b.hints {
		help := h.Help()
		parts = append(parts, fmt.Sprintf("%s %s", help.Key, help.Desc))
	}
	return b.styles.Help.Render(strings.Join(parts, " · "))
}

// StartProcessing switches to the processing state and returns the spinner tick.
func (b *Bar) StartProcessing() tea.Cmd {
	b.state = StateProcessing
	b.message = ""
	return b.spinner.Tick
}

// SetState sets the current state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// SetError switches to the error state with the error text.
func (b *Bar) SetError(err error) {
	b.state = StateError
	b.message = ""
	if err != nil {
		b.message = err.Error()
	}
}

// SetMessage sets the text shown in the ready state.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetHints replaces the key hints shown on the right.
func (b *Bar) SetHints(hints []key.Binding) {
	b.hints = hints
}

// SetWidth sets the bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the bar width.
func (b *Bar) Width() int {
	return b.width
}

// Clear resets the bar to the ready state.
func (b *Bar) Clear() {
	b.state = StateReady
	b.message = ""
}
