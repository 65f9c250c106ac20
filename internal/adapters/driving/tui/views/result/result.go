// Package result provides the dialog that shows an assist reply.
package result

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

// CopyFunc writes text to the system clipboard.
type CopyFunc func(text string) error

// View is a scrollable popup holding the result of an assist action.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	viewport viewport.Model
	copy     CopyFunc
	result   *domain.AssistResult
	width    int
	height   int
}

// NewView creates an empty result dialog that copies with atotto/clipboard.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	vp := viewport.New(60, 10)
	vp.KeyMap.Up = km.Up
	vp.KeyMap.Down = km.Down

	return &View{
		styles:   s,
		keymap:   km,
		viewport: vp,
		copy:     clipboard.WriteAll,
		width:    80,
		height:   24,
	}
}

// SetCopyFunc replaces the clipboard writer.
func (v *View) SetCopyFunc(fn CopyFunc) {
	if fn != nil {
		v.copy = fn
	}
}

// SetResult shows a new result and scrolls to the top.
func (v *View) SetResult(r *domain.AssistResult) {
	v.result = r
	v.viewport.SetContent(v.wrapped())
	v.viewport.GotoTop()
}

// Result returns the result being shown.
func (v *View) Result() *domain.AssistResult {
	return v.result
}

// Init returns nil.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles scrolling, copy and close.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case keymap.Matches(k, v.keymap.Copy):
			return v, v.copyContent()
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

func (v *View) copyContent() tea.Cmd {
	if v.result == nil {
		return nil
	}
	text := v.result.Content
	copyFn := v.copy
	return func() tea.Msg {
		return messages.Copied{Err: copyFn(text)}
	}
}

// View renders the dialog centred in the terminal.
func (v *View) View() string {
	if v.result == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(v.styles.DialogTitle.Render(v.result.Title))
	b.WriteString("\n\n")
	b.WriteString(v.viewport.View())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("c copy · esc close"))

	dialog := v.styles.Dialog.Render(b.String())
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, dialog)
}

// SetDimensions fits the dialog to the terminal.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height

	w := width*3/4 - 6
	if w < 20 {
		w = 20
	}
	h := height*2/3 - 8
	if h < 3 {
		h = 3
	}
	v.viewport.Width = w
	v.viewport.Height = h
	if v.result != nil {
		v.viewport.SetContent(v.wrapped())
	}
}

func (v *View) wrapped() string {
	if v.result == nil {
		return ""
	}
	return lipgloss.NewStyle().Width(v.viewport.Width).Render(v.result.Content)
}
