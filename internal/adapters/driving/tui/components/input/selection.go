// Package input provides the text editing component for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driving/tui/styles"
)

const (
	minWidth  = 20
	minHeight = 3
)

// SelectionInput is a multi-line editor holding the text an assist action runs on.
type SelectionInput struct {
	area   textarea.Model
	styles *styles.Styles
	label  string
	width  int
}

// NewSelectionInput creates a focused, empty editor.
func NewSelectionInput(s *styles.Styles) *SelectionInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ta := textarea.New()
	ta.Placeholder = "Paste or type the selected text..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(60)
	ta.SetHeight(8)
	ta.Focus()

	return &SelectionInput{
		area:   ta,
		styles: s,
		label:  "Selection",
		width:  60,
	}
}

// Init starts the cursor blink.
func (s *SelectionInput) Init() tea.Cmd {
	return textarea.Blink
}

// Update forwards messages to the textarea.
func (s *SelectionInput) Update(msg tea.Msg) (*SelectionInput, tea.Cmd) {
	var cmd tea.Cmd
	s.area, cmd = s.area.Update(msg)
	return s, cmd
}

// View renders the label and the framed editor.
func (s *SelectionInput) View() string {
	var b strings.Builder
	b.WriteString(s.styles.Title.Render(s.label))
	b.WriteString("\n")
	b.WriteString(s.styles.Editor.Render(s.area.View()))
	return b.String()
}

// SetLabel sets the heading shown above the editor.
func (s *SelectionInput) SetLabel(label string) {
	s.label = label
}

// Label returns the heading shown above the editor.
func (s *SelectionInput) Label() string {
	return s.label
}

// Value returns the edited text.
func (s *SelectionInput) Value() string {
	return s.area.Value()
}

// SetValue replaces the edited text.
func (s *SelectionInput) SetValue(value string) {
	s.area.SetValue(value)
}

// Focus gives the editor keyboard focus.
func (s *SelectionInput) Focus() tea.Cmd {
	return s.area.Focus()
}

// Blur removes keyboard focus.
func (s *SelectionInput) Blur() {
	s.area.Blur()
}

// Focused reports whether the editor has focus.
func (s *SelectionInput) Focused() bool {
	return s.area.Focused()
}

// SetSize fits the editor into the given terminal area.
func (s *SelectionInput) SetSize(width, height int) {
	w := width - 4
	if w < minWidth {
		w = minWidth
	}
	h := height - 6
	if h < minHeight {
		h = minHeight
	}
	s.width = w
	s.area.SetWidth(w)
	s.area.SetHeight(h)
}

// Width returns the editor width.
func (s *SelectionInput) Width() int {
	return s.width
}

// Reset clears the editor.
func (s *SelectionInput) Reset() {
	s.area.Reset()
}
