// Package menu provides the assist action menu for the TUI.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

// Item is a single menu entry.
type Item struct {
	Label  string
	Action domain.AssistAction
	Quit   bool
}

// View lists the assist actions.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a menu with one entry per assist action and a quit entry.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	actions := domain.AllAssistActions()
	items := make([]Item, 0, len(actions)+1)
	for _, a := range actions {
		items = append(items, Item{Label: a.Label(), Action: a})
	}
	items = append(items, Item{Label: "Quit", Quit: true})

	return &View{
		styles: s,
		keymap: km,
		items:  items,
		width:  80,
		height: 24,
	}
}

// Init returns nil.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update moves the cursor and emits ActionSelected on enter.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, v.keymap.Up):
			if v.selected > 0 {
				v.selected--
			}
		case keymap.Matches(k, v.keymap.Down):
			if v.selected < len(v.items)-1 {
				v.selected++
			}
		case keymap.Matches(k, v.keymap.Select):
			return v, v.run(v.selected)
		case keymap.Matches(k, v.keymap.Pick):
			if n, ok := keymap.PickIndex(k); ok && n < len(v.items) {
				v.selected = n
				return v, v.run(n)
			}
		case keymap.Matches(k, v.keymap.Quit):
			return v, tea.Quit
		}
	}

	return v, nil
}

// run emits the command for entry i.
func (v *View) run(i int) tea.Cmd {
	item := v.items[i]
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ActionSelected{Action: item.Action}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("AutoAnswer"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Document assistant"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		label := fmt.Sprintf("%d. %s", i+1, item.Label)
		if i == v.selected {
			b.WriteString("▸ ")
			b.WriteString(v.styles.Selected.Render(label))
		} else {
			b.WriteString("  ")
			b.WriteString(v.styles.Normal.Render(label))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// SetDimensions sets the view size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the cursor index.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the menu entries.
func (v *View) Items() []Item {
	return v.items
}
