package menu

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewView_ListsActionsThenQuit(t *testing.T) {
	v := NewView(nil, nil)

	items := v.Items()
	require.Len(t, items, len(domain.AllAssistActions())+1)
	assert.Equal(t, domain.AssistSummarize, items[0].Action)
	assert.Equal(t, "Summarize selected text", items[0].Label)
	assert.True(t, items[len(items)-1].Quit)
	assert.Nil(t, v.Init())
}

func TestView_Navigation(t *testing.T) {
	v := NewView(nil, nil)

	v.Update(key("up"))
	assert.Equal(t, 0, v.Selected())

	v.Update(key("down"))
	v.Update(key("j"))
	assert.Equal(t, 2, v.Selected())

	v.Update(key("k"))
	assert.Equal(t, 1, v.Selected())

	for i := 0; i < 10; i++ {
		v.Update(key("down"))
	}
	assert.Equal(t, len(v.Items())-1, v.Selected())
}

func TestView_EnterEmitsActionSelected(t *testing.T) {
	v := NewView(nil, nil)
	v.Update(key("down"))

	_, cmd := v.Update(key("enter"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ActionSelected{Action: domain.AssistExpand}, cmd())
}

func TestView_EnterOnQuit(t *testing.T) {
	v := NewView(nil, nil)
	for range v.Items() {
		v.Update(key("down"))
	}

	_, cmd := v.Update(key("enter"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_QuitKey(t *testing.T) {
	v := NewView(nil, nil)

	_, cmd := v.Update(key("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_Render(t *testing.T) {
	v := NewView(nil, nil)
	assert.Equal(t, "Initialising...", v.View())

	v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	out := v.View()
	assert.Contains(t, out, "AutoAnswer")
	assert.Contains(t, out, "Improve writing")
	assert.Contains(t, out, "1. Summarize selected text")
	assert.Contains(t, out, "Quit")
}

func TestView_DigitRunsEntry(t *testing.T) {
	v := NewView(nil, nil)

	_, cmd := v.Update(key("2"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.ActionSelected)
	require.True(t, ok)
	assert.Equal(t, v.Items()[1].Action, msg.Action)
	assert.Equal(t, 1, v.Selected())

	_, cmd = v.Update(key("9"))
	assert.Nil(t, cmd)
}

func TestView_DigitOnQuit(t *testing.T) {
	v := NewView(nil, nil)
	n := len(v.Items())

	_, cmd := v.Update(key(fmt.Sprint(n)))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}
