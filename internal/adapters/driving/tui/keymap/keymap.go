// Package keymap holds the TUI key bindings and their help groups.
package keymap

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap lists every binding the views react to.
type KeyMap struct {
	Quit   key.Binding
	Help   key.Binding
	Back   key.Binding // closes the editor or result
	Up     key.Binding
	Down   key.Binding
	Select key.Binding // runs the highlighted menu entry
	Pick   key.Binding // runs menu entry N directly
	Submit key.Binding // sends the edited text
	Copy   key.Binding // result to clipboard
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns vim-style arrows plus the menu shortcuts.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:   bind("q", "quit", "q", "ctrl+c"),
		Help:   bind("?", "help", "?"),
		Back:   bind("esc", "close", "esc"),
		Up:     bind("↑/k", "up", "up", "k"),
		Down:   bind("↓/j", "down", "down", "j"),
		Select: bind("enter", "select", "enter"),
		Pick:   bind("1-9", "run", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
		Submit: bind("ctrl+s", "send", "ctrl+s"),
		Copy:   bind("c", "copy", "c"),
	}
}

// PickIndex returns the zero-based menu position for a digit key.
func PickIndex(keyStr string) (int, bool) {
	if len(keyStr) != 1 || keyStr[0] < '1' || keyStr[0] > '9' {
		return 0, false
	}
	return int(keyStr[0] - '1'), true
}

// MenuHelp lists hints for the action menu.
func (k *KeyMap) MenuHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Pick, k.Quit}
}

// InputHelp lists hints for the text editor.
func (k *KeyMap) InputHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Back}
}

// ResultHelp lists hints for the result dialog.
func (k *KeyMap) ResultHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Copy, k.Back}
}

func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.MenuHelp(), k.InputHelp(), k.ResultHelp()}
}

// Matches reports whether keyStr is one of binding's keys.
func Matches(keyStr string, binding key.Binding) bool {
	return slices.Contains(binding.Keys(), keyStr)
}
