// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the assist action menu.
	ViewMenu ViewType = iota
	// ViewInput is the text selection editor.
	ViewInput
	// ViewResult is the result dialog.
	ViewResult
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewInput:
		return "input"
	case ViewResult:
		return "result"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ActionSelected is sent when an assist action is picked from the menu.
type ActionSelected struct {
	Action domain.AssistAction
}

// AssistRequested asks the app to run an action over text.
type AssistRequested struct {
	Action domain.AssistAction
	Text   string
}

// AssistCompleted carries the reply of an assist action.
type AssistCompleted struct {
	Result *domain.AssistResult
	Err    error
}

// Copied reports the outcome of a clipboard copy.
type Copied struct {
	Err error
}

// ErrorOccurred is sent when an error needs to be displayed.
type ErrorOccurred struct {
	Err error
}

// Quit is a command to exit the application.
type Quit struct{}
