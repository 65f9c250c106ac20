package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driving/tui"
)

// runProgram starts a bubbletea program; tests replace it to avoid a terminal.
var runProgram = func(cmd *cobra.Command, app *tui.App) error {
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err := p.Run()
	return err
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive document assistant",
	Long: `Launch the interactive terminal UI for the document assistant.

Pick an action from the menu, edit the selected text and send it with
ctrl+s. The reply opens in a dialog that can be copied to the clipboard.

Controls:
  ↑/k, ↓/j - Navigate / scroll
  Enter    - Select action
  ctrl+s   - Send text
  c        - Copy result
  Esc      - Back / Close
  ?        - Help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runAssistTUI(cmd, "")
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runAssistTUI opens the assist TUI with the editor prefilled with initial.
func runAssistTUI(cmd *cobra.Command, initial string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if assistService == nil {
		return errors.New("assist service not configured")
	}

	app, err := tui.NewApp(&tui.Ports{Assist: assistService})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())
	app.SetInitialText(initial)

	if err := runProgram(cmd, app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
