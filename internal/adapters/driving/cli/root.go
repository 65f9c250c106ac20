// Package cli implements the autoanswer command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driven"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driving"
	"github.com/custodia-labs/autoanswer-cli/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

var (
	verbose bool
	dataDir string
)

// Services holds everything the commands call into.
// Any field may be nil; commands that need it report it as not configured.
type Services struct {
	Answer   driving.AnswerService
	Assist   driving.AssistService
	Settings driving.SettingsService
	History  driving.HistoryService
	Watcher  driving.FormWatcher

	// FileForms loads local form files.
	FileForms driven.FormSource

	// GoogleForms loads live Google Forms.
	GoogleForms driven.FormSource

	// Docs reads Google Docs for assist input.
	Docs driven.DocumentSource

	// Files reads local documents for assist input.
	Files driven.DocumentSource

	// Close releases stores and clients.
	Close func()
}

// Bootstrap builds the services for a data directory.
type Bootstrap func(dataDir string) (*Services, error)

var (
	bootstrap Bootstrap

	answerService   driving.AnswerService
	assistService   driving.AssistService
	settingsService driving.SettingsService
	historyService  driving.HistoryService
	formWatcher     driving.FormWatcher
	fileForms       driven.FormSource
	googleForms     driven.FormSource
	docSource       driven.DocumentSource
	fileSource      driven.DocumentSource
	closeServices   func()
)

var rootCmd = &cobra.Command{
	Use:   "autoanswer",
	Short: "Answer form questions with an LLM",
	Long: `autoanswer fills in forms with answers from a large language model.

Each question is sent to the configured provider (z.ai by default) and the
reply is reconciled against the question's options: one option for
multiple choice and dropdowns, any number for checkboxes, and the reply
itself for text fields.

Get started:
  autoanswer settings apikey
  autoanswer answer quiz.yaml`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log prompts, answers and decisions")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.autoanswer)")
}

// SetBootstrap registers the function that builds services on first use.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs services directly, bypassing the bootstrap.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	answerService = s.Answer
	assistService = s.Assist
	settingsService = s.Settings
	historyService = s.History
	formWatcher = s.Watcher
	fileForms = s.FileForms
	googleForms = s.GoogleForms
	docSource = s.Docs
	fileSource = s.Files
	closeServices = s.Close
}

// offline marks commands that run without services.
var offline = map[string]string{"offline": "true"}

// initServices applies global flags and runs the bootstrap once.
func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations["offline"] == "true" || bootstrap == nil || settingsService != nil {
		return nil
	}
	services, err := bootstrap(dataDir)
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	SetServices(services)
	return nil
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer func() {
		if closeServices != nil {
			closeServices()
		}
	}()
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}
