package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driving"
)

var (
	answerGoogleForm string
	answerJSON       bool
	answerDelay      time.Duration
	answerWatch      bool
	answerNoHistory  bool
)

var answerCmd = &cobra.Command{
	Use:   "answer [form-file]",
	Short: "Answer every question of a form",
	Long: `Answer every question of a form file (YAML or JSON) or a Google Form.

Questions are sent to the LLM one at a time, paced by the configured delay.
Choice answers are matched against the options; replies that match no
option are left for manual review.

Form file format:
  title: Astronomy quiz
  questions:
    - text: Your name?
    - id: planet
      text: Largest planet?
      type: multiple_choice   # short_answer, paragraph, checkbox, dropdown
      options: [Mars, Jupiter, Venus]

Examples:
  autoanswer answer quiz.yaml
  autoanswer answer quiz.yaml --watch
  autoanswer answer --google-form 1FAIpQLSf...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnswer,
}

func init() {
	answerCmd.Flags().StringVar(&answerGoogleForm, "google-form", "", "Google Form ID or edit URL")
	answerCmd.Flags().BoolVar(&answerJSON, "json", false, "output the run as JSON")
	answerCmd.Flags().DurationVar(&answerDelay, "delay", 0, "pause between questions (default from settings)")
	answerCmd.Flags().BoolVarP(&answerWatch, "watch", "w", false, "keep answering new questions as the file changes")
	answerCmd.Flags().BoolVar(&answerNoHistory, "no-history", false, "do not record the run")
	rootCmd.AddCommand(answerCmd)
}

func runAnswer(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}
	if len(args) == 0 && answerGoogleForm == "" {
		return errors.New("provide a form file or --google-form")
	}
	if len(args) > 0 && answerGoogleForm != "" {
		return errors.New("use either a form file or --google-form, not both")
	}

	watch := answerWatch
	if settingsService != nil {
		if err := settingsService.Validate(); err != nil {
			return err
		}
		if !cmd.Flags().Changed("watch") {
			if settings, err := settingsService.Get(); err == nil {
				watch = settings.Fill.Watch && answerGoogleForm == ""
			}
		}
	}

	opts := driving.AnswerOptions{
		Delay:       answerDelay,
		SkipHistory: answerNoHistory,
	}
	if !answerJSON {
		opts.Observer = func(_ int, outcome domain.Outcome) {
			printOutcome(cmd, outcome)
		}
	}

	if watch {
		return watchForm(cmd, args, opts)
	}

	form, err := loadForm(cmd, args)
	if err != nil {
		return err
	}

	if !answerJSON {
		cmd.Printf("%s (%d questions)\n\n", formTitle(form), len(form.Questions))
	}

	run, runErr := answerService.AnswerForm(cmd.Context(), form, opts)
	if run == nil {
		return fmt.Errorf("answer failed: %w", runErr)
	}

	if answerJSON {
		if err := outputJSON(cmd, run); err != nil {
			return err
		}
	} else {
		printSummary(cmd, run)
	}
	return runErr
}

func watchForm(cmd *cobra.Command, args []string, opts driving.AnswerOptions) error {
	if len(args) == 0 {
		return errors.New("--watch needs a form file")
	}
	if formWatcher == nil {
		return errors.New("form watcher not configured")
	}
	cmd.Printf("Watching %s (Ctrl+C to stop)\n\n", args[0])
	return formWatcher.Watch(cmd.Context(), args[0], opts)
}

func loadForm(cmd *cobra.Command, args []string) (*domain.Form, error) {
	if answerGoogleForm != "" {
		if googleForms == nil {
			return nil, fmt.Errorf("%w: google forms", domain.ErrFormSourceUnavailable)
		}
		form, err := googleForms.Load(cmd.Context(), answerGoogleForm)
		return form, withGoogleHint(err, "form")
	}
	if fileForms == nil {
		return nil, fmt.Errorf("%w: form files", domain.ErrFormSourceUnavailable)
	}
	return fileForms.Load(cmd.Context(), args[0])
}

func formTitle(form *domain.Form) string {
	if form.Title != "" {
		return form.Title
	}
	return form.ID
}

func printOutcome(cmd *cobra.Command, outcome domain.Outcome) {
	cmd.Printf("  %s\n", outcome.QuestionText)
	switch outcome.Status {
	case domain.OutcomeAnswered:
		cmd.Printf("    -> %s\n", strings.Join(outcome.Selected(), ", "))
	case domain.OutcomeSkipped:
		cmd.Printf("    ?? no option matched %q, left for review\n", outcome.Answer)
	default:
		cmd.Printf("    !! %s: %s\n", outcome.Status, outcome.Error)
	}
}

func printSummary(cmd *cobra.Command, run *domain.Run) {
	s := run.Summary()
	cmd.Println()
	cmd.Printf("Answered %d of %d", s.Answered, s.Total)
	if s.Skipped > 0 {
		cmd.Printf(", %d for review", s.Skipped)
	}
	if s.Failed > 0 {
		cmd.Printf(", %d failed", s.Failed)
	}
	if s.Unsupported > 0 {
		cmd.Printf(", %d unsupported", s.Unsupported)
	}
	cmd.Printf(" in %s\n", run.Duration().Round(time.Millisecond))
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
