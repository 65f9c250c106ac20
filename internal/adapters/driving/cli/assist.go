package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driven"
)

var (
	assistDoc         string
	assistFile        string
	assistJSON        bool
	assistInteractive bool
)

var assistCmd = &cobra.Command{
	Use:   "assist [action] [text]",
	Short: "Summarize, expand, answer, improve or generate text",
	Long: `Run a writing assistant action over a piece of text.

Actions:
  summarize  Summarize selected text
  expand     Expand selected text
  answer     Answer question in selection
  improve    Improve writing
  generate   Generate content (the text is sent as the prompt)

The text can be given as an argument, read from stdin with "-", taken
from a Google Doc with --doc, or read from a local file with --file
(plain text, Markdown, HTML or .docx).

Examples:
  autoanswer assist summarize "Photosynthesis converts light..."
  pbpaste | autoanswer assist improve -
  autoanswer assist answer --doc 1AbC...
  autoanswer assist summarize --file notes.md
  autoanswer assist --interactive`,
	Args: cobra.MaximumNArgs(2),
	RunE: runAssist,
}

func init() {
	assistCmd.Flags().StringVar(&assistDoc, "doc", "", "Google Doc ID or URL to read the text from")
	assistCmd.Flags().StringVarP(&assistFile, "file", "f", "", "local document to read the text from")
	assistCmd.MarkFlagsMutuallyExclusive("doc", "file")
	assistCmd.Flags().BoolVar(&assistJSON, "json", false, "output the result as JSON")
	assistCmd.Flags().BoolVarP(&assistInteractive, "interactive", "i", false, "pick the action and text in the terminal UI")
	rootCmd.AddCommand(assistCmd)
}

func runAssist(cmd *cobra.Command, args []string) error {
	if assistService == nil {
		return errors.New("assist service not configured")
	}

	if assistInteractive || len(args) == 0 {
		initial := ""
		switch {
		case assistDoc != "" || assistFile != "":
			text, err := assistInput(cmd, nil)
			if err != nil {
				return err
			}
			initial = text
		case len(args) == 2 && args[1] != "-":
			initial = args[1]
		}
		return runAssistTUI(cmd, initial)
	}

	action := domain.AssistAction(strings.ToLower(args[0]))
	if !action.IsValid() {
		return fmt.Errorf("%w: unknown action %q", domain.ErrInvalidInput, args[0])
	}

	text, err := assistInput(cmd, args)
	if err != nil {
		return err
	}

	if !assistService.Available() {
		return fmt.Errorf("%w: run 'autoanswer settings apikey'", domain.ErrLLMUnavailable)
	}

	result, err := assistService.Run(cmd.Context(), action, text)
	if err != nil {
		if errors.Is(err, domain.ErrEmptySelection) {
			return errors.New("please select some text first")
		}
		return fmt.Errorf("%s failed: %w", action, err)
	}

	if assistJSON {
		return outputJSON(cmd, result)
	}
	cmd.Println(result.Title)
	cmd.Println(strings.Repeat("=", len(result.Title)))
	cmd.Println(result.Content)
	return nil
}

// assistInput resolves the text for an action from --doc, --file, stdin or args.
func assistInput(cmd *cobra.Command, args []string) (string, error) {
	switch {
	case assistDoc != "":
		text, err := documentText(cmd, args, "--doc", docSource, "google docs", assistDoc)
		return text, withGoogleHint(err, "document")
	case assistFile != "":
		return documentText(cmd, args, "--file", fileSource, "local files", assistFile)
	}

	if len(args) < 2 {
		return "", nil
	}
	if args[1] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return args[1], nil
}

// documentText reads the body of a document given by flag.
func documentText(cmd *cobra.Command, args []string, flag string, src driven.DocumentSource, name, ref string) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("use either text or %s, not both", flag)
	}
	if src == nil {
		return "", fmt.Errorf("%w: %s", domain.ErrFormSourceUnavailable, name)
	}
	_, body, err := src.Text(cmd.Context(), ref)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return body, nil
}
