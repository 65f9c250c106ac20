package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/reconcile"
)

var (
	resolveAnswer string
	resolveJSON   bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Match an answer against options without calling the LLM",
	Long: `Run the answer reconciler directly.

Examples:
  autoanswer resolve single --answer "It is Jupiter" Mars Jupiter Venus
  autoanswer resolve multi --answer "red and blue" Red Green Blue
  autoanswer resolve text --answer "  Paris  "`,
}

var resolveSingleCmd = &cobra.Command{
	Use:         "single [options...]",
	Short:       "Pick at most one option",
	Args:        cobra.MinimumNArgs(1),
	Annotations: offline,
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, ok := reconcile.ResolveSingleChoice(resolveAnswer, args)
		result := domain.MatchResult{Kind: domain.KindSingleChoice, SelectedIndex: idx, HasSelection: ok}
		return outputResolve(cmd, result, args)
	},
}

var resolveMultiCmd = &cobra.Command{
	Use:         "multi [options...]",
	Short:       "Pick every option the answer covers",
	Args:        cobra.MinimumNArgs(1),
	Annotations: offline,
	RunE: func(cmd *cobra.Command, args []string) error {
		result := domain.MatchResult{
			Kind:            domain.KindMultiChoice,
			SelectedIndex:   -1,
			SelectedIndices: reconcile.ResolveMultiChoice(resolveAnswer, args),
		}
		return outputResolve(cmd, result, args)
	},
}

var resolveTextCmd = &cobra.Command{
	Use:         "text",
	Short:       "Normalise a free-text answer",
	Args:        cobra.NoArgs,
	Annotations: offline,
	RunE: func(cmd *cobra.Command, _ []string) error {
		result := domain.MatchResult{
			Kind:          domain.KindFreeText,
			SelectedIndex: -1,
			Verbatim:      reconcile.NormalizeVerbatim(resolveAnswer),
		}
		return outputResolve(cmd, result, nil)
	},
}

func init() {
	resolveCmd.PersistentFlags().StringVarP(&resolveAnswer, "answer", "a", "", "answer text to reconcile")
	resolveCmd.PersistentFlags().BoolVar(&resolveJSON, "json", false, "output the match as JSON")
	resolveCmd.AddCommand(resolveSingleCmd, resolveMultiCmd, resolveTextCmd)
	rootCmd.AddCommand(resolveCmd)
}

func outputResolve(cmd *cobra.Command, result domain.MatchResult, options []string) error {
	if resolveJSON {
		return outputJSON(cmd, result)
	}

	labels := result.Labels(options)
	if len(labels) == 0 {
		cmd.Println("No match")
		return nil
	}

	switch result.Kind {
	case domain.KindFreeText:
		cmd.Println(result.Verbatim)
	case domain.KindSingleChoice:
		cmd.Printf("[%d] %s\n", result.SelectedIndex, labels[0])
	case domain.KindMultiChoice:
		parts := make([]string, 0, len(labels))
		for i, idx := range result.SelectedIndices {
			parts = append(parts, fmt.Sprintf("[%d] %s", idx, labels[i]))
		}
		cmd.Println(strings.Join(parts, "\n"))
	}
	return nil
}
