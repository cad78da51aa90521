package cmd

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/meysamhadeli/codectx/constants/lipgloss"
	"github.com/meysamhadeli/codectx/corpus"
	"github.com/meysamhadeli/codectx/token_management"
	"github.com/spf13/cobra"
)

// corpusEstimate is the pre-generation size prediction of a selection.
type corpusEstimate struct {
	Files  int
	Chars  int
	Bytes  int
	Tokens int
	Limit  int
}

// Fits reports whether the predicted size stays within the effective limit.
func (e corpusEstimate) Fits() bool {
	return e.Tokens <= e.Limit
}

// estimateCmd: codectx estimate [dir]
var estimateCmd = &cobra.Command{
	Use:   "estimate [dir]",
	Short: "Predict the token size of the context before generating it.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		include, _ := cmd.Flags().GetStringSlice("include")

		estimate, err := runEstimate(cmd.Context(), deps, resolveRoot(deps, args), include)
		if err != nil {
			return err
		}
		printEstimate(cmd.OutOrStdout(), estimate)
		return nil
	},
}

func init() {
	estimateCmd.Flags().StringSliceP("include", "i", nil, "Paths, relative to the directory, to select instead of the default selection")
	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(ctx context.Context, deps *RootDependencies, root string, include []string) (corpusEstimate, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	options, err := deps.Config.GenerationOptions()
	if err != nil {
		return corpusEstimate{}, err
	}

	c, err := deps.Loader.Load(ctx, root)
	if err != nil {
		return corpusEstimate{}, err
	}

	files, _ := corpus.Flatten(c, buildSelection(c, include))
	estimate := corpusEstimate{Files: len(files), Limit: token_management.EffectiveMaxTokens(options.MaxTokens)}
	for _, file := range files {
		estimate.Chars += utf8.RuneCountInString(file.Content)
		estimate.Bytes += len(file.Content)
	}
	estimate.Tokens = token_management.EstimateCorpus(estimate.Files, estimate.Chars)
	return estimate, nil
}

func printEstimate(w io.Writer, estimate corpusEstimate) {
	summary := fmt.Sprintf("Files: %d  Size: %s  Estimated tokens: %s / %s",
		estimate.Files,
		humanize.Bytes(uint64(estimate.Bytes)),
		humanize.Comma(int64(estimate.Tokens)),
		humanize.Comma(int64(estimate.Limit)))
	fmt.Fprintln(w, lipgloss.BoxStyle.Render(summary))

	if estimate.Fits() {
		fmt.Fprintln(w, lipgloss.Green.Render("✓ The selection fits the token budget."))
	} else {
		fmt.Fprintln(w, lipgloss.Yellow.Render("The selection is likely to exceed the token budget; narrow it with --include."))
	}
}
