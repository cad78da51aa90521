package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/meysamhadeli/codectx/constants/lipgloss"
	"github.com/meysamhadeli/codectx/context_builder"
	"github.com/meysamhadeli/codectx/context_builder/models"
	"github.com/meysamhadeli/codectx/token_management"
	"github.com/meysamhadeli/codectx/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// generateParams are the per-invocation flags of the generate command.
type generateParams struct {
	Include       []string
	Exclude       []string
	Output        string
	Save          bool
	AcceptPartial bool
	Preview       bool
	Search        string
}

// generateIO is the terminal the generate command talks to.
type generateIO struct {
	In          io.Reader
	Out         io.Writer
	Err         io.Writer
	Interactive bool
}

// generateCmd: codectx generate [dir]
var generateCmd = &cobra.Command{
	Use:   "generate [dir]",
	Short: "Generate a context document for the selected files.",
	Long: `The 'generate' subcommand loads the directory (the working directory by default),
selects every non-binary file outside excluded directories, or only the --include
paths, and renders the context document in the configured format. When the document
exceeds the token budget a truncated version is offered.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}

		var params generateParams
		params.Include, _ = cmd.Flags().GetStringSlice("include")
		params.Exclude, _ = cmd.Flags().GetStringSlice("exclude")
		params.Output, _ = cmd.Flags().GetString("output")
		params.Save, _ = cmd.Flags().GetBool("save")
		params.AcceptPartial, _ = cmd.Flags().GetBool("accept-partial")
		params.Preview, _ = cmd.Flags().GetBool("preview")
		params.Search, _ = cmd.Flags().GetString("search")

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		streams := generateIO{
			In:          os.Stdin,
			Out:         os.Stdout,
			Err:         os.Stderr,
			Interactive: term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())),
		}
		return runGenerate(ctx, deps, resolveRoot(deps, args), params, streams)
	},
}

func init() {
	generateCmd.Flags().StringSliceP("include", "i", nil, "Paths, relative to the directory, to select instead of the default selection")
	generateCmd.Flags().StringSliceP("exclude", "x", nil, "Paths, relative to the directory, to remove from the selection")
	generateCmd.Flags().StringP("output", "o", "", "Write the context to this file instead of stdout")
	generateCmd.Flags().BoolP("save", "s", false, "Write the context to codebase-context-<date>.<ext> in the working directory")
	generateCmd.Flags().Bool("accept-partial", false, "Accept a truncated context without asking when the token budget is exceeded")
	generateCmd.Flags().BoolP("preview", "p", false, "Print the context with syntax highlighting")
	generateCmd.Flags().String("search", "", "Keep only the lines, or for JSON the files, matching this term")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(ctx context.Context, deps *RootDependencies, root string, params generateParams, streams generateIO) error {
	options, err := deps.Config.GenerationOptions()
	if err != nil {
		return err
	}

	spinner := pterm.DefaultSpinner.WithWriter(streams.Err).
		WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100 * time.Millisecond).
		WithRemoveWhenDone(true)

	spinnerInstance, _ := spinner.Start("Loading Context...")
	stopSpinner := func() {
		if spinnerInstance != nil {
			_ = spinnerInstance.Stop()
		}
	}

	c, err := deps.Loader.Load(ctx, root)
	if err != nil {
		stopSpinner()
		return err
	}

	selection := buildSelection(c, params.Include)
	for _, path := range params.Exclude {
		selection = selection.Deselect(path)
	}

	if spinnerInstance != nil {
		spinnerInstance.UpdateText("Generating Context...")
	}
	result, err := deps.Generator.Generate(ctx, c, selection, options)
	stopSpinner()

	if err != nil {
		if !errors.Is(err, context_builder.ErrTokenBudgetExceeded) {
			return err
		}
		accepted, promptErr := acceptPartial(params, streams, result)
		if promptErr != nil {
			return promptErr
		}
		if !accepted {
			return err
		}
	}

	text := result.Text
	if params.Search != "" {
		filtered, searchErr := context_builder.Search(text, params.Search, options)
		var parseErr *context_builder.ParseError
		switch {
		case searchErr == nil:
			text = filtered
		case errors.As(searchErr, &parseErr):
			deps.Logger.Warn("Search skipped, context could not be parsed",
				zap.String("term", params.Search),
				zap.Error(searchErr))
		default:
			return searchErr
		}
	}

	if err := writeContext(deps, params, streams, options, text); err != nil {
		return err
	}

	printSummary(streams.Err, result, options)
	return nil
}

// acceptPartial decides whether a truncated result is written.
func acceptPartial(params generateParams, streams generateIO, result *models.Result) (bool, error) {
	if params.AcceptPartial {
		return true, nil
	}
	if !streams.Interactive || result == nil {
		return false, nil
	}
	fmt.Fprintln(streams.Err, lipgloss.Yellow.Render(result.Reason))
	return utils.ConfirmPrompt(bufio.NewReader(streams.In), streams.Err, "Use a truncated context instead?")
}

func writeContext(deps *RootDependencies, params generateParams, streams generateIO, options models.Options, text string) error {
	output := params.Output
	if output == "" && params.Save {
		output = filepath.Join(deps.Cwd, context_builder.DefaultOutputName(options.Format, time.Now()))
	}

	if output != "" {
		if err := os.WriteFile(output, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write context to %s: %w", output, err)
		}
		fmt.Fprintln(streams.Err, lipgloss.Green.Render(fmt.Sprintf("✓ Context written to %s", output)))
		return nil
	}

	if params.Preview && streams.Interactive {
		return utils.RenderPreview(streams.Out, text, string(options.Format), deps.Config.Theme)
	}

	_, err := io.WriteString(streams.Out, text)
	return err
}

func printSummary(w io.Writer, result *models.Result, options models.Options) {
	limit := token_management.EffectiveMaxTokens(options.MaxTokens)
	summary := fmt.Sprintf("Files: %d  Tokens: %s / %s  Status: %s",
		result.Report.Metadata.TotalFiles,
		humanize.Comma(int64(result.Tokens)),
		humanize.Comma(int64(limit)),
		result.Status)
	fmt.Fprintln(w, lipgloss.BoxStyle.Render(summary))
}
