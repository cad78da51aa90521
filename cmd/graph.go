package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/meysamhadeli/codectx/code_analyzer/models"
	"github.com/meysamhadeli/codectx/constants/lipgloss"
	"github.com/meysamhadeli/codectx/corpus"
	"github.com/spf13/cobra"
)

// graphCmd: codectx graph [dir]
var graphCmd = &cobra.Command{
	Use:   "graph [dir]",
	Short: "Print the dependency graph of the selected files as JSON.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		include, _ := cmd.Flags().GetStringSlice("include")
		stats, _ := cmd.Flags().GetBool("stats")

		graph, err := runGraph(cmd.Context(), deps, resolveRoot(deps, args), include)
		if err != nil {
			return err
		}
		if err := writeGraph(cmd.OutOrStdout(), graph); err != nil {
			return err
		}
		if stats {
			printCacheStats(cmd.ErrOrStderr(), deps)
		}
		return nil
	},
}

func init() {
	graphCmd.Flags().StringSliceP("include", "i", nil, "Paths, relative to the directory, to select instead of the default selection")
	graphCmd.Flags().BoolP("stats", "s", false, "Show import extraction cache statistics")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(ctx context.Context, deps *RootDependencies, root string, include []string) (models.DependencyGraph, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	c, err := deps.Loader.Load(ctx, root)
	if err != nil {
		return nil, err
	}
	files, _ := corpus.Flatten(c, buildSelection(c, include))
	return deps.Mapper.Map(files), nil
}

func writeGraph(w io.Writer, graph models.DependencyGraph) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(graph); err != nil {
		return fmt.Errorf("failed to encode dependency graph: %w", err)
	}
	return nil
}

func printCacheStats(w io.Writer, deps *RootDependencies) {
	stats := deps.Cache.GetPerformanceStats()
	fmt.Fprintln(w, lipgloss.Info.Render("Cache Statistics:"))
	fmt.Fprintf(w, "  %s %v\n", lipgloss.Gray.Render("Entries:"), stats["entries"])
	fmt.Fprintf(w, "  %s %v\n", lipgloss.Gray.Render("Requests:"), stats["total_requests"])
	fmt.Fprintf(w, "  %s %.1f%%\n", lipgloss.Gray.Render("Hit Rate:"), stats["hit_rate_percent"])
}
