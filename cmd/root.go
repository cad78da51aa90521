package cmd

import (
	"fmt"
	"os"

	"github.com/meysamhadeli/codectx/code_analyzer"
	analyzer_contracts "github.com/meysamhadeli/codectx/code_analyzer/contracts"
	"github.com/meysamhadeli/codectx/config"
	"github.com/meysamhadeli/codectx/constants/lipgloss"
	"github.com/meysamhadeli/codectx/context_builder"
	"github.com/meysamhadeli/codectx/context_builder/contracts"
	"github.com/meysamhadeli/codectx/corpus"
	"github.com/meysamhadeli/codectx/logging"
	"github.com/meysamhadeli/codectx/token_management"
	"github.com/meysamhadeli/codectx/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootDependencies holds the components shared by every subcommand.
type RootDependencies struct {
	Cwd       string
	Config    *config.Config
	Logger    *zap.Logger
	Loader    *corpus.Loader
	Cache     *code_analyzer.CacheManager
	Mapper    analyzer_contracts.IDependencyMapper
	Generator contracts.IGenerator
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "codectx",
	Short: "Generate LLM-ready context documents from a codebase.",
	Long: `codectx loads a project directory, maps the dependencies between the selected
files and renders a Markdown, JSON or plain text context document that fits a
configurable token budget.`,
	SilenceUsage: true,
}

func init() {
	config.InitFlags(rootCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	defer func() {
		_ = logging.Logger.Sync()
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
}

// handleRootCommand loads the configuration and wires the components used by
// the subcommands.
func handleRootCommand(cmd *cobra.Command) (*RootDependencies, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.LoadConfigs(cmd, cwd)
	if err != nil {
		return nil, err
	}

	if err := logging.Setup(cfg.Debug, "codectx", version.Version); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return newRootDependencies(cwd, cfg, logging.Logger)
}

func newRootDependencies(cwd string, cfg *config.Config, logger *zap.Logger) (*RootDependencies, error) {
	cache, err := code_analyzer.NewCacheManager(cfg.CacheSize)
	if err != nil {
		return nil, err
	}

	mapper := code_analyzer.NewDependencyMapper(code_analyzer.DefaultExtractorRegistry(), cache, logger)

	return &RootDependencies{
		Cwd:    cwd,
		Config: cfg,
		Logger: logger,
		Loader: corpus.NewLoader(cfg.LoaderOptions(), logger),
		Cache:  cache,
		Mapper: mapper,
		Generator: context_builder.NewGenerator(
			context_builder.WithLogger(logger),
			context_builder.WithDependencyMapper(mapper),
			context_builder.WithEstimator(token_management.NewTokenEstimator()),
		),
	}, nil
}

// resolveRoot returns the directory a subcommand operates on.
func resolveRoot(deps *RootDependencies, args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return deps.Cwd
}

// buildSelection selects the given paths, or the default selection when none
// are given.
func buildSelection(c corpus.Corpus, include []string) corpus.Selection {
	if len(include) == 0 {
		return corpus.DefaultSelection(c)
	}
	selection := corpus.NewSelection()
	for _, path := range include {
		selection = selection.Select(c, path)
	}
	return selection
}
