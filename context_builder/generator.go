package context_builder

import (
	"context"
	"fmt"
	"time"

	"github.com/meysamhadeli/codectx/code_analyzer"
	analyzer_contracts "github.com/meysamhadeli/codectx/code_analyzer/contracts"
	"github.com/meysamhadeli/codectx/context_builder/contracts"
	"github.com/meysamhadeli/codectx/context_builder/models"
	"github.com/meysamhadeli/codectx/corpus"
	"github.com/meysamhadeli/codectx/token_management"
	token_contracts "github.com/meysamhadeli/codectx/token_management/contracts"
	"go.uber.org/zap"
)

// Generator assembles, renders and budgets context reports. It holds no
// per-generation state, so one value serves concurrent callers.
type Generator struct {
	mapper    analyzer_contracts.IDependencyMapper
	estimator token_contracts.ITokenEstimator
	logger    *zap.Logger
	now       func() time.Time
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithLogger sets the logger used for per-path failures.
func WithLogger(logger *zap.Logger) GeneratorOption {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithClock sets the source of report timestamps.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithDependencyMapper replaces the default dependency mapper.
func WithDependencyMapper(mapper analyzer_contracts.IDependencyMapper) GeneratorOption {
	return func(g *Generator) {
		if mapper != nil {
			g.mapper = mapper
		}
	}
}

// WithEstimator replaces the default token estimator.
func WithEstimator(estimator token_contracts.ITokenEstimator) GeneratorOption {
	return func(g *Generator) {
		if estimator != nil {
			g.estimator = estimator
		}
	}
}

// NewGenerator creates a generator with the default mapper, estimator and clock.
func NewGenerator(opts ...GeneratorOption) contracts.IGenerator {
	g := &Generator{
		estimator: token_management.NewTokenEstimator(),
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.mapper == nil {
		g.mapper = code_analyzer.NewDependencyMapper(nil, nil, g.logger)
	}
	return g
}

// Generate renders the selected files of c. Selected paths that are missing,
// unreadable or binary are logged and skipped. When the rendered text exceeds
// the effective token limit the result is partial and is returned together
// with a *TokenBudgetExceededError. ErrNoFilesLoaded and ErrNoFilesSelected
// come without a result. ctx is only checked before work starts.
func (g *Generator) Generate(ctx context.Context, c corpus.Corpus, selection corpus.Selection, options models.Options) (*models.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generation options: %w", err)
	}
	if c.IsEmpty() {
		return nil, ErrNoFilesLoaded
	}
	if selection.IsEmpty() {
		return nil, ErrNoFilesSelected
	}

	files, failures := corpus.Flatten(c, selection)
	for _, failure := range failures {
		g.logger.Warn("Skipping selected path",
			zap.String("path", failure.Path),
			zap.Error(failure))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: none of %d selected paths has readable content", ErrNoFilesSelected, selection.Len())
	}

	report := g.BuildReport(files)

	text, err := Format(report, options)
	if err != nil {
		return nil, err
	}

	tokens := g.estimator.Estimate(text)
	limit := token_management.EffectiveMaxTokens(options.MaxTokens)

	g.logger.Debug("Context generated",
		zap.Int("files", len(files)),
		zap.Int("skipped", len(failures)),
		zap.String("format", string(options.Format)),
		zap.Int("tokens", tokens),
		zap.Int("limit", limit))

	if tokens <= limit {
		return &models.Result{Status: models.StatusComplete, Text: text, Report: report, Tokens: tokens}, nil
	}

	budgetErr := &TokenBudgetExceededError{Tokens: tokens, Limit: limit}
	partial := g.estimator.Truncate(text, limit)
	if limit < g.estimator.MarkerTokens() {
		g.logger.Warn("Token limit is below the truncation marker cost, partial context holds the marker only",
			zap.Int("limit", limit))
	}
	return &models.Result{
		Status: models.StatusPartial,
		Text:   partial,
		Report: report,
		Tokens: g.estimator.Estimate(partial),
		Reason: budgetErr.Error(),
	}, budgetErr
}

// BuildReport aggregates metadata, the dependency graph and the architecture
// overview of already flattened files.
func (g *Generator) BuildReport(files []corpus.SelectedFile) *models.ContextReport {
	graph := g.mapper.Map(files)
	return &models.ContextReport{
		Metadata:     buildMetadata(files, g.now()),
		Dependencies: graph,
		Architecture: code_analyzer.Summarize(files, graph),
		Files:        files,
	}
}

func buildMetadata(files []corpus.SelectedFile, now time.Time) models.Metadata {
	metadata := models.Metadata{
		TotalFiles: len(files),
		Languages:  []string{},
		Timestamp:  now.UTC().Format(time.RFC3339),
		FileTypes:  FileTypeHistogram(files).Map(),
	}
	seen := make(map[string]struct{})
	for _, file := range files {
		metadata.TotalSize += len(file.Content)
		if _, ok := seen[file.Language]; !ok {
			seen[file.Language] = struct{}{}
			metadata.Languages = append(metadata.Languages, file.Language)
		}
	}
	return metadata
}
