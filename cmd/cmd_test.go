package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/meysamhadeli/codectx/config"
	"github.com/meysamhadeli/codectx/context_builder"
	"github.com/meysamhadeli/codectx/context_builder/models"
	"github.com/meysamhadeli/codectx/token_management"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	indexSource = "import { util } from './util'\nconsole.log(util)\n"
	utilSource  = "export const util = 1\n"
)

func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "index.ts"), []byte(indexSource), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "util.ts"), []byte(utilSource), 0644))
	return root
}

func newTestDependencies(t *testing.T, mutate func(cfg *config.Config)) *RootDependencies {
	t.Helper()
	cfg := config.DefaultConfig
	if mutate != nil {
		mutate(&cfg)
	}
	deps, err := newRootDependencies(t.TempDir(), &cfg, zap.NewNop())
	require.NoError(t, err)
	return deps
}

func TestRunGenerate_WritesContextToStdout(t *testing.T) {
	root := writeProject(t)
	deps := newTestDependencies(t, nil)

	var out bytes.Buffer
	err := runGenerate(context.Background(), deps, root, generateParams{}, generateIO{Out: &out, Err: io.Discard})
	require.NoError(t, err)

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "# Codebase Context"))
	assert.Contains(t, text, "### src/index.ts")
	assert.Contains(t, text, "### src/util.ts")
	assert.Contains(t, text, "- **Used by:** 1 file")
}

func TestRunGenerate_IncludeAndExclude(t *testing.T) {
	root := writeProject(t)
	deps := newTestDependencies(t, func(cfg *config.Config) { cfg.Format = "json" })

	var out bytes.Buffer
	params := generateParams{Include: []string{"src"}, Exclude: []string{"src/util.ts"}}
	require.NoError(t, runGenerate(context.Background(), deps, root, params, generateIO{Out: &out, Err: io.Discard}))

	view, err := context_builder.ParseView(out.String(), models.FormatJSON)
	require.NoError(t, err)
	require.Len(t, view.Report.Files, 1)
	assert.Equal(t, "src/index.ts", view.Report.Files[0].Path)
}

func TestRunGenerate_BudgetExceeded(t *testing.T) {
	root := writeProject(t)
	deps := newTestDependencies(t, func(cfg *config.Config) { cfg.MaxTokens = 20 })

	t.Run("refused when not interactive", func(t *testing.T) {
		var out bytes.Buffer
		err := runGenerate(context.Background(), deps, root, generateParams{}, generateIO{Out: &out, Err: io.Discard})
		require.Error(t, err)
		assert.True(t, errors.Is(err, context_builder.ErrTokenBudgetExceeded))
		assert.Empty(t, out.String())
	})

	t.Run("accepted by flag", func(t *testing.T) {
		var out bytes.Buffer
		err := runGenerate(context.Background(), deps, root, generateParams{AcceptPartial: true}, generateIO{Out: &out, Err: io.Discard})
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(out.String(), token_management.TruncationMarker))
	})

	t.Run("accepted at the prompt", func(t *testing.T) {
		var out bytes.Buffer
		streams := generateIO{In: strings.NewReader("y\n"), Out: &out, Err: io.Discard, Interactive: true}
		require.NoError(t, runGenerate(context.Background(), deps, root, generateParams{}, streams))
		assert.True(t, strings.HasSuffix(out.String(), token_management.TruncationMarker))
	})

	t.Run("declined at the prompt", func(t *testing.T) {
		var out bytes.Buffer
		streams := generateIO{In: strings.NewReader("n\n"), Out: &out, Err: io.Discard, Interactive: true}
		err := runGenerate(context.Background(), deps, root, generateParams{}, streams)
		assert.True(t, errors.Is(err, context_builder.ErrTokenBudgetExceeded))
		assert.Empty(t, out.String())
	})
}

func TestRunGenerate_OutputFileAndSearch(t *testing.T) {
	root := writeProject(t)
	deps := newTestDependencies(t, func(cfg *config.Config) { cfg.Format = "plain" })
	output := filepath.Join(t.TempDir(), "context.txt")

	var out bytes.Buffer
	params := generateParams{Output: output, Search: "util.ts"}
	require.NoError(t, runGenerate(context.Background(), deps, root, params, generateIO{Out: &out, Err: io.Discard}))
	assert.Empty(t, out.String())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	for _, line := range strings.Split(string(data), "\n") {
		assert.Contains(t, strings.ToLower(line), "util.ts")
	}
}

func TestRunGenerate_SearchOnTruncatedStructuredContext(t *testing.T) {
	root := writeProject(t)
	core, logs := observer.New(zapcore.WarnLevel)
	cfg := config.DefaultConfig
	cfg.Format = "json"
	cfg.MaxTokens = 60
	deps, err := newRootDependencies(t.TempDir(), &cfg, zap.New(core))
	require.NoError(t, err)

	var out bytes.Buffer
	params := generateParams{AcceptPartial: true, Search: "util"}
	require.NoError(t, runGenerate(context.Background(), deps, root, params, generateIO{Out: &out, Err: io.Discard}))

	assert.True(t, strings.HasSuffix(out.String(), token_management.TruncationMarker), "unfiltered partial context is written")

	skipped := logs.FilterMessage("Search skipped, context could not be parsed").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, "util", skipped[0].ContextMap()["term"])
}

func TestRunGenerate_EmptyDirectory(t *testing.T) {
	deps := newTestDependencies(t, nil)

	err := runGenerate(context.Background(), deps, t.TempDir(), generateParams{}, generateIO{Out: io.Discard, Err: io.Discard})
	assert.True(t, errors.Is(err, context_builder.ErrNoFilesLoaded))
}

func TestRunEstimate(t *testing.T) {
	root := writeProject(t)
	deps := newTestDependencies(t, nil)

	estimate, err := runEstimate(context.Background(), deps, root, nil)
	require.NoError(t, err)

	chars := utf8.RuneCountInString(indexSource) + utf8.RuneCountInString(utilSource)
	assert.Equal(t, 2, estimate.Files)
	assert.Equal(t, chars, estimate.Chars)
	assert.Equal(t, token_management.EstimateCorpus(2, chars), estimate.Tokens)
	assert.Equal(t, token_management.EffectiveMaxTokens(config.DefaultConfig.MaxTokens), estimate.Limit)
	assert.True(t, estimate.Fits())

	var out bytes.Buffer
	printEstimate(&out, estimate)
	assert.Contains(t, out.String(), "Files: 2")
}

func TestRunGraph(t *testing.T) {
	root := writeProject(t)
	deps := newTestDependencies(t, nil)

	graph, err := runGraph(context.Background(), deps, root, nil)
	require.NoError(t, err)

	require.Contains(t, graph, "src/index.ts")
	require.Contains(t, graph, "src/util.ts")
	assert.Equal(t, []string{"./util"}, graph["src/index.ts"].Imports)
	assert.Equal(t, []string{"src/index.ts"}, graph["src/util.ts"].UsedBy)

	var out bytes.Buffer
	require.NoError(t, writeGraph(&out, graph))
	assert.Contains(t, out.String(), `"usedBy"`)

	var stats bytes.Buffer
	printCacheStats(&stats, deps)
	assert.Contains(t, stats.String(), "Entries:")
	assert.Contains(t, stats.String(), " 2\n")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() { versionCmd.SetOut(nil) })
	require.NoError(t, versionCmd.Flags().Set("short", "true"))
	t.Cleanup(func() { _ = versionCmd.Flags().Set("short", "false") })

	require.NoError(t, versionCmd.RunE(versionCmd, nil))
	assert.Equal(t, "dev\n", out.String())
}
