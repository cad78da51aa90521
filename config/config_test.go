package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/meysamhadeli/codectx/context_builder/models"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand(t *testing.T) *cobra.Command {
	t.Helper()
	cfgFile = ""
	t.Cleanup(func() { cfgFile = "" })
	cmd := &cobra.Command{Use: "codectx"}
	InitFlags(cmd)
	return cmd
}

func TestLoadConfigs_Defaults(t *testing.T) {
	cmd := newTestCommand(t)

	cfg, err := LoadConfigs(cmd, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig, *cfg)

	options, err := cfg.GenerationOptions()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultOptions(), options)
}

func TestLoadConfigs_Precedence(t *testing.T) {
	cwd := t.TempDir()
	content := "format: json\nmax_tokens: 5000\nminify: true\ncache_size: 16\n"
	require.NoError(t, os.WriteFile(filepath.Join(cwd, ConfigFileName+".yml"), []byte(content), 0644))

	t.Setenv("CODECTX_MAX_TOKENS", "7000")
	t.Setenv("CODECTX_THEME", "monokai")

	cmd := newTestCommand(t)
	require.NoError(t, cmd.PersistentFlags().Set("theme", "github"))

	cfg, err := LoadConfigs(cmd, cwd)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Format, "file overrides defaults")
	assert.True(t, cfg.Minify)
	assert.Equal(t, 16, cfg.CacheSize)
	assert.Equal(t, 7000, cfg.MaxTokens, "environment overrides file")
	assert.Equal(t, "github", cfg.Theme, "flags override environment")
}

func TestLoadConfigs_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"format": "plain", "include_full_content": true}`), 0644))

	cmd := newTestCommand(t)
	require.NoError(t, cmd.PersistentFlags().Set("config", path))

	cfg, err := LoadConfigs(cmd, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "plain", cfg.Format)
	assert.True(t, cfg.IncludeFullContent)
}

func TestLoadConfigs_MissingExplicitFile(t *testing.T) {
	cmd := newTestCommand(t)
	require.NoError(t, cmd.PersistentFlags().Set("config", filepath.Join(t.TempDir(), "absent.yml")))

	_, err := LoadConfigs(cmd, t.TempDir())
	assert.Error(t, err)
}

func TestGenerationOptions_Invalid(t *testing.T) {
	cfg := DefaultConfig
	cfg.Format = "html"
	_, err := cfg.GenerationOptions()
	assert.Error(t, err)

	cfg = DefaultConfig
	cfg.MaxTokens = 0
	_, err = cfg.GenerationOptions()
	assert.Error(t, err)
}

func TestLoaderOptions(t *testing.T) {
	cfg := DefaultConfig
	cfg.MaxWorkers = 3
	cfg.MaxFileSizeKB = 64

	options := cfg.LoaderOptions()
	assert.Equal(t, 3, options.MaxWorkers)
	assert.Equal(t, 64, options.MaxFileSizeKB)
}

func TestGetConfigFileType(t *testing.T) {
	assert.Equal(t, "json", GetConfigFileType("a.json"))
	assert.Equal(t, "yaml", GetConfigFileType("a.yml"))
	assert.Equal(t, "yaml", GetConfigFileType("a.yaml"))
	assert.Equal(t, "", GetConfigFileType("a.toml"))
}
