package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/meysamhadeli/codectx/context_builder/models"
	"github.com/meysamhadeli/codectx/corpus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ConfigFileName is looked up, without extension, in the working directory.
const ConfigFileName = "codectx-config"

// Config represents the structure of the configuration file
type Config struct {
	Theme                   string `mapstructure:"theme"`
	Format                  string `mapstructure:"format"`
	IncludeMetadata         bool   `mapstructure:"include_metadata"`
	Minify                  bool   `mapstructure:"minify"`
	MaxTokens               int    `mapstructure:"max_tokens"`
	IncludeFullContent      bool   `mapstructure:"include_full_content"`
	IncludeDependencyGraph  bool   `mapstructure:"include_dependency_graph"`
	IncludeExecutiveSummary bool   `mapstructure:"include_executive_summary"`
	MaxWorkers              int    `mapstructure:"max_workers"`
	MaxFileSizeKB           int    `mapstructure:"max_file_size_kb"`
	CacheSize               int    `mapstructure:"cache_size"`
	Debug                   bool   `mapstructure:"debug"`
}

var defaultOptions = models.DefaultOptions()

// DefaultConfig values
var DefaultConfig = Config{
	Theme:                   "dracula",
	Format:                  string(defaultOptions.Format),
	IncludeMetadata:         defaultOptions.IncludeMetadata,
	Minify:                  defaultOptions.Minify,
	MaxTokens:               defaultOptions.MaxTokens,
	IncludeFullContent:      defaultOptions.IncludeFullContent,
	IncludeDependencyGraph:  defaultOptions.IncludeDependencyGraph,
	IncludeExecutiveSummary: defaultOptions.IncludeExecutiveSummary,
	MaxWorkers:              0,
	MaxFileSizeKB:           corpus.MaxTextFileSize / 1024,
	CacheSize:               4096,
	Debug:                   false,
}

// envBindings maps configuration keys to environment variables.
var envBindings = map[string]string{
	"theme":                     "CODECTX_THEME",
	"format":                    "CODECTX_FORMAT",
	"include_metadata":          "CODECTX_INCLUDE_METADATA",
	"minify":                    "CODECTX_MINIFY",
	"max_tokens":                "CODECTX_MAX_TOKENS",
	"include_full_content":      "CODECTX_INCLUDE_FULL_CONTENT",
	"include_dependency_graph":  "CODECTX_INCLUDE_DEPENDENCY_GRAPH",
	"include_executive_summary": "CODECTX_INCLUDE_EXECUTIVE_SUMMARY",
	"max_workers":               "CODECTX_MAX_WORKERS",
	"max_file_size_kb":          "CODECTX_MAX_FILE_SIZE_KB",
	"cache_size":                "CODECTX_CACHE_SIZE",
	"debug":                     "CODECTX_DEBUG",
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs resolves the configuration from defaults, the configuration
// file, environment variables and flags, in increasing precedence.
func LoadConfigs(rootCmd *cobra.Command, cwd string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Explicitly bind environment variables to config keys
	bindEnv(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if fileType := GetConfigFileType(cfgFile); fileType != "" {
			v.SetConfigType(fileType)
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath(cwd)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Bind CLI flags to override config values
	if err := bindFlags(v, rootCmd); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &config, nil
}

// setDefaults sets all default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("theme", DefaultConfig.Theme)
	v.SetDefault("format", DefaultConfig.Format)
	v.SetDefault("include_metadata", DefaultConfig.IncludeMetadata)
	v.SetDefault("minify", DefaultConfig.Minify)
	v.SetDefault("max_tokens", DefaultConfig.MaxTokens)
	v.SetDefault("include_full_content", DefaultConfig.IncludeFullContent)
	v.SetDefault("include_dependency_graph", DefaultConfig.IncludeDependencyGraph)
	v.SetDefault("include_executive_summary", DefaultConfig.IncludeExecutiveSummary)
	v.SetDefault("max_workers", DefaultConfig.MaxWorkers)
	v.SetDefault("max_file_size_kb", DefaultConfig.MaxFileSizeKB)
	v.SetDefault("cache_size", DefaultConfig.CacheSize)
	v.SetDefault("debug", DefaultConfig.Debug)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv(v *viper.Viper) {
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
}

// bindFlags binds the persistent flags named like the configuration keys.
func bindFlags(v *viper.Viper, rootCmd *cobra.Command) error {
	for key := range envBindings {
		flag := rootCmd.PersistentFlags().Lookup(key)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", key, err)
		}
	}
	return nil
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Set the highlighting theme used by --preview (e.g., 'dracula', 'monokai', 'github').")
	rootCmd.PersistentFlags().StringP("format", "f", DefaultConfig.Format, "Output encoding: 'markdown', 'json' or 'plain'.")
	rootCmd.PersistentFlags().Bool("include_metadata", DefaultConfig.IncludeMetadata, "Include file counts, size, languages and timestamp.")
	rootCmd.PersistentFlags().Bool("minify", DefaultConfig.Minify, "Emit compact output.")
	rootCmd.PersistentFlags().Int("max_tokens", DefaultConfig.MaxTokens, "Token ceiling of the generated context, before the 10% safety margin.")
	rootCmd.PersistentFlags().Bool("include_full_content", DefaultConfig.IncludeFullContent, "Emit whole file contents instead of 500 character previews.")
	rootCmd.PersistentFlags().Bool("include_dependency_graph", DefaultConfig.IncludeDependencyGraph, "Include the key dependencies section.")
	rootCmd.PersistentFlags().Bool("include_executive_summary", DefaultConfig.IncludeExecutiveSummary, "Include the executive summary and histograms.")
	rootCmd.PersistentFlags().Int("max_workers", DefaultConfig.MaxWorkers, "Concurrent file reads while loading (0 uses the number of CPUs).")
	rootCmd.PersistentFlags().Int("max_file_size_kb", DefaultConfig.MaxFileSizeKB, "Files above this size are treated as binary and never read.")
	rootCmd.PersistentFlags().Int("cache_size", DefaultConfig.CacheSize, "Number of import extraction results kept in memory.")
	rootCmd.PersistentFlags().Bool("debug", DefaultConfig.Debug, "Enable debug logging on stderr.")
}

// GetConfigFileType returns the type of the configuration file based on its extension
func GetConfigFileType(filename string) string {
	if strings.HasSuffix(filename, ".json") {
		return "json"
	} else if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
		return "yaml"
	}
	return ""
}

// GenerationOptions converts the configuration into report options.
func (c *Config) GenerationOptions() (models.Options, error) {
	format, err := models.ParseFormat(c.Format)
	if err != nil {
		return models.Options{}, err
	}
	options := models.Options{
		Format:                  format,
		IncludeMetadata:         c.IncludeMetadata,
		Minify:                  c.Minify,
		MaxTokens:               c.MaxTokens,
		IncludeFullContent:      c.IncludeFullContent,
		IncludeDependencyGraph:  c.IncludeDependencyGraph,
		IncludeExecutiveSummary: c.IncludeExecutiveSummary,
	}
	if err := options.Validate(); err != nil {
		return models.Options{}, err
	}
	return options, nil
}

// LoaderOptions converts the configuration into corpus loading limits.
func (c *Config) LoaderOptions() corpus.LoaderOptions {
	return corpus.LoaderOptions{
		MaxWorkers:    c.MaxWorkers,
		MaxFileSizeKB: c.MaxFileSizeKB,
	}
}
