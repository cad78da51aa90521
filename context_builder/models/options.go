package models

import (
	"fmt"
	"strings"
)

// Format selects the output encoding of a report.
type Format string

const (
	// FormatMarkdown is the tagged-text encoding.
	FormatMarkdown Format = "markdown"
	// FormatJSON is the structured encoding.
	FormatJSON Format = "json"
	// FormatPlain is the tagged-text content without section markup.
	FormatPlain Format = "plain"
)

// Formats lists every supported encoding.
var Formats = []Format{FormatMarkdown, FormatJSON, FormatPlain}

// ParseFormat accepts a format name case-insensitively.
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, f := range Formats {
		if f == format {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (expected markdown, json or plain)", name)
}

// Extension is the file extension used when a report is written to disk.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatPlain:
		return "txt"
	default:
		return "md"
	}
}

// Options control which sections a report contains and its token ceiling.
type Options struct {
	Format                  Format
	IncludeMetadata         bool
	Minify                  bool
	MaxTokens               int
	IncludeFullContent      bool
	IncludeDependencyGraph  bool
	IncludeExecutiveSummary bool
}

// DefaultMaxTokens is the configured token ceiling before the safety margin.
const DefaultMaxTokens = 128000

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Format:                  FormatMarkdown,
		IncludeMetadata:         true,
		Minify:                  true,
		MaxTokens:               DefaultMaxTokens,
		IncludeFullContent:      true,
		IncludeDependencyGraph:  true,
		IncludeExecutiveSummary: true,
	}
}

// Validate reports options that cannot produce a report.
func (o Options) Validate() error {
	if _, err := ParseFormat(string(o.Format)); err != nil {
		return err
	}
	if o.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", o.MaxTokens)
	}
	return nil
}
