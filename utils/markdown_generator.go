package utils

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
)

// PreviewLexer returns the chroma lexer name used to highlight a report in
// the given encoding.
func PreviewLexer(format string) string {
	switch format {
	case "markdown":
		return "markdown"
	case "json":
		return "json"
	default:
		return "plaintext"
	}
}

// RenderPreview writes text to w with terminal syntax highlighting.
func RenderPreview(w io.Writer, text string, format string, theme string) error {
	if err := quick.Highlight(w, text, PreviewLexer(format), "terminal256", theme); err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}
	return nil
}
