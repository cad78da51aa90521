package utils

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmPrompt(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect bool
	}{
		{"yes", "y\n", true},
		{"long yes", " YES \n", true},
		{"no", "n\n", false},
		{"empty line", "\n", false},
		{"end of input", "", false},
		{"yes without newline", "y", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			ok, err := ConfirmPrompt(bufio.NewReader(strings.NewReader(tt.input)), &out, "Continue?")
			require.NoError(t, err)
			assert.Equal(t, tt.expect, ok)
			assert.Contains(t, out.String(), "Continue? (y/N)")
		})
	}
}

func TestRenderPreview(t *testing.T) {
	assert.Equal(t, "markdown", PreviewLexer("markdown"))
	assert.Equal(t, "json", PreviewLexer("json"))
	assert.Equal(t, "plaintext", PreviewLexer("plain"))

	var out bytes.Buffer
	require.NoError(t, RenderPreview(&out, "# Title\n", "markdown", "dracula"))
	assert.Contains(t, out.String(), "Title")
}

func TestIgnorePatterns(t *testing.T) {
	ClearIgnoreCache()
	root := t.TempDir()

	patterns, err := GetIgnorePatterns(root)
	require.NoError(t, err)
	assert.Empty(t, patterns)

	content := "# generated\nbuild/\n*.log\ndocs/**/*.md\n\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, IgnoreFileName), []byte(content), 0644))

	patterns, err = GetIgnorePatterns(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"build/", "*.log", "docs/**/*.md"}, patterns)

	assert.True(t, IsIgnored("build", patterns))
	assert.True(t, IsIgnored("build/out.js", patterns))
	assert.True(t, IsIgnored("src/debug.log", patterns))
	assert.True(t, IsIgnored("docs/api/guide.md", patterns))
	assert.False(t, IsIgnored("src/main.go", patterns))
	assert.False(t, IsIgnored("rebuild/main.go", patterns))
}
