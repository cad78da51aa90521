package context_builder

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/meysamhadeli/codectx/code_analyzer"
	"github.com/meysamhadeli/codectx/context_builder/models"
	"github.com/meysamhadeli/codectx/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFiles() []corpus.SelectedFile {
	return []corpus.SelectedFile{
		{Path: "README.md", Language: "markdown", Content: "# Project"},
		{Path: "src/app.tsx", Language: "tsx", Content: "import { Button } from './components/Button'\nimport cfg from '@/next.config'\nimport './styles.css'\nimport { x } from './lib/x'"},
		{Path: "src/components/Button.tsx", Language: "tsx", Content: "export const Button = () => null"},
		{Path: "src/lib/x.ts", Language: "typescript", Content: "export const x = 1"},
		{Path: "src/styles.css", Language: "css", Content: "body { margin: 0 }"},
		{Path: "next.config.js", Language: "javascript", Content: "module.exports = {}"},
		{Path: "scripts/build.py", Language: "python", Content: "import os"},
		{Path: "Makefile", Language: corpus.PlainText, Content: "all:\n\tgo build"},
	}
}

func sampleReport() *models.ContextReport {
	generator := NewGenerator(WithClock(fixedClock)).(*Generator)
	return generator.BuildReport(sampleFiles())
}

func TestHistograms_TotalsMatchSelectedFiles(t *testing.T) {
	files := sampleFiles()

	fileTypes := FileTypeHistogram(files)
	directories := DirectoryHistogram(files)

	assert.Equal(t, len(files), fileTypes.Total())
	assert.Equal(t, len(files), directories.Total())

	// descending count, ties in first-seen order
	assert.Equal(t, Histogram{
		{Name: "tsx", Count: 2},
		{Name: "md", Count: 1},
		{Name: "ts", Count: 1},
		{Name: "css", Count: 1},
		{Name: "js", Count: 1},
		{Name: "py", Count: 1},
		{Name: UnknownFileType, Count: 1},
	}, fileTypes)
	assert.Equal(t, Histogram{
		{Name: "src", Count: 4},
		{Name: "root", Count: 3},
		{Name: "scripts", Count: 1},
	}, directories)
}

func TestFormat_DeterministicInEveryEncoding(t *testing.T) {
	report := sampleReport()
	for _, format := range models.Formats {
		for _, minify := range []bool{true, false} {
			options := models.DefaultOptions()
			options.Format = format
			options.Minify = minify

			first, err := Format(report, options)
			require.NoError(t, err)
			second, err := Format(sampleReport(), options)
			require.NoError(t, err)
			assert.Equal(t, first, second, "format %s minify %v", format, minify)
		}
	}
}

func TestFormat_MarkdownSections(t *testing.T) {
	options := models.DefaultOptions()
	text, err := Format(sampleReport(), options)
	require.NoError(t, err)

	sections := []string{
		"# Codebase Context",
		"## Executive Summary",
		"### File Types",
		"### Directory Structure",
		"## Architecture Overview",
		"## Key Dependencies",
		"## Files by Directory",
		"## Selected File Contents",
	}
	last := -1
	for _, section := range sections {
		i := strings.Index(text, section+"\n")
		require.GreaterOrEqual(t, i, 0, section)
		assert.Greater(t, i, last, section)
		last = i
	}

	// directories in lexical order
	assert.Less(t, strings.Index(text, "### root\n"), strings.Index(text, "### scripts\n"))
	assert.Less(t, strings.Index(text, "### scripts\n"), strings.Index(text, "### src\n"))

	// minify drops the blank line after headings only
	assert.Contains(t, text, "## Executive Summary\n- **Total Files:** 8\n")
	assert.Contains(t, text, "```javascript\nmodule.exports = {}\n```")
}

func TestFormat_HistogramCountsArePluralized(t *testing.T) {
	text, err := Format(sampleReport(), models.DefaultOptions())
	require.NoError(t, err)

	assert.Contains(t, text, "- **src:** 4 files")
	assert.Contains(t, text, "- **root:** 3 files")
	assert.Contains(t, text, "- **scripts:** 1 file\n")
	assert.Contains(t, text, "- **tsx:** 2 files")
	assert.Contains(t, text, "- **md:** 1 file\n")
}

func TestFormat_KeyDependencyImportsAreCapped(t *testing.T) {
	files := sampleFiles()[1:2]
	files[0].Content += "\nimport { Button as Again } from './components/Button'"
	report := NewGenerator(WithClock(fixedClock)).(*Generator).BuildReport(files)

	text, err := Format(report, models.DefaultOptions())
	require.NoError(t, err)

	assert.Contains(t, text, "- **Imports:** ./components/Button, @/next.config, ./styles.css...\n")
}

func TestFormat_SelectedContentsByImportance(t *testing.T) {
	selected := SelectImportantFiles(sampleFiles(), ImportantFilesLimit)

	paths := make([]string, 0, len(selected))
	for _, f := range selected {
		paths = append(paths, f.Path)
	}
	// Button: component 3 + tsx 2; app: app 4 + tsx 2; next.config.js: config 5;
	// x.ts: typescript 2.
	assert.Equal(t, []string{"src/app.tsx", "src/components/Button.tsx", "next.config.js", "src/lib/x.ts", "README.md"}, paths)
}

func TestImportanceScore(t *testing.T) {
	tests := []struct {
		file corpus.SelectedFile
		want int
	}{
		{corpus.SelectedFile{Path: "vite.config.ts", Language: "typescript"}, 7},
		{corpus.SelectedFile{Path: "src/components/index.tsx", Language: "tsx"}, 9},
		{corpus.SelectedFile{Path: "cmd/main.go", Language: "go"}, 4},
		{corpus.SelectedFile{Path: "src/Main.go", Language: "go"}, 0},
		{corpus.SelectedFile{Path: "docs/notes.md", Language: "markdown"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.file.Path, func(t *testing.T) {
			assert.Equal(t, tt.want, ImportanceScore(tt.file))
		})
	}
}

func TestFormat_PlainHasNoMarkup(t *testing.T) {
	options := models.DefaultOptions()
	options.Format = models.FormatPlain

	text, err := Format(sampleReport(), options)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "CODEBASE CONTEXT\n"))
	assert.Contains(t, text, "EXECUTIVE SUMMARY\n")
	assert.Contains(t, text, "Total Files: 8\n")
	assert.Contains(t, text, "  src/app.tsx (tsx)\n")
	assert.NotContains(t, text, "```")
	assert.NotContains(t, text, "**")
	assert.NotContains(t, text, "## ")
}

func TestFormat_StructuredEncoding(t *testing.T) {
	options := models.DefaultOptions()
	options.Format = models.FormatJSON
	options.Minify = false

	text, err := Format(sampleReport(), options)
	require.NoError(t, err)
	assert.Contains(t, text, "\n  \"metadata\": {")

	var decoded models.StructuredReport
	require.NoError(t, json.Unmarshal([]byte(text), &decoded))

	require.NotNil(t, decoded.Metadata)
	require.NotNil(t, decoded.Summary)
	assert.Equal(t, 8, decoded.Summary.TotalFiles)
	assert.Equal(t, 2, decoded.Summary.FileTypes["tsx"])
	assert.Equal(t, 3, decoded.Summary.DirectoryStructure["root"])
	assert.Equal(t, []string{"src/app.tsx"}, decoded.Dependencies["src/components/Button.tsx"].UsedBy)
	require.Len(t, decoded.Files, 8)
	assert.Equal(t, "README.md", decoded.Files[0].Path)
	assert.Equal(t, 9, decoded.Files[0].Size)

	options.Minify = true
	minified, err := Format(sampleReport(), options)
	require.NoError(t, err)
	assert.NotContains(t, minified, "\n")
}

func TestFormat_ContentPolicyIsSharedAcrossEncodings(t *testing.T) {
	long := strings.Repeat("é", PreviewLength+20)
	files := []corpus.SelectedFile{{Path: "src/long.ts", Language: "typescript", Content: long}}
	report := NewGenerator(WithClock(fixedClock)).(*Generator).BuildReport(files)
	preview := strings.Repeat("é", PreviewLength) + PreviewMarker

	for _, format := range models.Formats {
		options := models.DefaultOptions()
		options.Format = format

		full, err := Format(report, options)
		require.NoError(t, err)
		assert.Contains(t, full, long, format)

		options.IncludeFullContent = false
		short, err := Format(report, options)
		require.NoError(t, err)
		assert.Contains(t, short, preview, format)
		assert.NotContains(t, short, long, format)
	}
}

func TestFormat_SectionToggles(t *testing.T) {
	options := models.DefaultOptions()
	options.IncludeExecutiveSummary = false
	options.IncludeDependencyGraph = false

	text, err := Format(sampleReport(), options)
	require.NoError(t, err)
	assert.NotContains(t, text, "## Executive Summary")
	assert.NotContains(t, text, "## Key Dependencies")
	assert.Contains(t, text, "## Architecture Overview")

	options = models.DefaultOptions()
	options.IncludeMetadata = false
	text, err = Format(sampleReport(), options)
	require.NoError(t, err)
	assert.Contains(t, text, "## Executive Summary")
	assert.NotContains(t, text, "Total Files:")

	options.Format = models.FormatJSON
	options.IncludeDependencyGraph = false
	text, err = Format(sampleReport(), options)
	require.NoError(t, err)
	assert.NotContains(t, text, `"metadata"`)
	assert.NotContains(t, text, `"dependencies"`)
}

func TestFormat_UnknownFormat(t *testing.T) {
	options := models.DefaultOptions()
	options.Format = "yaml"
	_, err := Format(sampleReport(), options)
	assert.Error(t, err)
}

func TestTopLevelGroupingUsesRoot(t *testing.T) {
	names, groups := groupByDirectory(sampleFiles())
	assert.Equal(t, []string{code_analyzer.RootDirectory, "scripts", "src"}, names)
	assert.Len(t, groups["src"], 4)
}
