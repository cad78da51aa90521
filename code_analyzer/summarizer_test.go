package code_analyzer

import (
	"testing"

	"github.com/meysamhadeli/codectx/code_analyzer/models"
	"github.com/meysamhadeli/codectx/corpus"
	"github.com/stretchr/testify/assert"
)

func TestSummarize_RankingAndGrouping(t *testing.T) {
	files := []corpus.SelectedFile{
		{Path: "src/a.ts", Language: "typescript"},
		{Path: "src/b.ts", Language: "typescript"},
		{Path: "lib/c.go", Language: "go"},
		{Path: "lib/d.go", Language: "go"},
		{Path: "main.py", Language: "python"},
		{Path: "docs/e.md", Language: "markdown"},
		{Path: "docs/f.md", Language: "markdown"},
	}
	graph := models.DependencyGraph{
		"src/a.ts":  {UsedBy: []string{"src/b.ts", "main.py"}},
		"src/b.ts":  {UsedBy: []string{"lib/c.go"}},
		"lib/c.go":  {UsedBy: []string{"lib/d.go", "main.py"}},
		"lib/d.go":  {},
		"main.py":   {},
		"docs/e.md": {},
		"docs/f.md": {},
	}

	architecture := Summarize(files, graph)

	assert.Equal(t, 7, architecture.TotalFiles)
	assert.Equal(t, []models.RankedFile{
		{Path: "lib/c.go", UsedByCount: 2},
		{Path: "src/a.ts", UsedByCount: 2},
		{Path: "src/b.ts", UsedByCount: 1},
		{Path: "docs/e.md", UsedByCount: 0},
		{Path: "docs/f.md", UsedByCount: 0},
	}, architecture.MostUsed)
	assert.Equal(t, []models.DirectoryCount{
		{Name: "docs", Files: 2},
		{Name: "lib", Files: 2},
		{Name: "src", Files: 2},
		{Name: "root", Files: 1},
	}, architecture.Directories)
	assert.Equal(t, []string{"typescript", "go", "python", "markdown"}, architecture.Languages)
}

func TestSummarize_TextIsDeterministic(t *testing.T) {
	files := []corpus.SelectedFile{
		{Path: "b.ts", Language: "typescript"},
		{Path: "a.ts", Language: "typescript"},
	}
	graph := models.DependencyGraph{
		"a.ts": {UsedBy: []string{"b.ts"}},
		"b.ts": {},
	}

	first := Summarize(files, graph).Text()
	second := Summarize(files, graph).Text()

	assert.Equal(t, first, second)
	assert.Equal(t, `This codebase contains 2 files across 1 top-level directory.
Languages: typescript.

Most used files:
1. a.ts (used by 1 file)
2. b.ts (used by 0 files)

Directory grouping:
- root: 2 files`, first)
}

func TestSummarize_Empty(t *testing.T) {
	architecture := Summarize(nil, models.DependencyGraph{})

	assert.Equal(t, 0, architecture.TotalFiles)
	assert.Empty(t, architecture.MostUsed)
	assert.Equal(t, "This codebase contains 0 files across 0 top-level directories.", architecture.Text())
}

func TestTopLevelDirectory(t *testing.T) {
	assert.Equal(t, "src", TopLevelDirectory("src/a/b.ts"))
	assert.Equal(t, RootDirectory, TopLevelDirectory("main.go"))
}
