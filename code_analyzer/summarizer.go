package code_analyzer

import (
	"sort"
	"strings"

	"github.com/meysamhadeli/codectx/code_analyzer/models"
	"github.com/meysamhadeli/codectx/corpus"
)

const (
	// MostUsedLimit caps the ranked most-used files.
	MostUsedLimit = 5
	// RootDirectory groups files that sit at the corpus root.
	RootDirectory = "root"
)

// TopLevelDirectory returns the first segment of a file path, or RootDirectory
// for a file at the root.
func TopLevelDirectory(filePath string) string {
	if i := strings.Index(filePath, "/"); i > 0 {
		return filePath[:i]
	}
	return RootDirectory
}

// Summarize derives the architecture overview of the selected files. Files are
// ranked by how many files import them, ties by ascending path; directories
// by file count, ties by ascending name.
func Summarize(files []corpus.SelectedFile, graph models.DependencyGraph) models.Architecture {
	architecture := models.Architecture{
		TotalFiles:  len(files),
		MostUsed:    []models.RankedFile{},
		Directories: []models.DirectoryCount{},
		Languages:   []string{},
	}

	seenLanguages := make(map[string]struct{})
	directoryCounts := make(map[string]int)
	for _, file := range files {
		if _, ok := seenLanguages[file.Language]; !ok {
			seenLanguages[file.Language] = struct{}{}
			architecture.Languages = append(architecture.Languages, file.Language)
		}
		directoryCounts[TopLevelDirectory(file.Path)]++

		usedBy := 0
		if node, ok := graph[file.Path]; ok {
			usedBy = len(node.UsedBy)
		}
		architecture.MostUsed = append(architecture.MostUsed, models.RankedFile{Path: file.Path, UsedByCount: usedBy})
	}

	sort.Slice(architecture.MostUsed, func(i, j int) bool {
		a, b := architecture.MostUsed[i], architecture.MostUsed[j]
		if a.UsedByCount != b.UsedByCount {
			return a.UsedByCount > b.UsedByCount
		}
		return a.Path < b.Path
	})
	if len(architecture.MostUsed) > MostUsedLimit {
		architecture.MostUsed = architecture.MostUsed[:MostUsedLimit]
	}

	for name, count := range directoryCounts {
		architecture.Directories = append(architecture.Directories, models.DirectoryCount{Name: name, Files: count})
	}
	sort.Slice(architecture.Directories, func(i, j int) bool {
		a, b := architecture.Directories[i], architecture.Directories[j]
		if a.Files != b.Files {
			return a.Files > b.Files
		}
		return a.Name < b.Name
	})

	return architecture
}
