package context_builder

import (
	"sort"
	"strings"

	"github.com/meysamhadeli/codectx/corpus"
)

// ImportantFilesLimit caps the files whose contents are emitted in text reports.
const ImportantFilesLimit = 5

// ImportanceScore ranks a file for the selected contents section. Matching is
// case-sensitive on the path.
func ImportanceScore(file corpus.SelectedFile) int {
	score := 0
	p := file.Path

	if strings.Contains(p, "config") || strings.HasSuffix(p, ".config.js") || strings.HasSuffix(p, ".config.ts") {
		score += 5
	}
	if strings.Contains(p, "main") || strings.Contains(p, "index") || strings.Contains(p, "app") {
		score += 4
	}
	if file.Language == "typescript" || file.Language == "tsx" {
		score += 2
	}
	if strings.Contains(p, "component") {
		score += 3
	}
	return score
}

// SelectImportantFiles returns up to limit files by descending score, ties in
// their original order.
func SelectImportantFiles(files []corpus.SelectedFile, limit int) []corpus.SelectedFile {
	ranked := append([]corpus.SelectedFile(nil), files...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ImportanceScore(ranked[i]) > ImportanceScore(ranked[j])
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
