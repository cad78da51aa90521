package context_builder

import (
	"path"
	"sort"
	"strings"

	"github.com/meysamhadeli/codectx/code_analyzer"
	"github.com/meysamhadeli/codectx/corpus"
)

// UnknownFileType is the file type of names without an extension.
const UnknownFileType = "unknown"

// HistogramEntry is one bucket of a histogram.
type HistogramEntry struct {
	Name  string
	Count int
}

// Histogram is ordered by descending count, ties in first-seen order.
type Histogram []HistogramEntry

// Total sums the counts of every bucket.
func (h Histogram) Total() int {
	total := 0
	for _, entry := range h {
		total += entry.Count
	}
	return total
}

// Map returns the counts keyed by bucket name.
func (h Histogram) Map() map[string]int {
	counts := make(map[string]int, len(h))
	for _, entry := range h {
		counts[entry.Name] = entry.Count
	}
	return counts
}

// FileType is the lowercased extension of the file name, or UnknownFileType.
func FileType(filePath string) string {
	ext := strings.TrimPrefix(path.Ext(path.Base(filePath)), ".")
	if ext == "" {
		return UnknownFileType
	}
	return strings.ToLower(ext)
}

// FileTypeHistogram counts the selected files per file type.
func FileTypeHistogram(files []corpus.SelectedFile) Histogram {
	return buildHistogram(files, FileType)
}

// DirectoryHistogram counts the selected files per top-level directory.
func DirectoryHistogram(files []corpus.SelectedFile) Histogram {
	return buildHistogram(files, code_analyzer.TopLevelDirectory)
}

func buildHistogram(files []corpus.SelectedFile, bucket func(string) string) Histogram {
	var histogram Histogram
	index := make(map[string]int)
	for _, file := range files {
		name := bucket(file.Path)
		if i, ok := index[name]; ok {
			histogram[i].Count++
			continue
		}
		index[name] = len(histogram)
		histogram = append(histogram, HistogramEntry{Name: name, Count: 1})
	}
	sort.SliceStable(histogram, func(i, j int) bool {
		return histogram[i].Count > histogram[j].Count
	})
	return histogram
}

// groupByDirectory returns the top-level directories in lexical order and the
// files of each in their original order.
func groupByDirectory(files []corpus.SelectedFile) ([]string, map[string][]corpus.SelectedFile) {
	groups := make(map[string][]corpus.SelectedFile)
	for _, file := range files {
		dir := code_analyzer.TopLevelDirectory(file.Path)
		groups[dir] = append(groups[dir], file)
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, groups
}
