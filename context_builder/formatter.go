package context_builder

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/meysamhadeli/codectx/context_builder/contracts"
	"github.com/meysamhadeli/codectx/context_builder/models"
	"github.com/meysamhadeli/codectx/corpus"
)

const (
	// PreviewLength is the number of characters kept per file when full
	// content is disabled.
	PreviewLength = 500
	// PreviewMarker follows a shortened file content.
	PreviewMarker = "..."
	// KeyDependenciesLimit caps the dependency section of text reports.
	KeyDependenciesLimit = 5
	// ImportsShown caps the imports listed per key dependency.
	ImportsShown = 3
)

var formatters = map[models.Format]contracts.IReportFormatter{
	models.FormatMarkdown: &textFormatter{style: markdownStyle{}},
	models.FormatPlain:    &textFormatter{style: plainStyle{}},
	models.FormatJSON:     &jsonFormatter{},
}

// FormatterFor returns the formatter of an encoding.
func FormatterFor(format models.Format) (contracts.IReportFormatter, error) {
	formatter, ok := formatters[format]
	if !ok {
		return nil, fmt.Errorf("no formatter for format %q", format)
	}
	return formatter, nil
}

// Format renders report in the encoding named by options.Format.
func Format(report *models.ContextReport, options models.Options) (string, error) {
	formatter, err := FormatterFor(options.Format)
	if err != nil {
		return "", err
	}
	return formatter.Format(report, options)
}

// fileContent applies the content policy shared by every encoding: the whole
// content, or its first PreviewLength characters followed by PreviewMarker.
func fileContent(file corpus.SelectedFile, options models.Options) string {
	if options.IncludeFullContent || utf8.RuneCountInString(file.Content) <= PreviewLength {
		return file.Content
	}
	return string([]rune(file.Content)[:PreviewLength]) + PreviewMarker
}

// keyDependency is a row of the key dependencies section.
type keyDependency struct {
	path        string
	usedByCount int
	imports     []string
}

// keyDependencies ranks graph nodes by descending usedBy count, ties by path.
func keyDependencies(report *models.ContextReport, limit int) []keyDependency {
	var rows []keyDependency
	for _, p := range report.Dependencies.Paths() {
		rows = append(rows, keyDependency{
			path:        p,
			usedByCount: len(report.Dependencies[p].UsedBy),
			imports:     report.Dependencies.UniqueImports(p),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].usedByCount > rows[j].usedByCount
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
