package context_builder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/meysamhadeli/codectx/context_builder/models"
)

// textStyle renders the building blocks of a text report.
type textStyle interface {
	heading(level int, text string) string
	field(label string, value string) string
	item(text string) string
	code(language string, content string) string
}

// markdownStyle is the tagged-text encoding.
type markdownStyle struct{}

func (markdownStyle) heading(level int, text string) string {
	return strings.Repeat("#", level) + " " + text
}

func (markdownStyle) field(label string, value string) string {
	return fmt.Sprintf("- **%s:** %s", label, value)
}

func (markdownStyle) item(text string) string {
	return "- " + text
}

func (markdownStyle) code(language string, content string) string {
	return "```" + language + "\n" + content + "\n```"
}

// plainStyle carries the same content without markup.
type plainStyle struct{}

func (plainStyle) heading(level int, text string) string {
	if level < 3 {
		return strings.ToUpper(text)
	}
	return text
}

func (plainStyle) field(label string, value string) string {
	return label + ": " + value
}

func (plainStyle) item(text string) string {
	return "  " + text
}

func (plainStyle) code(_ string, content string) string {
	return content
}

// textWriter lays blocks out line by line. With minify the blank line after
// each heading is dropped; file contents are never altered.
type textWriter struct {
	b      strings.Builder
	style  textStyle
	minify bool
}

func (w *textWriter) heading(level int, text string) {
	w.b.WriteString(w.style.heading(level, text))
	w.b.WriteString("\n")
	if !w.minify {
		w.b.WriteString("\n")
	}
}

func (w *textWriter) field(label string, value string) {
	w.b.WriteString(w.style.field(label, value))
	w.b.WriteString("\n")
}

func (w *textWriter) item(text string) {
	w.b.WriteString(w.style.item(text))
	w.b.WriteString("\n")
}

func (w *textWriter) paragraph(text string) {
	w.b.WriteString(text)
	w.b.WriteString("\n")
}

func (w *textWriter) code(language string, content string) {
	w.b.WriteString(w.style.code(language, content))
	w.b.WriteString("\n")
}

func (w *textWriter) end() {
	w.b.WriteString("\n")
}

func (w *textWriter) String() string {
	return strings.TrimRight(w.b.String(), "\n") + "\n"
}

// textFormatter renders the tagged-text and plain encodings.
type textFormatter struct {
	style textStyle
}

func (f *textFormatter) Format(report *models.ContextReport, options models.Options) (string, error) {
	if report == nil {
		return "", fmt.Errorf("cannot format a nil report")
	}
	w := &textWriter{style: f.style, minify: options.Minify}

	w.heading(1, "Codebase Context")

	if options.IncludeExecutiveSummary {
		w.heading(2, "Executive Summary")
		if options.IncludeMetadata {
			w.field("Total Files", strconv.Itoa(report.Metadata.TotalFiles))
			w.field("Total Size", humanize.Bytes(uint64(report.Metadata.TotalSize)))
			w.field("Languages", strings.Join(report.Metadata.Languages, ", "))
			w.field("Generated", report.Metadata.Timestamp)
			w.end()
		}
		writeHistogram(w, "File Types", FileTypeHistogram(report.Files))
		writeHistogram(w, "Directory Structure", DirectoryHistogram(report.Files))
	}

	w.heading(2, "Architecture Overview")
	w.paragraph(report.Architecture.Text())
	w.end()

	if options.IncludeDependencyGraph {
		w.heading(2, "Key Dependencies")
		for _, dep := range keyDependencies(report, KeyDependenciesLimit) {
			w.heading(3, dep.path)
			w.field("Used by", english.Plural(dep.usedByCount, "file", "files"))
			if len(dep.imports) > 0 {
				shown := dep.imports
				suffix := ""
				if len(shown) > ImportsShown {
					shown = shown[:ImportsShown]
					suffix = PreviewMarker
				}
				w.field("Imports", strings.Join(shown, ", ")+suffix)
			}
			w.end()
		}
	}

	w.heading(2, "Files by Directory")
	directories, groups := groupByDirectory(report.Files)
	for _, dir := range directories {
		w.heading(3, dir)
		for _, file := range groups[dir] {
			w.item(fmt.Sprintf("%s (%s)", file.Path, file.Language))
		}
		w.end()
	}

	w.heading(2, "Selected File Contents")
	for _, file := range SelectImportantFiles(report.Files, ImportantFilesLimit) {
		w.heading(3, file.Path)
		w.code(file.Language, fileContent(file, options))
		w.end()
	}

	return w.String(), nil
}

func writeHistogram(w *textWriter, title string, histogram Histogram) {
	if len(histogram) == 0 {
		return
	}
	w.heading(3, title)
	for _, entry := range histogram {
		w.field(entry.Name, english.Plural(entry.Count, "file", "files"))
	}
	w.end()
}
