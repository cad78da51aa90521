package context_builder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/meysamhadeli/codectx/context_builder/models"
)

// jsonFormatter renders the structured encoding.
type jsonFormatter struct{}

func (f *jsonFormatter) Format(report *models.ContextReport, options models.Options) (string, error) {
	if report == nil {
		return "", fmt.Errorf("cannot format a nil report")
	}
	return encodeStructured(structuredReport(report, options), options.Minify)
}

func structuredReport(report *models.ContextReport, options models.Options) *models.StructuredReport {
	out := &models.StructuredReport{
		Architecture: report.Architecture.Text(),
		Files:        make([]models.StructuredFile, 0, len(report.Files)),
	}

	if options.IncludeMetadata {
		metadata := report.Metadata
		out.Metadata = &metadata
	}

	if options.IncludeExecutiveSummary {
		out.Summary = &models.StructuredSummary{
			TotalFiles:         len(report.Files),
			FileTypes:          FileTypeHistogram(report.Files).Map(),
			TotalSize:          report.Metadata.TotalSize,
			DirectoryStructure: DirectoryHistogram(report.Files).Map(),
		}
	}

	if options.IncludeDependencyGraph {
		out.Dependencies = report.Dependencies
	}

	for _, file := range report.Files {
		out.Files = append(out.Files, models.StructuredFile{
			Path:     file.Path,
			Language: file.Language,
			Size:     len(file.Content),
			Content:  fileContent(file, options),
		})
	}
	return out
}

// encodeStructured marshals without HTML escaping so source code stays
// readable. Map keys are emitted in sorted order.
func encodeStructured(report *models.StructuredReport, minify bool) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if !minify {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("failed to encode structured context: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
