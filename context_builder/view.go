package context_builder

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/meysamhadeli/codectx/context_builder/models"
)

// View is a rendered report parsed back for inspection. Structured reports
// are decoded into Report; other encodings keep the raw Content.
type View struct {
	Format  models.Format
	Report  *models.StructuredReport
	Content string
}

// ParseView parses rendered text. Malformed structured text yields a
// *ParseError, which callers treat as "no parsed view".
func ParseView(text string, format models.Format) (*View, error) {
	if format != models.FormatJSON {
		return &View{Format: format, Content: text}, nil
	}

	var report models.StructuredReport
	decoder := json.NewDecoder(strings.NewReader(text))
	if err := decoder.Decode(&report); err != nil {
		return nil, &ParseError{Format: format, Err: err}
	}
	if decoder.More() {
		return nil, &ParseError{Format: format, Err: errors.New("unexpected data after report")}
	}
	return &View{Format: format, Report: &report}, nil
}

// Search narrows rendered text to term, case-insensitively. Structured text
// keeps the files whose path or content matches and recomputes the metadata
// totals; other encodings keep the matching lines. An empty term returns text
// unchanged, as does malformed structured text together with its *ParseError.
func Search(text string, term string, options models.Options) (string, error) {
	if term == "" || text == "" {
		return text, nil
	}
	needle := strings.ToLower(term)

	if options.Format != models.FormatJSON {
		var kept []string
		for _, line := range strings.Split(text, "\n") {
			if strings.Contains(strings.ToLower(line), needle) {
				kept = append(kept, line)
			}
		}
		return strings.Join(kept, "\n"), nil
	}

	view, err := ParseView(text, options.Format)
	if err != nil {
		return text, err
	}

	report := view.Report
	files := make([]models.StructuredFile, 0, len(report.Files))
	totalSize := 0
	for _, file := range report.Files {
		if strings.Contains(strings.ToLower(file.Path), needle) || strings.Contains(strings.ToLower(file.Content), needle) {
			files = append(files, file)
			totalSize += len(file.Content)
		}
	}
	report.Files = files
	if report.Metadata != nil {
		report.Metadata.TotalFiles = len(files)
		report.Metadata.TotalSize = totalSize
	}

	filtered, err := encodeStructured(report, options.Minify)
	if err != nil {
		return text, fmt.Errorf("failed to re-encode filtered context: %w", err)
	}
	return filtered, nil
}

// DefaultOutputName is the file name a report is saved under.
func DefaultOutputName(format models.Format, t time.Time) string {
	return fmt.Sprintf("codebase-context-%s.%s", t.Format("2006-01-02"), format.Extension())
}
