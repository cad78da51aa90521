package models

import (
	analyzer_models "github.com/meysamhadeli/codectx/code_analyzer/models"
	"github.com/meysamhadeli/codectx/corpus"
)

// Metadata describes the selected files of a report.
type Metadata struct {
	TotalFiles int            `json:"totalFiles"`
	TotalSize  int            `json:"totalSize"`
	Languages  []string       `json:"languages"`
	Timestamp  string         `json:"timestamp"`
	FileTypes  map[string]int `json:"fileTypes"`
}

// ContextReport is the aggregate rendered by a formatter. It exists for one
// generation only.
type ContextReport struct {
	Metadata     Metadata
	Dependencies analyzer_models.DependencyGraph
	Architecture analyzer_models.Architecture
	Files        []corpus.SelectedFile
}

// StructuredSummary is the summary object of the structured encoding.
type StructuredSummary struct {
	TotalFiles         int            `json:"totalFiles"`
	FileTypes          map[string]int `json:"fileTypes"`
	TotalSize          int            `json:"totalSize"`
	DirectoryStructure map[string]int `json:"directoryStructure"`
}

// StructuredFile is one entry of the files array of the structured encoding.
type StructuredFile struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	Size     int    `json:"size"`
	Content  string `json:"content"`
}

// StructuredReport is the document of the structured encoding. Sections
// disabled by the options are omitted.
type StructuredReport struct {
	Metadata     *Metadata                       `json:"metadata,omitempty"`
	Summary      *StructuredSummary              `json:"summary,omitempty"`
	Architecture string                          `json:"architecture"`
	Dependencies analyzer_models.DependencyGraph `json:"dependencies,omitempty"`
	Files        []StructuredFile                `json:"files"`
}
