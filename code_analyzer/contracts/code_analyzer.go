package contracts

import (
	"github.com/meysamhadeli/codectx/code_analyzer/models"
	"github.com/meysamhadeli/codectx/corpus"
)

// ISpecifierExtractor finds raw import specifiers in the source of one
// language family, in source order.
type ISpecifierExtractor interface {
	Languages() []string
	Extract(content string) ([]string, error)
}

// IDependencyMapper builds the reciprocal dependency graph of a selection.
type IDependencyMapper interface {
	Map(files []corpus.SelectedFile) models.DependencyGraph
}
