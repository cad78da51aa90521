package contracts

import (
	"context"

	"github.com/meysamhadeli/codectx/context_builder/models"
	"github.com/meysamhadeli/codectx/corpus"
)

// IReportFormatter renders a report in one encoding.
type IReportFormatter interface {
	Format(report *models.ContextReport, options models.Options) (string, error)
}

// IGenerator turns a corpus snapshot and a selection into a rendered report.
type IGenerator interface {
	Generate(ctx context.Context, c corpus.Corpus, selection corpus.Selection, options models.Options) (*models.Result, error)
}
