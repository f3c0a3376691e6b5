package indexer

import (
	"context"

	"github.com/kailas-cloud/ftfacade/internal/db"
	domcat "github.com/kailas-cloud/ftfacade/internal/domain/catalog"
	"github.com/kailas-cloud/ftfacade/internal/usecase/schema"
)

// CatalogWriter performs the per-document writes.
type CatalogWriter interface {
	Upsert(ctx context.Context, doc domcat.Document) error
	AddCompanySuggestion(ctx context.Context, text string) error
	AddProductSuggestion(ctx context.Context, text string) error
}

// SchemaEnsurer guarantees the index exists before documents are written.
type SchemaEnsurer interface {
	Ensure(ctx context.Context, def *db.IndexDefinition) (schema.Outcome, error)
}

// Source produces field values for freshly indexed documents.
type Source interface {
	Next() domcat.Fields
}
