package schema

import (
	"context"

	"github.com/kailas-cloud/ftfacade/internal/db"
)

// IndexManager probes and creates FT indexes.
type IndexManager interface {
	IndexExists(ctx context.Context, name string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
}
