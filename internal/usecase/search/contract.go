package search

import (
	"context"

	domcat "github.com/kailas-cloud/ftfacade/internal/domain/catalog"
)

// Repository defines the storage contract for catalog reads.
type Repository interface {
	Search(ctx context.Context, query string) ([]domcat.Hit, error)
	Suggest(ctx context.Context, prefix string) ([]domcat.Suggestion, error)
}
