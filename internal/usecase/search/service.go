package search

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ftfacade/internal/db"
	domcat "github.com/kailas-cloud/ftfacade/internal/domain/catalog"
	logpkg "github.com/kailas-cloud/ftfacade/internal/logger"
)

// ErrEmptyQuery is returned for a search without query text. No engine call is made.
var ErrEmptyQuery = errors.New("search query is empty")

// Service handles highlighted catalog search and product autocomplete.
type Service struct {
	repo Repository
}

// New creates a search service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search runs query against the catalog index. The query is passed to the engine verbatim.
func (s *Service) Search(ctx context.Context, query string) ([]domcat.Hit, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}

	hits, err := s.repo.Search(ctx, query)
	if err != nil {
		log := logpkg.FromContext(ctx)
		if errors.Is(err, db.ErrIndexNotFound) {
			// Expected until the first /index run creates the schema.
			log.Info("search before index exists", zap.String("query", query))
			return nil, err
		}
		log.Warn("search failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	return hits, nil
}

// Suggest returns product completions for prefix. An empty prefix is sent as is;
// the engine decides what it matches.
func (s *Service) Suggest(ctx context.Context, prefix string) ([]domcat.Suggestion, error) {
	out, err := s.repo.Suggest(ctx, prefix)
	if err != nil {
		logpkg.FromContext(ctx).Warn("suggest failed", zap.String("prefix", prefix), zap.Error(err))
		return nil, err
	}
	return out, nil
}
