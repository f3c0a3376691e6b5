package catalog

import (
	"context"
	"testing"

	"github.com/kailas-cloud/ftfacade/internal/db"
	domcat "github.com/kailas-cloud/ftfacade/internal/domain/catalog"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn     func(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	suggestAddFn func(ctx context.Context, e db.SuggestionEntry) error
	suggestGetFn func(ctx context.Context, dict, prefix string) ([]db.Suggestion, error)
	upsertFn     func(ctx context.Context, index string, doc *db.DocumentWrite) error
}

func (m *mockStore) Search(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SuggestAdd(ctx context.Context, e db.SuggestionEntry) error {
	if m.suggestAddFn != nil {
		return m.suggestAddFn(ctx, e)
	}
	return nil
}

func (m *mockStore) SuggestGet(ctx context.Context, dict, prefix string) ([]db.Suggestion, error) {
	if m.suggestGetFn != nil {
		return m.suggestGetFn(ctx, dict, prefix)
	}
	return nil, nil
}

func (m *mockStore) UpsertDocument(ctx context.Context, index string, doc *db.DocumentWrite) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, index, doc)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, DefaultNames()), ms
}

func mustDocument(t *testing.T, id int, f domcat.Fields) domcat.Document {
	t.Helper()
	d, err := domcat.NewDocument(id, f)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	return d
}
