package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
//
//nolint:interfacebloat // facade by design -- consumers use narrow sub-interfaces (ISP)
type Store interface {
	Pinger
	IndexManager
	Searcher
	Suggester
	DocumentWriter
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// IndexManager provides FT index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Searcher runs full-text queries over an FT index.
type Searcher interface {
	Search(ctx context.Context, q *TextQuery) (*SearchResult, error)
}

// Suggester reads and appends autocomplete dictionaries.
type Suggester interface {
	SuggestAdd(ctx context.Context, e SuggestionEntry) error
	SuggestGet(ctx context.Context, dict, prefix string) ([]Suggestion, error)
}

// DocumentWriter upserts documents into an FT index (replace on conflict).
type DocumentWriter interface {
	UpsertDocument(ctx context.Context, index string, doc *DocumentWrite) error
}
