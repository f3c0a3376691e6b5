package catalog

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/ftfacade/internal/db"
	domcat "github.com/kailas-cloud/ftfacade/internal/domain/catalog"
)

// Default names and weights, matching what existing clients of the façade expect.
const (
	DefaultIndex         = "searchIndex"
	DefaultCompanyDict   = "autoCompanyIndex"
	DefaultProductDict   = "autoProductIndex"
	DefaultSuggestWeight = 100
	DefaultDocScore      = 1
)

// store is the consumer interface for catalog reads and writes (ISP).
type store interface {
	Search(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	SuggestAdd(ctx context.Context, e db.SuggestionEntry) error
	SuggestGet(ctx context.Context, dict, prefix string) ([]db.Suggestion, error)
	UpsertDocument(ctx context.Context, index string, doc *db.DocumentWrite) error
}

// Names holds the engine-side names the catalog lives under.
type Names struct {
	Index       string
	CompanyDict string
	ProductDict string
}

// DefaultNames returns the stock index and dictionary names.
func DefaultNames() Names {
	return Names{Index: DefaultIndex, CompanyDict: DefaultCompanyDict, ProductDict: DefaultProductDict}
}

// Repo implements the catalog repository over an FT store.
type Repo struct {
	store         store
	names         Names
	suggestWeight float64
	docScore      float64
}

// New creates a catalog repository.
func New(s store, names Names) *Repo {
	return &Repo{
		store:         s,
		names:         names,
		suggestWeight: DefaultSuggestWeight,
		docScore:      DefaultDocScore,
	}
}

// WithWeights overrides the suggestion weight and document score. Non-positive values are ignored.
func (r *Repo) WithWeights(suggestWeight, docScore float64) *Repo {
	if suggestWeight > 0 {
		r.suggestWeight = suggestWeight
	}
	if docScore > 0 {
		r.docScore = docScore
	}
	return r
}

// Names returns the configured engine-side names.
func (r *Repo) Names() Names { return r.names }

// Upsert writes doc into the primary index, replacing any previous version.
func (r *Repo) Upsert(ctx context.Context, doc domcat.Document) error {
	if err := r.store.UpsertDocument(ctx, r.names.Index, toDocumentWrite(doc, r.docScore)); err != nil {
		return fmt.Errorf("upsert %s/%s: %w", r.names.Index, doc.Key(), err)
	}
	return nil
}

// AddCompanySuggestion appends text to the company dictionary.
func (r *Repo) AddCompanySuggestion(ctx context.Context, text string) error {
	return r.addSuggestion(ctx, r.names.CompanyDict, text)
}

// AddProductSuggestion appends text to the product dictionary.
func (r *Repo) AddProductSuggestion(ctx context.Context, text string) error {
	return r.addSuggestion(ctx, r.names.ProductDict, text)
}

func (r *Repo) addSuggestion(ctx context.Context, dict, text string) error {
	entry := db.SuggestionEntry{Dict: dict, Text: text, Weight: r.suggestWeight}
	if err := r.store.SuggestAdd(ctx, entry); err != nil {
		return fmt.Errorf("suggest add %s: %w", dict, err)
	}
	return nil
}

// Search runs a highlighted full-text query against the primary index.
func (r *Repo) Search(ctx context.Context, query string) ([]domcat.Hit, error) {
	res, err := r.store.Search(ctx, &db.TextQuery{
		IndexName: r.names.Index,
		Query:     query,
		Highlight: true,
	})
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", r.names.Index, err)
	}
	return toHits(res), nil
}

// Suggest returns product-name completions for prefix.
func (r *Repo) Suggest(ctx context.Context, prefix string) ([]domcat.Suggestion, error) {
	raw, err := r.store.SuggestGet(ctx, r.names.ProductDict, prefix)
	if err != nil {
		return nil, fmt.Errorf("suggest get %s: %w", r.names.ProductDict, err)
	}
	return toSuggestions(raw), nil
}
