package catalog

import (
	"github.com/kailas-cloud/ftfacade/internal/db"
	domcat "github.com/kailas-cloud/ftfacade/internal/domain/catalog"
)

// Schema returns the fixed catalog index definition.
// A non-empty hashPrefix scopes the index to hashes under that prefix (hash write mode).
func Schema(name, hashPrefix string) (*db.IndexDefinition, error) {
	b := db.NewIndex(name)
	if hashPrefix != "" {
		b = b.OnHash().Prefix(hashPrefix)
	}
	return b.
		Text(domcat.FieldCompany).
		Text(domcat.FieldProduct).
		Text(domcat.FieldColor).
		Numeric(domcat.FieldPrice).
		Build()
}

// toDocumentWrite flattens a domain document into ordered wire fields.
func toDocumentWrite(doc domcat.Document, score float64) *db.DocumentWrite {
	f := doc.Fields()
	return &db.DocumentWrite{
		ID:    doc.Key(),
		Score: score,
		Fields: []db.FieldValue{
			{Name: domcat.FieldCompany, Value: f.Company},
			{Name: domcat.FieldProduct, Value: f.Product},
			{Name: domcat.FieldColor, Value: f.Color},
			{Name: domcat.FieldPrice, Value: f.PriceText()},
		},
	}
}

func toHits(res *db.SearchResult) []domcat.Hit {
	hits := make([]domcat.Hit, 0, len(res.Records))
	for _, rec := range res.Records {
		hits = append(hits, domcat.Hit(rec))
	}
	return hits
}

func toSuggestions(raw []db.Suggestion) []domcat.Suggestion {
	out := make([]domcat.Suggestion, 0, len(raw))
	for _, s := range raw {
		out = append(out, domcat.Suggestion{Name: s.Name})
	}
	return out
}
