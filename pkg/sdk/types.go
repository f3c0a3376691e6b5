package ftfacade

import domcat "github.com/kailas-cloud/ftfacade/internal/domain/catalog"

// Product is one set of catalog values to index.
type Product struct {
	Company string
	Product string
	Color   string
	Price   float64
}

// Source produces the values for each indexed document.
type Source interface {
	Next() Product
}

// Hit is one search result: field name to (possibly highlighted) text.
type Hit map[string]string

// IndexReport summarizes a bulk indexing run.
// Every document costs three writes; Failed counts writes, not documents.
type IndexReport struct {
	Documents int
	Succeeded int
	Failed    int
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"missing"/"error"
}

// sourceAdapter turns a public Source into the indexer's source.
type sourceAdapter struct {
	inner Source
}

func (a sourceAdapter) Next() domcat.Fields {
	p := a.inner.Next()
	return domcat.Fields{Company: p.Company, Product: p.Product, Color: p.Color, Price: p.Price}
}
