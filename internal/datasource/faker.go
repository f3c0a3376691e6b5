// Package datasource generates synthetic catalog values for bulk indexing.
package datasource

import (
	"math"
	"sync"

	"github.com/brianvoe/gofakeit/v7"

	domcat "github.com/kailas-cloud/ftfacade/internal/domain/catalog"
)

// Price bounds for generated products.
const (
	minPrice = 1.0
	maxPrice = 1000.0
)

// Faker draws company, product, color and price from gofakeit.
// A single generator is shared, so Next is serialized.
type Faker struct {
	mu  sync.Mutex
	gen *gofakeit.Faker
}

// NewFaker creates a source. A zero seed picks a random one; any other value makes the
// sequence reproducible.
func NewFaker(seed uint64) *Faker {
	return &Faker{gen: gofakeit.New(seed)}
}

// Next returns one fresh set of fields.
func (f *Faker) Next() domcat.Fields {
	f.mu.Lock()
	defer f.mu.Unlock()

	return domcat.Fields{
		Company: f.gen.Company(),
		Product: f.gen.ProductName(),
		Color:   f.gen.Color(),
		Price:   math.Round(f.gen.Price(minPrice, maxPrice)*100) / 100,
	}
}
