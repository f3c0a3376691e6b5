// Package catalog holds the product documents the façade indexes and searches.
package catalog

import (
	"errors"
	"fmt"
	"strconv"
)

// Field names of the catalog index, in schema order.
const (
	FieldCompany = "company"
	FieldProduct = "product"
	FieldColor   = "color"
	FieldPrice   = "price"
)

// ErrInvalidDocument signals a document that cannot be written.
var ErrInvalidDocument = errors.New("invalid document")

// Fields is one generated set of catalog values.
type Fields struct {
	Company string
	Product string
	Color   string
	Price   float64
}

// PriceText renders the price the way it travels on the wire: two decimals.
func (f Fields) PriceText() string {
	return strconv.FormatFloat(f.Price, 'f', 2, 64)
}

// Document is a catalog entry keyed by a caller-supplied id.
// Re-indexing the same id replaces the stored version.
type Document struct {
	id     int
	fields Fields
}

// NewDocument validates and builds a Document.
func NewDocument(id int, f Fields) (Document, error) {
	if id < 0 {
		return Document{}, fmt.Errorf("negative id %d: %w", id, ErrInvalidDocument)
	}
	if f.Company == "" || f.Product == "" {
		return Document{}, fmt.Errorf("document %d: company and product are required: %w", id, ErrInvalidDocument)
	}
	return Document{id: id, fields: f}, nil
}

// ID returns the document id.
func (d Document) ID() int { return d.id }

// Key returns the id as the engine sees it.
func (d Document) Key() string { return strconv.Itoa(d.id) }

// Fields returns the document values.
func (d Document) Fields() Fields { return d.fields }

// Hit is one search result: field name to (possibly highlighted) text.
type Hit map[string]string

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	Name string
}
