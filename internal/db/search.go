package db

// TextQuery is the input for a highlighted full-text search.
type TextQuery struct {
	IndexName string
	Query     string
	Highlight bool
}

// Record is one decoded search hit: field name to field value, both as text.
type Record map[string]string

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Records []Record
}

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	Name string
}

// SuggestionEntry is a single FT.SUGADD insertion.
type SuggestionEntry struct {
	Dict   string
	Text   string
	Weight float64
}

// FieldValue is one name/value pair of a document write. Order is preserved on the wire.
type FieldValue struct {
	Name  string
	Value string
}

// DocumentWrite is the input for an upsert into an FT index.
type DocumentWrite struct {
	ID     string
	Score  float64
	Fields []FieldValue
}
