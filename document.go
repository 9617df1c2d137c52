package cmusearch

// Document is a single record: field name to field value. Field sets may
// differ across sources; a field simply absent from the map is treated as
// absent, not empty.
type Document map[string]string

// Sources maps source_id -> doc_id -> Document. A source is a named
// collection of documents sharing a schema and a field-weight table.
type Sources map[string]map[string]Document

// FieldWeights maps field name to its weight within a source. Weights need
// not sum to one.
type FieldWeights map[string]float64

// Config maps source_id -> FieldWeights. It is the engine's only
// configuration input; source ids here are expected to agree with the ids
// present in the corresponding Sources value (see WithStrictSources).
type Config map[string]FieldWeights

// Result is a single ranked search hit.
type Result struct {
	SourceID string
	DocID    string
	Score    float64
	Document Document
}
