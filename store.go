package cmusearch

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-memdb"
)

// docKey is the memdb key linking a document to its source, computed as
// sourceID + "\x00" + docID. NUL is not a legal character in either id for
// any corpus this engine targets (course/room identifiers), so it is safe
// as a separator.
func docKey(sourceID, docID string) string {
	return sourceID + "\x00" + docID
}

// documentRecord is the go-memdb row type for the document table, grounded
// on character-ai-claude-agent-sdk-go/store.go's StoredTool/StoredSkill
// pattern: a plain struct indexed by one or more of its own fields.
type documentRecord struct {
	Key      string
	SourceID string
	DocID    string
	Fields   Document
}

func documentSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			"documents": {
				Name: "documents",
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Key"},
					},
					"source": {
						Name:    "source",
						Unique:  false,
						Indexer: &memdb.StringFieldIndex{Field: "SourceID"},
					},
				},
			},
		},
	}
}

// posting is a single (doc_id, term_frequency) entry in an n-gram's
// posting list.
type posting struct {
	DocID string
	TF    int
}

// fieldIndex holds all per-field inverted-index state for one (source,
// field) pair: posting lists keyed by n-gram, document frequencies, and
// per-document field lengths.
type fieldIndex struct {
	postings map[string][]posting // ngram -> postings, sorted by DocID
	docFreq  map[string]int       // ngram -> document frequency
	lengths  map[string]int       // doc_id -> field length
	avgLen   float64
}

// sourceIndex holds the per-source field indexes and document count.
type sourceIndex struct {
	fields   map[string]*fieldIndex
	docCount int
}

// Store is the Index Store (spec.md §4.3): a passive, read-only container
// for posting lists, field-length tables, document-frequency tables, and
// document metadata. A Store is built once (by Build or Decode) and never
// mutated afterward; every accessor here is safe for concurrent readers.
type Store struct {
	sources  map[string]*sourceIndex
	weights  map[string]FieldWeights
	docCount int
	docs     *memdb.MemDB
}

func newStore() *Store {
	db, err := memdb.NewMemDB(documentSchema())
	if err != nil {
		// The schema above is static and valid; a failure here indicates a
		// programming error, not a runtime condition callers can recover from.
		panic(errors.Wrap(err, "cmusearch: build document schema"))
	}
	return &Store{
		sources: make(map[string]*sourceIndex),
		weights: make(map[string]FieldWeights),
		docs:    db,
	}
}

func (s *Store) putDocuments(sourceID string, docs map[string]Document) error {
	txn := s.docs.Txn(true)
	defer txn.Abort()
	for docID, fields := range docs {
		rec := &documentRecord{
			Key:      docKey(sourceID, docID),
			SourceID: sourceID,
			DocID:    docID,
			Fields:   fields,
		}
		if err := txn.Insert("documents", rec); err != nil {
			return errors.Wrapf(err, "insert document %s/%s", sourceID, docID)
		}
	}
	txn.Commit()
	return nil
}

// Postings returns the (pre-sorted) posting list for an n-gram in a given
// source and field. The returned slice must not be mutated by callers.
func (s *Store) Postings(source, field, ngram string) []posting {
	fi := s.fieldIndexFor(source, field)
	if fi == nil {
		return nil
	}
	return fi.postings[ngram]
}

// FieldLength returns the n-gram count the builder recorded for a
// document's field, or 0 if the document or field is unknown.
func (s *Store) FieldLength(source, doc, field string) int {
	fi := s.fieldIndexFor(source, field)
	if fi == nil {
		return 0
	}
	return fi.lengths[doc]
}

// AvgFieldLen returns the mean field length across all documents in
// source, computed over every document in the source (zero-length fields
// included -- see spec.md §9 Open Questions).
func (s *Store) AvgFieldLen(source, field string) float64 {
	fi := s.fieldIndexFor(source, field)
	if fi == nil {
		return 0
	}
	return fi.avgLen
}

// DocFreq returns the number of documents in source whose field contains
// ngram at least once.
func (s *Store) DocFreq(source, field, ngram string) int {
	fi := s.fieldIndexFor(source, field)
	if fi == nil {
		return 0
	}
	return fi.docFreq[ngram]
}

// DocCountSource returns the number of documents indexed for source.
func (s *Store) DocCountSource(source string) int {
	si, ok := s.sources[source]
	if !ok {
		return 0
	}
	return si.docCount
}

// DocCount returns the total number of documents indexed across all
// sources.
func (s *Store) DocCount() int {
	return s.docCount
}

// Weight returns the configured weight of field within source. A source or
// field absent from the configuration reports a weight of 0 (no
// contribution), not an error -- matching spec.md §4.2's "fields listed in
// a document but absent from the weight table are ignored at index time."
func (s *Store) Weight(source, field string) float64 {
	fw, ok := s.weights[source]
	if !ok {
		return 0
	}
	return fw[field]
}

// Document returns the field map for a (source, doc) pair, used to build
// the payload of a search Result.
func (s *Store) Document(source, doc string) (Document, bool) {
	txn := s.docs.Txn(false)
	defer txn.Abort()
	raw, err := txn.First("documents", "id", docKey(source, doc))
	if err != nil || raw == nil {
		return nil, false
	}
	return raw.(*documentRecord).Fields, true
}

// weightedFields returns the field names configured with a non-zero weight
// for source, in a fixed (sorted) order for deterministic iteration.
func (s *Store) weightedFields(source string) []string {
	fw := s.weights[source]
	fields := make([]string, 0, len(fw))
	for f, w := range fw {
		if w != 0 {
			fields = append(fields, f)
		}
	}
	sort.Strings(fields)
	return fields
}

// sourceIDs returns every indexed source id, sorted for deterministic
// iteration (used by the ranker).
func (s *Store) sourceIDs() []string {
	ids := make([]string, 0, len(s.sources))
	for id := range s.sources {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Store) fieldIndexFor(source, field string) *fieldIndex {
	si, ok := s.sources[source]
	if !ok {
		return nil
	}
	return si.fields[field]
}
