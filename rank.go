package cmusearch

import (
	"math"
	"sort"
)

// BM25 tuning constants (spec.md §4.4). The spec fixes these rather than
// exposing them per field the way the teacher's BM25Parameters does --
// cmusearch's fields are arbitrary catalog columns, not markdown
// structure, so there is no principled per-field default to offer.
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

// docKeyPair identifies a candidate document during scoring.
type docKeyPair struct {
	source string
	doc    string
}

// Search performs a BM25F-style ranked search over store (spec.md §4.4).
// It returns up to limit results ordered by descending score, tie-broken
// by source_id then doc_id ascending. A query shorter than 4 characters,
// or limit <= 0, yields an empty (non-nil) slice.
func Search(store *Store, query string, limit int) []Result {
	if limit <= 0 {
		return []Result{}
	}

	terms := queryNgrams(query)
	if len(terms) == 0 {
		return []Result{}
	}

	scores := make(map[docKeyPair]float64)

	for _, source := range store.sourceIDs() {
		docCount := float64(store.DocCountSource(source))
		for _, field := range store.weightedFields(source) {
			weight := store.Weight(source, field)
			avgLen := store.AvgFieldLen(source, field)
			if avgLen == 0 {
				// No document in this source has any n-grams in this
				// field; guard against division by zero (spec.md §4.4
				// edge cases) by contributing nothing.
				continue
			}

			for _, gram := range terms {
				postings := store.Postings(source, field, gram)
				if len(postings) == 0 {
					continue
				}

				df := float64(store.DocFreq(source, field, gram))
				idf := math.Log((docCount-df+0.5)/(df+0.5) + 1)

				for _, p := range postings {
					fieldLen := float64(store.FieldLength(source, p.DocID, field))
					tf := float64(p.TF)
					normTF := (tf * (bm25K1 + 1)) / (tf + bm25K1*(1-bm25B+bm25B*fieldLen/avgLen))
					scores[docKeyPair{source, p.DocID}] += weight * idf * normTF
				}
			}
		}
	}

	results := make([]Result, 0, len(scores))
	for key, score := range scores {
		if score <= 0 {
			continue
		}
		doc, ok := store.Document(key.source, key.doc)
		if !ok {
			continue
		}
		results = append(results, Result{
			SourceID: key.source,
			DocID:    key.doc,
			Score:    score,
			Document: doc,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].SourceID != results[j].SourceID {
			return results[i].SourceID < results[j].SourceID
		}
		return results[i].DocID < results[j].DocID
	})

	if limit < len(results) {
		results = results[:limit]
	}
	return results
}
