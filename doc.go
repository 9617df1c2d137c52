// Package cmusearch is an in-process, trigram-based full-text search engine
// for modest corpora of short, structured documents (course catalog
// entries, room records, and the like).
//
// The engine builds an inverted index over 4-character n-grams, scores
// candidate documents with a BM25F-style ranking function over weighted
// fields, and can serialize its built index to a self-describing string
// for cold-start restoration. It has no notion of a host, a transport, or
// a UI: callers pass already-parsed documents and configuration in, and
// get ranked results or an opaque cache blob out.
package cmusearch
