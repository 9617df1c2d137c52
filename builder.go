package cmusearch

import (
	"log/slog"
	"sort"

	"github.com/cockroachdb/errors"
)

// buildOptions configures Build, following the teacher's CorpusOption
// functional-options pattern (bm25md.go's WithTokenizer/WithFieldWeights).
type buildOptions struct {
	strict         bool
	markdownFields map[string]map[string]bool // source -> field -> markdown?
}

// BuildOption configures a Build call.
type BuildOption func(*buildOptions)

// WithStrictSources rejects Sources/Config pairs whose source id sets
// disagree in either direction (spec.md §7 InvalidConfig, strict mode).
// Off by default: a config naming a field weight for a source with no
// documents, or documents for a source cmusearch.Config is silent about,
// are both otherwise permitted (the former "will never produce matches,"
// the latter simply indexes nothing for that source).
func WithStrictSources() BuildOption {
	return func(o *buildOptions) { o.strict = true }
}

// WithMarkdownFields marks specific (source, field) pairs as carrying
// Markdown-formatted values. Their content is rendered to plain text
// (headings, emphasis markers, code fences, etc. stripped) before n-gram
// tokenization. Fields not named here are tokenized as-is; this is purely
// additive and changes no default behavior.
func WithMarkdownFields(fields map[string]map[string]bool) BuildOption {
	return func(o *buildOptions) {
		if fields != nil {
			o.markdownFields = fields
		}
	}
}

// Build consumes a document corpus and configuration and produces a fully
// populated Index Store (spec.md §4.2). Build fails only on invalid
// configuration: a negative field weight, or (under WithStrictSources) a
// source id present in only one of sources and config.
func Build(sources Sources, config Config, opts ...BuildOption) (*Store, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateConfig(sources, config, o.strict); err != nil {
		return nil, err
	}

	strip := newMarkdownStripper()
	store := newStore()
	store.weights = config

	for _, sourceID := range sortedSourceIDs(sources) {
		docs := sources[sourceID]
		si := &sourceIndex{fields: make(map[string]*fieldIndex)}

		weights := config[sourceID]
		for field := range weights {
			si.fields[field] = &fieldIndex{
				postings: make(map[string][]posting),
				docFreq:  make(map[string]int),
				lengths:  make(map[string]int),
			}
		}

		for _, docID := range sortedDocIDs(docs) {
			fields := docs[docID]
			for field := range weights {
				value, present := fields[field]
				fi := si.fields[field]
				if !present {
					// Field listed in the weight table but absent from this
					// document contributes zero tokens -- still record a
					// zero length so avgFieldLen counts it (spec.md §9).
					fi.lengths[docID] = 0
					continue
				}

				if o.markdownFields[sourceID][field] {
					value = strip.strip(value)
				}

				counts, total := countNgrams(value)
				fi.lengths[docID] = total
				for gram, c := range counts {
					fi.postings[gram] = append(fi.postings[gram], posting{DocID: docID, TF: c})
					fi.docFreq[gram]++
				}
			}
			si.docCount++
		}

		for _, fi := range si.fields {
			for gram, list := range fi.postings {
				sort.Slice(list, func(i, j int) bool { return list[i].DocID < list[j].DocID })
				fi.postings[gram] = list
			}

			var total int
			for _, length := range fi.lengths {
				total += length
			}
			if si.docCount > 0 {
				fi.avgLen = float64(total) / float64(si.docCount)
			}
		}

		store.sources[sourceID] = si
		store.docCount += si.docCount

		if err := store.putDocuments(sourceID, docs); err != nil {
			return nil, errors.Wrapf(err, "install documents for source %q", sourceID)
		}

		slog.Debug("indexed source", "source", sourceID, "documents", si.docCount, "fields", len(si.fields))
	}

	return store, nil
}

// validateConfig enforces spec.md §7 InvalidConfig: weights must be
// non-negative, and (only under strict mode) source id sets must agree
// between sources and config in both directions.
func validateConfig(sources Sources, config Config, strict bool) error {
	for sourceID, weights := range config {
		for field, w := range weights {
			if w < 0 {
				return errors.Wrapf(ErrInvalidConfig, "source %q field %q has negative weight %v", sourceID, field, w)
			}
		}
		if strict {
			if _, ok := sources[sourceID]; !ok {
				return errors.Wrapf(ErrInvalidConfig, "source %q is configured but has no documents", sourceID)
			}
		}
	}
	if strict {
		for sourceID := range sources {
			if _, ok := config[sourceID]; !ok {
				return errors.Wrapf(ErrInvalidConfig, "source %q has documents but no configuration", sourceID)
			}
		}
	}
	return nil
}

func sortedSourceIDs(sources Sources) []string {
	ids := make([]string, 0, len(sources))
	for id := range sources {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedDocIDs(docs map[string]Document) []string {
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
