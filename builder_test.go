package cmusearch

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func sampleCourseCorpus() (Sources, Config) {
	sources := Sources{
		"courses": {
			"17-651": Document{
				"courseID": "17-651",
				"name":     "Models of Software Systems",
			},
		},
	}
	config := Config{
		"courses": FieldWeights{
			"courseID": 0.6,
			"name":     0.2,
		},
	}
	return sources, config
}

func TestBuildFieldLengthInvariant(t *testing.T) {
	sources, config := sampleCourseCorpus()
	store, err := Build(sources, config)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// sum over docs of field_length == sum over g of sum over (d,tf) of tf
	for _, field := range []string{"courseID", "name"} {
		var fromLength int
		for doc := range sources["courses"] {
			fromLength += store.FieldLength("courses", doc, field)
		}

		var fromPostings int
		fi := store.sources["courses"].fields[field]
		for _, list := range fi.postings {
			for _, p := range list {
				fromPostings += p.TF
			}
		}

		if fromLength != fromPostings {
			t.Errorf("field %q: length sum %d != postings tf sum %d", field, fromLength, fromPostings)
		}
	}
}

func TestBuildPostingsSortedByDocID(t *testing.T) {
	sources := Sources{
		"courses": {
			"b": Document{"name": "Sustainable Energy Systems"},
			"a": Document{"name": "Sustainable Energy Policy"},
		},
	}
	config := Config{"courses": FieldWeights{"name": 1.0}}

	store, err := Build(sources, config)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	fi := store.sources["courses"].fields["name"]
	for gram, list := range fi.postings {
		for i := 1; i < len(list); i++ {
			if list[i-1].DocID >= list[i].DocID {
				t.Fatalf("posting list for %q not strictly sorted: %v", gram, list)
			}
		}
	}
}

func TestBuildDocFreqMatchesDedupedPostingList(t *testing.T) {
	sources := Sources{
		"courses": {
			"a": Document{"name": "sustainable"},
			"b": Document{"name": "sustainable"},
			"c": Document{"name": "unrelated"},
		},
	}
	config := Config{"courses": FieldWeights{"name": 1.0}}

	store, err := Build(sources, config)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for _, gram := range Tokenize("sustainable") {
		df := store.DocFreq("courses", "name", gram)
		list := store.Postings("courses", "name", gram)
		if df != len(list) {
			t.Errorf("doc_freq(%q) = %d, want len(postings) = %d", gram, df, len(list))
		}
		if df < 1 {
			t.Errorf("doc_freq(%q) = %d, want >= 1", gram, df)
		}
	}
}

func TestBuildAbsentFieldContributesNoTokens(t *testing.T) {
	sources := Sources{
		"courses": {
			"a": Document{"courseID": "17-651"}, // no "name" field
		},
	}
	config := Config{"courses": FieldWeights{"courseID": 1.0, "name": 1.0}}

	store, err := Build(sources, config)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := store.FieldLength("courses", "a", "name"); got != 0 {
		t.Errorf("FieldLength for absent field = %d, want 0", got)
	}
	if got := store.AvgFieldLen("courses", "name"); got != 0 {
		t.Errorf("AvgFieldLen for field with no content = %v, want 0", got)
	}
}

func TestBuildAvgFieldLenOverAllDocuments(t *testing.T) {
	// spec.md §9: avgFieldLen is computed over all documents in the
	// source, including those where the field is absent (zero length).
	sources := Sources{
		"courses": {
			"a": Document{"name": "models"},   // 3 n-grams: mode, odel, dels
			"b": Document{"courseID": "x"},    // "name" absent -> 0
		},
	}
	config := Config{"courses": FieldWeights{"name": 1.0}}

	store, err := Build(sources, config)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := 3.0 / 2.0
	if got := store.AvgFieldLen("courses", "name"); got != want {
		t.Errorf("AvgFieldLen = %v, want %v", got, want)
	}
}

func TestBuildNegativeWeightRejected(t *testing.T) {
	sources := Sources{"courses": {"a": Document{"name": "x"}}}
	config := Config{"courses": FieldWeights{"name": -1.0}}

	_, err := Build(sources, config)
	if err == nil {
		t.Fatal("Build with negative weight: want error, got nil")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Build with negative weight: want ErrInvalidConfig, got %v", err)
	}
}

func TestBuildStrictSourcesMismatch(t *testing.T) {
	sources := Sources{"courses": {"a": Document{"name": "x"}}}
	config := Config{"rooms": FieldWeights{"building": 1.0}}

	_, err := Build(sources, config, WithStrictSources())
	if err == nil {
		t.Fatal("Build with mismatched sources under WithStrictSources: want error, got nil")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("want ErrInvalidConfig, got %v", err)
	}
}

func TestBuildNonStrictSourcesMismatchAllowed(t *testing.T) {
	sources := Sources{"courses": {"a": Document{"name": "x"}}}
	config := Config{"rooms": FieldWeights{"building": 1.0}}

	store, err := Build(sources, config)
	if err != nil {
		t.Fatalf("Build without WithStrictSources: want no error, got %v", err)
	}
	if store.DocCount() != 1 {
		t.Errorf("DocCount = %d, want 1", store.DocCount())
	}
}
