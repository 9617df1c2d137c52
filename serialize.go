package cmusearch

import (
	"encoding/base64"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zstd"
)

// schemaVersion identifies the encoded index wire format. Bump this and
// reject older/newer values in Decode whenever the shape of
// serializedIndex changes in a breaking way (spec.md §4.5, §7
// VersionMismatch).
const schemaVersion = 1

// serializedPosting mirrors posting for JSON encoding with compact keys;
// the encoded form is an implementation detail (spec.md §4.5), so short
// field names are fine here even though the in-memory posting type spells
// them out.
type serializedPosting struct {
	Doc string `json:"d"`
	TF  int    `json:"f"`
}

type serializedField struct {
	Postings map[string][]serializedPosting `json:"postings"`
	DocFreq  map[string]int                 `json:"doc_freq"`
	Lengths  map[string]int                 `json:"lengths"`
	AvgLen   float64                        `json:"avg_len"`
}

type serializedSource struct {
	Fields   map[string]*serializedField `json:"fields"`
	DocCount int                         `json:"doc_count"`
}

// serializedIndex is the self-contained, JSON-marshalable form of the
// "expensive" parts of a Store: posting lists, field lengths, and
// doc/avg-count tables. Documents and field weights are deliberately not
// part of this -- Decode reattaches those from the sources/config the
// caller supplies, so the encoded blob never duplicates the corpus itself
// (spec.md §4.5).
type serializedIndex struct {
	SchemaVersion int                          `json:"schema_version"`
	Sources       map[string]*serializedSource `json:"sources"`
	DocCount      int                          `json:"doc_count"`
}

// Encode renders store to an opaque, self-describing string suitable for
// external caching (spec.md §4.5, get_cachable_index). The JSON payload is
// zstd-compressed and base64-encoded, following the
// Algorithm/Compressor shape of the corpus's own
// pkg/compression/compression.go, trimmed to the single algorithm
// cmusearch needs.
func Encode(store *Store) (string, error) {
	idx := &serializedIndex{
		SchemaVersion: schemaVersion,
		Sources:       make(map[string]*serializedSource, len(store.sources)),
		DocCount:      store.docCount,
	}

	for sourceID, si := range store.sources {
		ss := &serializedSource{
			Fields:   make(map[string]*serializedField, len(si.fields)),
			DocCount: si.docCount,
		}
		for field, fi := range si.fields {
			sf := &serializedField{
				Postings: make(map[string][]serializedPosting, len(fi.postings)),
				DocFreq:  fi.docFreq,
				Lengths:  fi.lengths,
				AvgLen:   fi.avgLen,
			}
			for gram, list := range fi.postings {
				sp := make([]serializedPosting, len(list))
				for i, p := range list {
					sp[i] = serializedPosting{Doc: p.DocID, TF: p.TF}
				}
				sf.Postings[gram] = sp
			}
			ss.Fields[field] = sf
		}
		idx.Sources[sourceID] = ss
	}

	raw, err := json.Marshal(idx)
	if err != nil {
		return "", errors.Wrap(err, "cmusearch: marshal index")
	}

	compressed, err := compressBlob(raw)
	if err != nil {
		return "", errors.Wrap(err, "cmusearch: compress index")
	}

	return base64.StdEncoding.EncodeToString(compressed), nil
}

// Decode reconstructs an Index Store from an opaque string previously
// produced by Encode, reattaching sources (for result payloads) and
// config (for field weights) without recomputing any n-grams (spec.md
// §4.5, init_engine_from_cache). Decoding a blob whose schema_version
// does not match the current schemaVersion fails with
// ErrVersionMismatch; any other parse failure fails with
// ErrInputMalformed.
func Decode(encoded string, sources Sources, config Config) (*Store, error) {
	compressed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Wrapf(ErrInputMalformed, "base64 decode: %v", err)
	}

	raw, err := decompressBlob(compressed)
	if err != nil {
		return nil, errors.Wrapf(ErrInputMalformed, "decompress index: %v", err)
	}

	var idx serializedIndex
	if err := json.Unmarshal(raw, &idx); err != nil {
		return nil, errors.Wrapf(ErrInputMalformed, "unmarshal index: %v", err)
	}

	if idx.SchemaVersion != schemaVersion {
		return nil, errors.Wrapf(ErrVersionMismatch, "got version %d, want %d", idx.SchemaVersion, schemaVersion)
	}

	store := newStore()
	store.weights = config
	store.docCount = idx.DocCount

	for sourceID, ss := range idx.Sources {
		si := &sourceIndex{
			fields:   make(map[string]*fieldIndex, len(ss.Fields)),
			docCount: ss.DocCount,
		}
		for field, sf := range ss.Fields {
			fi := &fieldIndex{
				postings: make(map[string][]posting, len(sf.Postings)),
				docFreq:  sf.DocFreq,
				lengths:  sf.Lengths,
				avgLen:   sf.AvgLen,
			}
			for gram, list := range sf.Postings {
				p := make([]posting, len(list))
				for i, sp := range list {
					p[i] = posting{DocID: sp.Doc, TF: sp.TF}
				}
				fi.postings[gram] = p
			}
			si.fields[field] = fi
		}
		store.sources[sourceID] = si

		if docs, ok := sources[sourceID]; ok {
			if err := store.putDocuments(sourceID, docs); err != nil {
				return nil, errors.Wrapf(err, "install documents for source %q", sourceID)
			}
		}
	}

	return store, nil
}

func compressBlob(raw []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

func decompressBlob(compressed []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(compressed, nil)
}
