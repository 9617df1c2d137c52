package cmusearch

import "strings"

// ngramSize is the tokenizer's sliding-window width. The source project's
// README calls these "trigrams," but the window is, and always was, 4
// characters wide (spec.md §9 notes the naming inconsistency and keeps the
// actual value).
const ngramSize = 4

// Tokenize produces the sequence of lowercased, length-4 character n-grams
// in text, sliding one character at a time. A text shorter than ngramSize
// code points yields no n-grams. Tokenize is deterministic and total: it
// never errors and accepts any input, including empty strings and strings
// containing only punctuation or whitespace (no stripping or collapsing is
// performed; n-grams are taken over the raw, lowercased rune stream).
func Tokenize(text string) []string {
	runes := []rune(strings.ToLower(text))
	if len(runes) < ngramSize {
		return nil
	}

	out := make([]string, 0, len(runes)-ngramSize+1)
	for i := 0; i+ngramSize <= len(runes); i++ {
		out = append(out, string(runes[i:i+ngramSize]))
	}
	return out
}

// countNgrams tokenizes text and returns the per-n-gram occurrence count
// (the per-document-field multiset of spec.md §4.2 step 1b) along with the
// total n-gram count (the field length of §3).
func countNgrams(text string) (counts map[string]int, total int) {
	grams := Tokenize(text)
	if len(grams) == 0 {
		return nil, 0
	}
	counts = make(map[string]int, len(grams))
	for _, g := range grams {
		counts[g]++
	}
	return counts, len(grams)
}

// queryNgrams deduplicates a query's n-grams into a set. Spec.md §4.4 step 1
// tracks a query term frequency qtf(g) per n-gram "used symmetrically by
// BM25," but the scoring formula in §4.4 step 3 has no qtf factor -- only
// set membership in Q matters, so a duplicate n-gram in the query is
// counted once and does not double-weight (spec.md §8 boundary behavior).
func queryNgrams(query string) []string {
	grams := Tokenize(query)
	if len(grams) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(grams))
	out := make([]string, 0, len(grams))
	for _, g := range grams {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}
