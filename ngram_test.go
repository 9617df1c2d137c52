package cmusearch

import "testing"

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "exact window",
			input:    "mode",
			expected: []string{"mode"},
		},
		{
			name:     "lowercases",
			input:    "MODE",
			expected: []string{"mode"},
		},
		{
			name:     "slides by one",
			input:    "models",
			expected: []string{"mode", "odel", "dels"},
		},
		{
			name:     "too short",
			input:    "abc",
			expected: nil,
		},
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
		{
			name:     "no punctuation stripping",
			input:    "a-b!",
			expected: []string{"a-b!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.input, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Tokenize(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestTokenizeLength(t *testing.T) {
	// Tokenize of a string of character-length L produces max(0, L-3)
	// n-grams (spec.md §8).
	for l := 0; l <= 12; l++ {
		input := make([]rune, l)
		for i := range input {
			input[i] = 'a'
		}
		got := Tokenize(string(input))
		want := l - 3
		if want < 0 {
			want = 0
		}
		if len(got) != want {
			t.Errorf("Tokenize(len=%d) produced %d n-grams, want %d", l, len(got), want)
		}
	}
}

func TestQueryNgramsDedup(t *testing.T) {
	grams := queryNgrams("aaaaa")
	if len(grams) != 1 || grams[0] != "aaaa" {
		t.Fatalf("queryNgrams(\"aaaaa\") = %v, want single deduped n-gram", grams)
	}
}
