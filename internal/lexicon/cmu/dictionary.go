package cmu

import (
	"fmt"
	"slices"

	"github.com/heartmarshall/myenglish-translit/internal/domain"
)

// Dictionary answers phonemic lookups from a parsed CMU file. It is
// read-only after construction and safe for concurrent use.
type Dictionary struct {
	entries map[string][]Pronunciation
}

// NewDictionary builds a dictionary from a parse result. Variants of a word
// are ordered by variant index.
func NewDictionary(r ParseResult) *Dictionary {
	entries := make(map[string][]Pronunciation, len(r.Pronunciations))
	for word, prons := range r.Pronunciations {
		sorted := slices.Clone(prons)
		slices.SortStableFunc(sorted, func(a, b Pronunciation) int {
			return a.VariantIndex - b.VariantIndex
		})
		entries[word] = sorted
	}
	return &Dictionary{entries: entries}
}

// Load parses the CMU file at path into a Dictionary.
func Load(path string) (*Dictionary, ParseResult, error) {
	r, err := Parse(path)
	if err != nil {
		return nil, ParseResult{}, fmt.Errorf("cmu load %s: %w", path, err)
	}
	return NewDictionary(r), r, nil
}

// Lookup returns every pronunciation of word as stress-free phoneme
// sequences in variant order. The word is normalized first. A missing word
// yields an error wrapping domain.ErrUnknownWord.
func (d *Dictionary) Lookup(word string) ([][]string, error) {
	prons, ok := d.entries[domain.NormalizeWord(word)]
	if !ok {
		return nil, fmt.Errorf("cmu lookup %q: %w", word, domain.ErrUnknownWord)
	}
	out := make([][]string, len(prons))
	for i, p := range prons {
		out[i] = slices.Clone(p.Phonemes)
	}
	return out, nil
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int { return len(d.entries) }
