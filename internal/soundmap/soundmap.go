// Package soundmap holds the phoneme cluster to jamo substitution tables.
package soundmap

import (
	"slices"

	"github.com/heartmarshall/myenglish-translit/internal/domain"
)

// Table maps a phoneme cluster key (tags joined without separator, e.g.
// "KS") to its acceptable jamo renderings in preference order.
// A Table is immutable after NewTable returns.
type Table struct {
	name    string
	entries map[string][]string
}

// NewTable copies entries into a table. Duplicate renderings for a key are
// collapsed keeping the first occurrence. An empty key or a key without
// renderings is a configuration error.
func NewTable(name string, entries map[string][]string) (*Table, error) {
	t := &Table{name: name, entries: make(map[string][]string, len(entries))}
	for key, jamo := range entries {
		if key == "" {
			return nil, domain.NewConfigError("soundmap", "%s: empty key", name)
		}
		out := make([]string, 0, len(jamo))
		for _, j := range jamo {
			if j == "" {
				return nil, domain.NewConfigError("soundmap", "%s: empty rendering for %q", name, key)
			}
			if !slices.Contains(out, j) {
				out = append(out, j)
			}
		}
		if len(out) == 0 {
			return nil, domain.NewConfigError("soundmap", "%s: no renderings for %q", name, key)
		}
		t.entries[key] = out
	}
	return t, nil
}

// MustNewTable is like NewTable but panics on error.
func MustNewTable(name string, entries map[string][]string) *Table {
	t, err := NewTable(name, entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the table name used in error messages.
func (t *Table) Name() string { return t.name }

// Lookup returns the renderings for key. The returned slice is shared and
// must not be modified.
func (t *Table) Lookup(key string) ([]string, bool) {
	if t == nil {
		return nil, false
	}
	j, ok := t.entries[key]
	return j, ok
}

// Keys returns the table keys in sorted order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Len returns the number of keys.
func (t *Table) Len() int { return len(t.entries) }

// Set groups the three tables. The grammar category of a node, not the
// text of its key, decides which table applies.
type Set struct {
	Consonants *Table
	Vowels     *Table
	Isolated   *Table
}

// Candidates returns the renderings known for tag, consulting the
// consonant, vowel and isolated tables in that order.
func (s Set) Candidates(tag string) []string {
	for _, t := range []*Table{s.Consonants, s.Vowels, s.Isolated} {
		if j, ok := t.Lookup(tag); ok {
			return j
		}
	}
	return nil
}

// Ambiguous reports whether tag has more than one rendering. Only ambiguous
// tags carry information worth learning.
func (s Set) Ambiguous(tag string) bool {
	return len(s.Candidates(tag)) > 1
}
