package domain

import "strings"

// Pair is one unit of an alignment: the phoneme cluster it covers and the
// jamo string it is rendered as. Inserted units (the silent leading ㅇ)
// carry an empty Tag; absorbed units (a syllable-final R) carry an empty
// Jamo.
type Pair struct {
	Tag  string
	Jamo string
}

// Alignment is one candidate reading of a whole pronunciation.
type Alignment []Pair

// Jamo concatenates the jamo strings of all pairs in order.
func (a Alignment) Jamo() string {
	var b strings.Builder
	for _, p := range a {
		b.WriteString(p.Jamo)
	}
	return b.String()
}

// Tags concatenates the phoneme tags of all pairs in order. For an
// alignment produced from a parse tree this equals the joined tokens.
func (a Alignment) Tags() string {
	var b strings.Builder
	for _, p := range a {
		b.WriteString(p.Tag)
	}
	return b.String()
}

// Concat returns a fresh alignment holding parts in order.
func Concat(parts ...Alignment) Alignment {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make(Alignment, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// CorpusEntry is one labelled training example.
type CorpusEntry struct {
	Word   string
	Hangul string
	Line   int
}
