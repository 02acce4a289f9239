// Package model holds the trained substitution probabilities and scores
// candidate alignments with them.
package model

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-translit/internal/domain"
)

const (
	// SumTolerance is the allowed drift of a tag's probability sum from 1.
	SumTolerance = 1e-9

	// Format tags persisted tables. Stores refuse any other value.
	Format = "translit-probabilities/v1"
)

// Table maps a phoneme tag to the probability of each jamo rendering.
// A Table is read-only once built and may be shared between goroutines.
type Table struct {
	ID        uuid.UUID
	TrainedAt time.Time
	Entries   map[string]map[string]float64
}

// NewTable wraps entries in a table with a fresh ID.
func NewTable(entries map[string]map[string]float64, trainedAt time.Time) *Table {
	if entries == nil {
		entries = make(map[string]map[string]float64)
	}
	return &Table{
		ID:        uuid.New(),
		TrainedAt: trainedAt,
		Entries:   entries,
	}
}

// Probability returns the probability of rendering tag as jamo.
func (t *Table) Probability(tag, jamo string) (float64, bool) {
	p, ok := t.Entries[tag][jamo]
	return p, ok
}

// Tags returns the tags of the table in sorted order.
func (t *Table) Tags() []string {
	tags := make([]string, 0, len(t.Entries))
	for tag := range t.Entries {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// Len returns the number of tags.
func (t *Table) Len() int { return len(t.Entries) }

// Score multiplies the probabilities of all pairs of a. A pair whose tag or
// rendering is not in the table contributes 1.
func (t *Table) Score(a domain.Alignment) float64 {
	score := 1.0
	for _, p := range a {
		if prob, ok := t.Probability(p.Tag, p.Jamo); ok {
			score *= prob
		}
	}
	return score
}

// Best returns the index and score of the highest scoring alignment. Among
// equal scores the earliest wins. ok is false when candidates is empty.
func (t *Table) Best(candidates []domain.Alignment) (idx int, score float64, ok bool) {
	idx = -1
	for i, c := range candidates {
		s := t.Score(c)
		if idx < 0 || s > score {
			idx, score = i, s
		}
	}
	return idx, score, idx >= 0
}

// Validate checks that every distribution is non-empty, holds values in
// [0,1] and sums to 1 within SumTolerance.
func (t *Table) Validate() error {
	for _, tag := range t.Tags() {
		dist := t.Entries[tag]
		if len(dist) == 0 {
			return fmt.Errorf("tag %q: empty distribution: %w", tag, domain.ErrValidation)
		}
		for jamo, p := range dist {
			if p < 0 || p > 1 || math.IsNaN(p) {
				return fmt.Errorf("tag %q: probability of %q is %v: %w", tag, jamo, p, domain.ErrValidation)
			}
		}
		if sum := sortedSum(dist); math.Abs(sum-1) > SumTolerance {
			return fmt.Errorf("tag %q: probabilities sum to %v: %w", tag, sum, domain.ErrValidation)
		}
	}
	return nil
}

// sortedSum adds values in key order so that the result does not depend on
// map iteration.
func sortedSum(dist map[string]float64) float64 {
	keys := make([]string, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	sum := 0.0
	for _, k := range keys {
		sum += dist[k]
	}
	return sum
}
