package model

import (
	"time"

	"github.com/heartmarshall/myenglish-translit/internal/domain"
)

// Accumulator collects (tag, rendering) counts from accepted alignments.
// It is not safe for concurrent use; give each worker its own and Merge.
type Accumulator struct {
	ambiguous func(tag string) bool
	counts    map[string]map[string]int
	totals    map[string]int
	observed  int
}

// NewAccumulator returns an empty accumulator that counts only tags for
// which ambiguous returns true. A nil ambiguous counts every non-empty tag.
func NewAccumulator(ambiguous func(tag string) bool) *Accumulator {
	if ambiguous == nil {
		ambiguous = func(tag string) bool { return tag != "" }
	}
	return &Accumulator{
		ambiguous: ambiguous,
		counts:    make(map[string]map[string]int),
		totals:    make(map[string]int),
	}
}

// Observe counts every ambiguous pair of an accepted alignment.
func (a *Accumulator) Observe(al domain.Alignment) {
	a.observed++
	for _, p := range al {
		if !a.ambiguous(p.Tag) {
			continue
		}
		a.add(p.Tag, p.Jamo, 1)
	}
}

func (a *Accumulator) add(tag, jamo string, n int) {
	byJamo, ok := a.counts[tag]
	if !ok {
		byJamo = make(map[string]int)
		a.counts[tag] = byJamo
	}
	byJamo[jamo] += n
	a.totals[tag] += n
}

// Merge adds the counts of other into a.
func (a *Accumulator) Merge(other *Accumulator) {
	for tag, byJamo := range other.counts {
		for jamo, n := range byJamo {
			a.add(tag, jamo, n)
		}
	}
	a.observed += other.observed
}

// Observed returns the number of alignments observed.
func (a *Accumulator) Observed() int { return a.observed }

// Count returns how often tag was rendered as jamo.
func (a *Accumulator) Count(tag, jamo string) int { return a.counts[tag][jamo] }

// Table turns counts into probabilities: count over the tag total, then
// every distribution that does not sum to exactly 1 is rescaled by the
// inverse of its sum.
func (a *Accumulator) Table(trainedAt time.Time) *Table {
	entries := make(map[string]map[string]float64, len(a.counts))
	for tag, byJamo := range a.counts {
		total := float64(a.totals[tag])
		dist := make(map[string]float64, len(byJamo))
		for jamo, n := range byJamo {
			dist[jamo] = float64(n) / total
		}
		if sum := sortedSum(dist); sum != 1 {
			factor := 1 / sum
			for jamo := range dist {
				dist[jamo] *= factor
			}
		}
		entries[tag] = dist
	}
	return NewTable(entries, trainedAt)
}
