package translit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/myenglish-translit/internal/domain"
	"github.com/heartmarshall/myenglish-translit/internal/model"
)

// Train builds a probability table from labelled entries. For each entry
// the first candidate whose Hangul equals the label is taken as ground
// truth and its ambiguous pairs are counted. Entries without a match or
// missing from the lexicon contribute nothing; so do entries whose
// candidates hit the cap before a match, which are also counted in
// TrainStats.Truncated.
//
// The corpus is split into contiguous shards counted in parallel and merged
// in shard order, so the result does not depend on scheduling.
func (s *Service) Train(ctx context.Context, entries []domain.CorpusEntry) (*model.Table, TrainStats, error) {
	start := time.Now()
	log := s.logger(ctx)

	shards := split(entries, s.cfg.Workers)
	accs := make([]*model.Accumulator, len(shards))
	stats := make([]TrainStats, len(shards))

	g, gctx := errgroup.WithContext(ctx)
	for i, shard := range shards {
		accs[i] = model.NewAccumulator(s.pipe.Tables.Ambiguous)
		g.Go(func() error {
			return s.trainShard(gctx, shard, accs[i], &stats[i])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, TrainStats{}, fmt.Errorf("train: %w", err)
	}

	total := model.NewAccumulator(s.pipe.Tables.Ambiguous)
	var sum TrainStats
	for i := range shards {
		total.Merge(accs[i])
		sum.Entries += stats[i].Entries
		sum.Matched += stats[i].Matched
		sum.Unmatched += stats[i].Unmatched
		sum.Unknown += stats[i].Unknown
		sum.Truncated += stats[i].Truncated
	}
	sum.Duration = time.Since(start)

	table := total.Table(time.Now().UTC())
	if err := table.Validate(); err != nil {
		return nil, sum, fmt.Errorf("train: %w", err)
	}

	log.Info("training complete",
		slog.String("table_id", table.ID.String()),
		slog.Int("entries", sum.Entries),
		slog.Int("matched", sum.Matched),
		slog.Int("unmatched", sum.Unmatched),
		slog.Int("unknown", sum.Unknown),
		slog.Int("truncated", sum.Truncated),
		slog.Int("tags", table.Len()),
		slog.Duration("duration", sum.Duration),
	)
	return table, sum, nil
}

func (s *Service) trainShard(ctx context.Context, entries []domain.CorpusEntry, acc *model.Accumulator, stats *TrainStats) error {
	log := s.logger(ctx)
	for _, e := range entries {
		stats.Entries++

		var matched bool
		err := s.walk(ctx, e.Word, func(c Candidate) error {
			if c.Hangul != e.Hangul {
				return nil
			}
			acc.Observe(c.Alignment)
			matched = true
			return errStop
		})
		switch {
		case errors.Is(err, domain.ErrUnknownWord):
			stats.Unknown++
			log.Debug("word not in lexicon", slog.String("word", e.Word), slog.Int("line", e.Line))
			continue
		case errors.Is(err, domain.ErrTooManyCandidates):
			stats.Truncated++
		case err != nil:
			return fmt.Errorf("line %d: %w", e.Line, err)
		}

		if matched {
			stats.Matched++
		} else {
			stats.Unmatched++
		}
	}
	return nil
}

// split cuts entries into at most n contiguous, non-empty shards.
func split[T any](entries []T, n int) [][]T {
	if len(entries) == 0 {
		return nil
	}
	if n <= 0 {
		n = 1
	}
	if n > len(entries) {
		n = len(entries)
	}
	size := (len(entries) + n - 1) / n

	shards := make([][]T, 0, n)
	for lo := 0; lo < len(entries); lo += size {
		hi := min(lo+size, len(entries))
		shards = append(shards, entries[lo:hi])
	}
	return shards
}
