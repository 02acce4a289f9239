package translit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/myenglish-translit/internal/domain"
	"github.com/heartmarshall/myenglish-translit/internal/model"
)

// Predict returns the best scoring rendering of word under table. Equal
// scores resolve to the candidate enumerated first.
//
// When no candidate exists the error wraps domain.ErrNoPrediction; if the
// lookup was the cause it also wraps domain.ErrUnknownWord. A word whose
// candidates exceed the cap returns the best of those considered, marked
// Truncated, together with an error wrapping domain.ErrTooManyCandidates.
func (s *Service) Predict(ctx context.Context, word string, table *model.Table) (*Prediction, error) {
	var (
		best  *Prediction
		count int
	)
	err := s.walk(ctx, word, func(c Candidate) error {
		count++
		score := table.Score(c.Alignment)
		if best == nil || score > best.Score {
			best = &Prediction{Word: word, Candidate: c, Score: score}
		}
		return nil
	})

	truncated := errors.Is(err, domain.ErrTooManyCandidates)
	switch {
	case err != nil && errors.Is(err, domain.ErrUnknownWord):
		return nil, fmt.Errorf("predict %q: %w: %w", word, domain.ErrNoPrediction, err)
	case err != nil && !truncated:
		return nil, fmt.Errorf("predict %q: %w", word, err)
	case best == nil && truncated:
		return nil, fmt.Errorf("predict %q: %w: %w", word, domain.ErrNoPrediction, err)
	case best == nil:
		return nil, fmt.Errorf("predict %q: no candidates: %w", word, domain.ErrNoPrediction)
	}

	best.Considered = count
	if truncated {
		best.Truncated = true
		return best, fmt.Errorf("predict %q: %w", word, err)
	}
	return best, nil
}

// PredictBatch predicts every word with at most cfg.Workers goroutines.
// Results keep the order of words. Per-word failures are reported in
// BatchResult.Err, next to the partial Prediction of a truncated word; the returned error is set only when ctx ends the batch.
func (s *Service) PredictBatch(ctx context.Context, words []string, table *model.Table) ([]BatchResult, error) {
	results := make([]BatchResult, len(words))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i, word := range words {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := s.Predict(gctx, word, table)
			if ctxErr := gctx.Err(); ctxErr != nil {
				return ctxErr
			}
			results[i] = BatchResult{Word: word, Prediction: p, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("predict batch: %w", err)
	}

	s.logger(ctx).Debug("batch predicted", slog.Int("words", len(words)))
	return results, nil
}
