package translit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/myenglish-translit/internal/domain"
)

// errStop ends a candidate walk early.
var errStop = errors.New("stop walk")

// Candidates returns every rendering of word over all its pronunciations,
// in enumeration order. A word missing from the lexicon fails with an error
// wrapping domain.ErrUnknownWord. A word whose pronunciations cannot be
// parsed or rendered yields no candidates and no error.
//
// A word with more than cfg.MaxCandidates renderings returns the first
// ones together with an error wrapping domain.ErrTooManyCandidates.
func (s *Service) Candidates(ctx context.Context, word string) ([]Candidate, error) {
	var out []Candidate
	err := s.walk(ctx, word, func(c Candidate) error {
		out = append(out, c)
		return nil
	})
	if errors.Is(err, domain.ErrTooManyCandidates) {
		return out, err
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// walk feeds the candidates of word to fn in enumeration order. fn may
// return errStop to end the walk without error.
//
// At most cfg.MaxCandidates candidates reach fn. When more exist, or a
// parse or reduction was cut short by its own cap, walk returns an error
// wrapping domain.ErrTooManyCandidates after the last delivered candidate.
func (s *Service) walk(ctx context.Context, word string, fn func(Candidate) error) error {
	prons, err := s.lexicon.Lookup(word)
	if err != nil {
		return fmt.Errorf("lookup %q: %w", word, err)
	}

	var (
		count     int
		truncated bool
		limit     = s.cfg.MaxCandidates
	)
	tooMany := func() error {
		s.logger(ctx).Warn("candidates truncated",
			slog.String("word", word),
			slog.Int("candidates", count),
		)
		return fmt.Errorf("word %q: kept %d candidates: %w", word, count, domain.ErrTooManyCandidates)
	}

	for _, pron := range prons {
		if err := ctx.Err(); err != nil {
			return err
		}

		trees, err := s.pipe.Parser.Parse(s.pipe.Tokenize(pron))
		if err != nil {
			if !errors.Is(err, domain.ErrTooManyCandidates) {
				return fmt.Errorf("parse %q: %w", word, err)
			}
			truncated = true
		}

		for _, tree := range trees {
			alignments, err := s.pipe.Reducer.Reduce(tree)
			if err != nil {
				if !errors.Is(err, domain.ErrTooManyCandidates) {
					return fmt.Errorf("reduce %q: %w", word, err)
				}
				truncated = true
			}

			for _, a := range alignments {
				if limit > 0 && count >= limit {
					return tooMany()
				}
				count++
				err := fn(Candidate{
					Pronunciation: pron,
					Alignment:     a,
					Hangul:        s.pipe.Compose(a.Jamo()),
				})
				if errors.Is(err, errStop) {
					return nil
				}
				if err != nil {
					return err
				}
			}
		}
	}
	if truncated {
		return tooMany()
	}
	return nil
}
