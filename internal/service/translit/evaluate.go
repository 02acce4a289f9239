package translit

import (
	"context"
	"errors"
	"log/slog"

	"github.com/heartmarshall/myenglish-translit/internal/domain"
	"github.com/heartmarshall/myenglish-translit/internal/model"
)

// Evaluate predicts every entry with table and compares the result with
// its label. A prediction made from a capped candidate list is compared
// like any other and counted in Truncated.
func (s *Service) Evaluate(ctx context.Context, entries []domain.CorpusEntry, table *model.Table) (*EvalReport, error) {
	words := make([]string, len(entries))
	for i, e := range entries {
		words[i] = e.Word
	}

	results, err := s.PredictBatch(ctx, words, table)
	if err != nil {
		return nil, err
	}

	report := &EvalReport{Total: len(entries)}
	for i, r := range results {
		want := entries[i].Hangul
		if r.Prediction != nil && r.Prediction.Truncated {
			report.Truncated++
			r.Err = nil
		}
		switch {
		case r.Err != nil && errors.Is(r.Err, domain.ErrNoPrediction):
			report.Unpredictable++
			report.Mismatches = append(report.Mismatches, Mismatch{Word: r.Word, Want: want, Err: r.Err})
		case r.Err != nil:
			report.Failed++
			report.Mismatches = append(report.Mismatches, Mismatch{Word: r.Word, Want: want, Err: r.Err})
		case r.Prediction.Hangul == want:
			report.Passed++
		default:
			report.Failed++
			report.Mismatches = append(report.Mismatches, Mismatch{Word: r.Word, Want: want, Got: r.Prediction.Hangul})
		}
	}

	s.logger(ctx).Info("evaluation complete",
		slog.Int("total", report.Total),
		slog.Int("passed", report.Passed),
		slog.Int("failed", report.Failed),
		slog.Int("unpredictable", report.Unpredictable),
		slog.Int("truncated", report.Truncated),
		slog.Float64("accuracy", report.Accuracy()),
	)
	return report, nil
}
