package translit

import (
	"time"

	"github.com/heartmarshall/myenglish-translit/internal/domain"
)

// Candidate is one rendering of a word.
type Candidate struct {
	Pronunciation []string
	Alignment     domain.Alignment
	Hangul        string
}

// Prediction is the best candidate of a word under a probability table.
type Prediction struct {
	Word string
	Candidate
	Score float64
	// Considered is the number of candidates scored.
	Considered int
	// Truncated reports that the word had more candidates than the cap and
	// only the first Considered were scored.
	Truncated bool
}

// BatchResult pairs a word with its prediction or the reason it failed.
type BatchResult struct {
	Word       string
	Prediction *Prediction
	Err        error
}

// TrainStats summarizes a training run.
type TrainStats struct {
	Entries   int
	Matched   int
	Unmatched int
	Unknown   int
	// Truncated counts entries whose candidates hit the cap before a match.
	Truncated int
	Duration  time.Duration
}

// Mismatch records a wrong or missing prediction during evaluation.
type Mismatch struct {
	Word string
	Want string
	// Got is empty when no prediction was possible.
	Got string
	Err error
}

// EvalReport holds the outcome of an evaluation pass.
type EvalReport struct {
	Total         int
	Passed        int
	Failed        int
	Unpredictable int
	// Truncated counts entries predicted from a capped candidate list.
	Truncated  int
	Mismatches []Mismatch
}

// Accuracy returns the share of passed entries.
func (r EvalReport) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Passed) / float64(r.Total)
}
