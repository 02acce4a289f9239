package translit

import (
	"context"
	"log/slog"
	"runtime"
	"strings"

	"github.com/heartmarshall/myenglish-translit/internal/chart"
	"github.com/heartmarshall/myenglish-translit/internal/grammar"
	"github.com/heartmarshall/myenglish-translit/internal/hangul"
	"github.com/heartmarshall/myenglish-translit/internal/reducer"
	"github.com/heartmarshall/myenglish-translit/internal/soundmap"
	"github.com/heartmarshall/myenglish-translit/pkg/ctxutil"
)

type lexicon interface {
	Lookup(word string) ([][]string, error)
}

// Config holds service settings.
type Config struct {
	// MaxCandidates caps the candidates enumerated for one word over all
	// its pronunciations. Zero means no cap.
	MaxCandidates int
	// Workers bounds the goroutines used by Train and PredictBatch.
	Workers int
}

// Pipeline bundles the immutable stages shared by all calls.
type Pipeline struct {
	Parser  *chart.Parser
	Reducer *reducer.Reducer
	Tables  soundmap.Set
	// Tokenize turns a pronunciation into parser tokens.
	Tokenize func(phonemes []string) []string
	// Compose joins the jamo of an alignment into Hangul.
	Compose func(jamo string) string
}

// EnglishPipeline wires the built-in grammar, tables and reduction.
// maxCandidates also bounds trees per pronunciation and alignments per
// tree, so no single stage outgrows the per-word cap. The reducer
// configuration is validated against the grammar, so a defect in
// the static data fails here with domain.ErrConfig.
func EnglishPipeline(maxCandidates int) (Pipeline, error) {
	g := grammar.English()

	rcfg := reducer.English()
	rcfg.MaxAlignments = maxCandidates
	if err := rcfg.Validate(g); err != nil {
		return Pipeline{}, err
	}
	red, err := reducer.New(g, rcfg)
	if err != nil {
		return Pipeline{}, err
	}

	return Pipeline{
		Parser:   chart.NewParser(g, chart.WithMaxTrees(maxCandidates)),
		Reducer:  red,
		Tables:   rcfg.Tables,
		Tokenize: Letters,
		Compose:  hangul.Compose,
	}, nil
}

// Letters joins phonemes and splits the result into single letters, the
// token unit of the built-in grammar: ["K","AE","T"] -> ["K","A","E","T"].
func Letters(phonemes []string) []string {
	joined := strings.Join(phonemes, "")
	if joined == "" {
		return nil
	}
	return strings.Split(joined, "")
}

// Service provides transliteration operations.
type Service struct {
	lexicon lexicon
	pipe    Pipeline
	cfg     Config
	log     *slog.Logger
}

// NewService creates a new transliteration service.
func NewService(log *slog.Logger, lex lexicon, pipe Pipeline, cfg Config) *Service {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if pipe.Tokenize == nil {
		pipe.Tokenize = Letters
	}
	if pipe.Compose == nil {
		pipe.Compose = hangul.Compose
	}
	return &Service{
		lexicon: lex,
		pipe:    pipe,
		cfg:     cfg,
		log:     log.With("service", "translit"),
	}
}

// logger returns the service logger tagged with the run metadata in ctx.
func (s *Service) logger(ctx context.Context) *slog.Logger {
	l := s.log
	if id, ok := ctxutil.RunIDFromCtx(ctx); ok {
		l = l.With(slog.String("run_id", id.String()))
	}
	if stage := ctxutil.StageFromCtx(ctx); stage != "" {
		l = l.With(slog.String("stage", stage))
	}
	return l
}
