package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-translit/internal/config"
	"github.com/heartmarshall/myenglish-translit/internal/corpus"
	"github.com/heartmarshall/myenglish-translit/internal/lexicon/cmu"
	"github.com/heartmarshall/myenglish-translit/internal/model"
	"github.com/heartmarshall/myenglish-translit/internal/service/translit"
	"github.com/heartmarshall/myenglish-translit/pkg/ctxutil"
)

// App wires configuration, the pronunciation dictionary, the
// transliteration service and the table store for the commands.
type App struct {
	cfg        *config.Config
	log        *slog.Logger
	svc        *translit.Service
	store      TableStore
	closeStore func()
}

// New loads the CMU dictionary, builds the English pipeline and opens the
// configured table store.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	log.Info("starting",
		slog.String("version", BuildVersion()),
		slog.String("store", cfg.Store.Driver),
	)

	start := time.Now()
	dict, res, err := cmu.Load(cfg.Translit.CMUDictPath)
	if err != nil {
		return nil, fmt.Errorf("load cmudict: %w", err)
	}
	log.Info("cmudict loaded",
		slog.String("path", cfg.Translit.CMUDictPath),
		slog.Int("words", res.Stats.UniqueWords),
		slog.Int("invalid_lines", res.Stats.InvalidLines),
		slog.Duration("duration", time.Since(start)),
	)

	pipe, err := translit.EnglishPipeline(cfg.Translit.MaxCandidates)
	if err != nil {
		return nil, err
	}
	svc := translit.NewService(log, dict, pipe, translit.Config{
		MaxCandidates: cfg.Translit.MaxCandidates,
		Workers:       cfg.Translit.Workers,
	})

	store, closeStore, err := OpenStore(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return newApp(cfg, log, svc, store, closeStore), nil
}

func newApp(cfg *config.Config, log *slog.Logger, svc *translit.Service, store TableStore, closeStore func()) *App {
	if closeStore == nil {
		closeStore = func() {}
	}
	return &App{
		cfg:        cfg,
		log:        log,
		svc:        svc,
		store:      store,
		closeStore: closeStore,
	}
}

// Close releases the table store.
func (a *App) Close() { a.closeStore() }

// Service returns the transliteration service.
func (a *App) Service() *translit.Service { return a.svc }

// TrainOptions controls a training run.
type TrainOptions struct {
	// CorpusPath overrides translit.corpus_path when set.
	CorpusPath string
	// Evaluate re-predicts the corpus with the new table.
	Evaluate bool
	// DryRun skips saving the table.
	DryRun bool
}

// TrainReport is the outcome of a training run.
type TrainReport struct {
	Table  *model.Table
	Corpus corpus.Stats
	Train  translit.TrainStats
	Eval   *translit.EvalReport
	Saved  bool
}

// Train reads the corpus, trains a table, optionally evaluates it and
// saves it to the store.
func (a *App) Train(ctx context.Context, opts TrainOptions) (*TrainReport, error) {
	ctx = ctxutil.WithRunID(ctx, uuid.New())
	log := a.log.With(slog.String("op", "train"))

	path := opts.CorpusPath
	if path == "" {
		path = a.cfg.Translit.CorpusPath
	}

	entries, cstats, err := corpus.ParseFile(path)
	if err != nil {
		return nil, err
	}
	log.Info("corpus loaded",
		slog.String("path", path),
		slog.Int("entries", cstats.Entries),
		slog.Int("malformed_lines", cstats.MalformedLines),
	)

	table, tstats, err := a.svc.Train(ctxutil.WithStage(ctx, "train"), entries)
	if err != nil {
		return nil, err
	}
	report := &TrainReport{Table: table, Corpus: cstats, Train: tstats}

	if opts.Evaluate {
		eval, err := a.svc.Evaluate(ctxutil.WithStage(ctx, "evaluate"), entries, table)
		if err != nil {
			return nil, err
		}
		report.Eval = eval
	}

	if opts.DryRun {
		log.Info("dry run, table not saved", slog.String("table_id", table.ID.String()))
		return report, nil
	}
	if err := a.store.Save(ctxutil.WithStage(ctx, "save"), table); err != nil {
		return nil, fmt.Errorf("save table: %w", err)
	}
	report.Saved = true
	log.Info("table saved", slog.String("table_id", table.ID.String()))

	return report, nil
}

// Predict loads the latest table and predicts every word. Per-word
// failures are reported in the results; the error is reserved for failures
// that stop the whole run.
func (a *App) Predict(ctx context.Context, words []string) ([]translit.BatchResult, *model.Table, error) {
	ctx = ctxutil.WithRunID(ctx, uuid.New())

	table, err := a.store.Load(ctxutil.WithStage(ctx, "load"))
	if err != nil {
		return nil, nil, fmt.Errorf("load table: %w", err)
	}
	a.log.Debug("table loaded",
		slog.String("table_id", table.ID.String()),
		slog.Time("trained_at", table.TrainedAt),
		slog.Int("tags", table.Len()),
	)

	results, err := a.svc.PredictBatch(ctxutil.WithStage(ctx, "predict"), words, table)
	if err != nil {
		return nil, table, err
	}
	return results, table, nil
}
