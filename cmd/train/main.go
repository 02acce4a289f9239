// Command train learns substitution probabilities from a labelled corpus
// and stores them with the configured store driver.
//
// Flags:
//
//	--corpus    corpus file (default: translit.corpus_path)
//	--evaluate  re-predict the corpus with the new table and report accuracy
//	--dry-run   train without saving
//	--config    path to YAML config file
//	--version   print build information and exit
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/heartmarshall/myenglish-translit/internal/app"
	"github.com/heartmarshall/myenglish-translit/internal/config"
)

func main() {
	corpusFlag := flag.String("corpus", "", "corpus file (default: translit.corpus_path)")
	evaluateFlag := flag.Bool("evaluate", false, "evaluate the trained table on the corpus")
	dryRunFlag := flag.Bool("dry-run", false, "train without saving the table")
	configFlag := flag.String("config", "", "path to YAML config file (default: $CONFIG_PATH or ./config.yaml)")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println(app.BuildVersion())
		return
	}

	path := *configFlag
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.LoadPath(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 2*time.Hour)
	defer cancel()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("initialize", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer a.Close()

	report, err := a.Train(ctx, app.TrainOptions{
		CorpusPath: *corpusFlag,
		Evaluate:   *evaluateFlag,
		DryRun:     *dryRunFlag,
	})
	if err != nil {
		logger.Error("training failed", slog.String("error", err.Error()))
		a.Close()
		os.Exit(1)
	}

	fmt.Printf("table %s: %d tags from %d of %d entries (%d unmatched, %d unknown, %d truncated)\n",
		report.Table.ID, report.Table.Len(),
		report.Train.Matched, report.Train.Entries, report.Train.Unmatched, report.Train.Unknown,
		report.Train.Truncated)

	if ev := report.Eval; ev != nil {
		fmt.Printf("evaluation: %d passed, %d failed, %d unpredictable of %d (accuracy %.2f%%, %d truncated)\n",
			ev.Passed, ev.Failed, ev.Unpredictable, ev.Total, ev.Accuracy()*100, ev.Truncated)
		for _, m := range ev.Mismatches {
			if m.Err != nil {
				fmt.Printf("  %s: want %s, error: %v\n", m.Word, m.Want, m.Err)
				continue
			}
			fmt.Printf("  %s: want %s, got %s\n", m.Word, m.Want, m.Got)
		}
	}
}
