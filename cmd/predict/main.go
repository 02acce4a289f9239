// Command predict transliterates English words into Hangul using the most
// recently trained probability table.
//
// Words are taken from the arguments, or one per line from stdin when no
// arguments are given.
//
// Flags:
//
//	--verbose  also print the pronunciation (ARPAbet and IPA) and score
//	--config   path to YAML config file
//	--version  print build information and exit
//
// Words whose candidates exceed translit.max_candidates are still printed,
// predicted from the candidates considered; verbose output marks them.
//
// Exit codes: 0 = every word predicted, 1 = error, 2 = some words failed.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/heartmarshall/myenglish-translit/internal/app"
	"github.com/heartmarshall/myenglish-translit/internal/config"
	"github.com/heartmarshall/myenglish-translit/internal/lexicon/cmu"
)

func main() {
	verboseFlag := flag.Bool("verbose", false, "print pronunciation and score")
	configFlag := flag.String("config", "", "path to YAML config file (default: $CONFIG_PATH or ./config.yaml)")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println(app.BuildVersion())
		return
	}

	words := flag.Args()
	if len(words) == 0 {
		var err error
		words, err = readWords(os.Stdin)
		if err != nil {
			log.Fatalf("read stdin: %v", err)
		}
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

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("initialize", slog.String("error", err.Error()))
		os.Exit(1)
	}

	results, _, err := a.Predict(ctx, words)
	a.Close()
	if err != nil {
		logger.Error("prediction failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	failed := 0
	out := bufio.NewWriter(os.Stdout)
	for _, r := range results {
		if r.Err != nil && r.Prediction == nil {
			failed++
			fmt.Fprintf(out, "%s\t-\t%v\n", r.Word, r.Err)
			continue
		}
		p := r.Prediction
		if *verboseFlag {
			considered := fmt.Sprint(p.Considered)
			if p.Truncated {
				considered += "+"
			}
			fmt.Fprintf(out, "%s\t%s\t%s\t/%s/\t%.6g\t%s\n",
				r.Word, p.Hangul, strings.Join(p.Pronunciation, " "), cmu.IPA(p.Pronunciation), p.Score, considered)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", r.Word, p.Hangul)
	}
	if err := out.Flush(); err != nil {
		logger.Error("write output", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if failed > 0 {
		os.Exit(2)
	}
}

func readWords(f *os.File) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		words = append(words, strings.Fields(scanner.Text())...)
	}
	return words, scanner.Err()
}
