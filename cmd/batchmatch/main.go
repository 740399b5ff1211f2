// Command batchmatch matches a word list concurrently. Input lines are
// "word<TAB>ipa" (or bare IPA); output is one JSON record per input line,
// in input order.
//
// Flags:
//
//	--in           input file (default: stdin)
//	--out          output file (default: stdout)
//	--concurrency  override batch.concurrency from the config
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/ipa-mnemonic/internal/app"
	"github.com/heartmarshall/ipa-mnemonic/internal/app/batch"
	"github.com/heartmarshall/ipa-mnemonic/internal/config"
)

func main() {
	inFlag := flag.String("in", "", "input file (default: stdin)")
	outFlag := flag.String("out", "", "output file (default: stdout)")
	concurrencyFlag := flag.Int("concurrency", 0, "override batch.concurrency")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if *concurrencyFlag > 0 {
		cfg.Batch.Concurrency = *concurrencyFlag
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var in io.Reader = os.Stdin
	if *inFlag != "" {
		f, err := os.Open(*inFlag)
		if err != nil {
			logger.Error("open input", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	var out io.Writer = os.Stdout
	if *outFlag != "" {
		f, err := os.Create(*outFlag)
		if err != nil {
			logger.Error("create output", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	engine, err := app.BuildEngine(ctx, cfg, logger)
	if err != nil {
		logger.Error("build engine", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer engine.Close()

	runner := batch.NewRunner(logger, engine, cfg.Batch.Concurrency, cfg.Batch.WordTimeout)

	stats, err := runner.Run(ctx, in, out)
	if err != nil {
		logger.Error("batch failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if stats.Failed > 0 {
		logger.Warn("some words failed", slog.Int("failed", stats.Failed))
	}
}
