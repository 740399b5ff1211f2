// Command match prints the keyword and picture-word matches of one or more
// IPA transcriptions as JSON lines on stdout.
//
// Flags:
//
//	--ranked            print the ranked keyword list instead of one pick
//	--limit             cap the ranked list (0 = no cap)
//	--include-rejected  keep gate-failing keyword candidates
//	--tokens            also print the token stream of each input
//	--version           print the build version and exit
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/ipa-mnemonic/internal/app"
	"github.com/heartmarshall/ipa-mnemonic/internal/app/batch"
	"github.com/heartmarshall/ipa-mnemonic/internal/config"
	"github.com/heartmarshall/ipa-mnemonic/internal/ipa"
)

func main() {
	rankedFlag := flag.Bool("ranked", false, "print the ranked keyword list instead of one pick")
	limitFlag := flag.Int("limit", 0, "cap the ranked list (0 = no cap)")
	rejectedFlag := flag.Bool("include-rejected", false, "keep gate-failing keyword candidates")
	tokensFlag := flag.Bool("tokens", false, "also print the token stream")
	versionFlag := flag.Bool("version", false, "print the build version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println(app.BuildVersion())
		return
	}
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: match [flags] <ipa>...")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := app.BuildEngine(ctx, cfg, logger)
	if err != nil {
		logger.Error("build engine", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer engine.Close()

	opts := engine.DefaultKeywordOptions()
	opts.PickOne = !*rankedFlag
	opts.Limit = *limitFlag
	opts.IncludeRejected = *rejectedFlag

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)

	for _, raw := range flag.Args() {
		out := batch.MatchDTO{
			IPA:        raw,
			Segments:   engine.ToSegments(raw, ipa.KeywordSegments),
			StorageKey: engine.ToStorageKey(raw, cfg.Picture.MaxSegments),
		}
		if *tokensFlag {
			for _, tok := range engine.Tokenize(raw, ipa.DefaultTokenizeOptions) {
				out.Tokens = append(out.Tokens, fmt.Sprint(tok))
			}
		}

		kw, err := engine.MatchKeyword(ctx, raw, opts)
		if err != nil {
			logger.Error("match keyword", slog.String("ipa", raw), slog.String("error", err.Error()))
			os.Exit(1)
		}
		out.SetKeyword(kw)

		pics, err := engine.MatchPictureWords(ctx, raw)
		if err != nil {
			logger.Error("match picture words", slog.String("ipa", raw), slog.String("error", err.Error()))
			os.Exit(1)
		}
		out.SetPictures(pics)

		if err := enc.Encode(out); err != nil {
			logger.Error("write output", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}
