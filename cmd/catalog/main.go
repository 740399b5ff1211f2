// Command catalog maintains the PostgreSQL dictionaries: applies
// migrations, imports dictionary files and recomputes picture-word keys.
//
// Flags:
//
//	--migrate           apply pending goose migrations first
//	--keywords          keyword TSV file to import ("id<TAB>source<TAB>ipa")
//	--pictures          picture TSV file to import
//	--cmu               CMU Pronouncing Dictionary file to import as picture words
//	--cmu-category      usage category given to CMU words (default "image")
//	--reindex           recompute every stored canonical key
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/ipa-mnemonic/internal/adapter/dictfile"
	"github.com/heartmarshall/ipa-mnemonic/internal/adapter/postgres"
	pgkeyword "github.com/heartmarshall/ipa-mnemonic/internal/adapter/postgres/keyword"
	"github.com/heartmarshall/ipa-mnemonic/internal/adapter/postgres/pictureword"
	"github.com/heartmarshall/ipa-mnemonic/internal/app"
	"github.com/heartmarshall/ipa-mnemonic/internal/config"
	"github.com/heartmarshall/ipa-mnemonic/internal/domain"
	"github.com/heartmarshall/ipa-mnemonic/internal/service/catalog"
)

func main() {
	migrateFlag := flag.Bool("migrate", false, "apply pending goose migrations first")
	keywordsFlag := flag.String("keywords", "", "keyword TSV file to import")
	picturesFlag := flag.String("pictures", "", "picture TSV file to import")
	cmuFlag := flag.String("cmu", "", "CMU Pronouncing Dictionary file to import")
	cmuCategoryFlag := flag.String("cmu-category", string(domain.UsageImage), "usage category for CMU words")
	reindexFlag := flag.Bool("reindex", false, "recompute every stored canonical key")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if *migrateFlag {
		if err := postgres.Migrate(ctx, logger, cfg.Database.DSN, cfg.Migrations.Dir); err != nil {
			logger.Error("migrate", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := catalog.NewService(logger,
		pictureword.New(pool),
		pgkeyword.New(pool),
		postgres.NewTxManager(pool),
	)

	if *keywordsFlag != "" {
		keywords, err := dictfile.NewKeywordFile(*keywordsFlag).ListKeywords(ctx)
		if err != nil {
			logger.Error("read keywords", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if _, err := svc.ImportKeywords(ctx, keywords); err != nil {
			logger.Error("import keywords", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if *picturesFlag != "" {
		words, err := dictfile.LoadPictureWords(ctx, *picturesFlag)
		if err != nil {
			logger.Error("read picture words", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if _, err := svc.ImportPictures(ctx, words, cfg.Picture.MaxSegments); err != nil {
			logger.Error("import picture words", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if *cmuFlag != "" {
		category, err := domain.ParseUsageCategory(*cmuCategoryFlag)
		if err != nil {
			logger.Error("parse cmu category", slog.String("error", err.Error()))
			os.Exit(1)
		}
		words, stats, err := dictfile.LoadCMU(ctx, *cmuFlag, category)
		if err != nil {
			logger.Error("read cmu dictionary", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("cmu dictionary parsed",
			slog.Int("entries", stats.Entries),
			slog.Int("variants_skipped", stats.Variants),
		)
		if _, err := svc.ImportPictures(ctx, words, cfg.Picture.MaxSegments); err != nil {
			logger.Error("import cmu words", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if *reindexFlag {
		if _, err := svc.Reindex(ctx, cfg.Picture.MaxSegments); err != nil {
			logger.Error("reindex", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}
