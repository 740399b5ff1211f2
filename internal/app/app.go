package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/ipa-mnemonic/internal/adapter/dictfile"
	"github.com/heartmarshall/ipa-mnemonic/internal/adapter/memcatalog"
	"github.com/heartmarshall/ipa-mnemonic/internal/adapter/postgres"
	pgkeyword "github.com/heartmarshall/ipa-mnemonic/internal/adapter/postgres/keyword"
	"github.com/heartmarshall/ipa-mnemonic/internal/adapter/postgres/pictureword"
	"github.com/heartmarshall/ipa-mnemonic/internal/adapter/redis/selection"
	"github.com/heartmarshall/ipa-mnemonic/internal/config"
	"github.com/heartmarshall/ipa-mnemonic/internal/service/keyword"
	"github.com/heartmarshall/ipa-mnemonic/internal/service/mnemonic"
	"github.com/heartmarshall/ipa-mnemonic/internal/service/picture"
)

// Engine is a ready matching service together with the connections it
// owns. Close releases them.
type Engine struct {
	*mnemonic.Service

	checks  map[string]func(context.Context) error
	closers []func() error
}

// HealthChecks returns a ping function per external dependency, keyed by
// component name. File sources with in-process counters have none.
func (e *Engine) HealthChecks() map[string]func(context.Context) error {
	return e.checks
}

// Close releases every connection the engine opened, in reverse order.
func (e *Engine) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i]())
	}
	e.closers = nil
	return errors.Join(errs...)
}

// BuildEngine wires the dictionary sources and selection counters chosen
// by cfg and loads the keyword index.
func BuildEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *Engine, err error) {
	logger.InfoContext(ctx, "building engine",
		slog.String("version", BuildVersion()),
		slog.String("source", cfg.Source.Kind),
		slog.String("selection", cfg.Selection.Backend),
	)

	e := &Engine{checks: make(map[string]func(context.Context) error)}
	defer func() {
		if err != nil {
			_ = e.Close()
		}
	}()

	var deps mnemonic.Deps

	switch cfg.Source.Kind {
	case config.SourcePostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		e.closers = append(e.closers, func() error { pool.Close(); return nil })
		e.checks["database"] = pool.Ping

		deps.Keywords = pgkeyword.New(pool)
		deps.Catalog = pictureword.New(pool)

	case config.SourceFile:
		words, err := dictfile.LoadPictureWords(ctx, cfg.Source.PictureFile)
		if err != nil {
			return nil, fmt.Errorf("load picture words: %w", err)
		}
		catalog := memcatalog.New(words)
		logger.InfoContext(ctx, "picture catalog loaded", slog.Int("records", catalog.Len()))

		deps.Keywords = dictfile.NewKeywordFile(cfg.Source.KeywordFile)
		deps.Catalog = catalog

	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}

	if cfg.Selection.Backend == config.SelectionRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		e.closers = append(e.closers, client.Close)

		pingCtx, cancel := context.WithTimeout(ctx, cfg.Redis.Timeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		e.checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		deps.Counters = selection.New(client, cfg.Redis.Key, cfg.Redis.Timeout)
	}

	svc, err := mnemonic.Build(ctx, logger, KeywordConfig(cfg.Keyword), PictureConfig(cfg.Picture), deps)
	if err != nil {
		return nil, err
	}
	e.Service = svc
	return e, nil
}

// KeywordConfig converts the loaded settings into matcher tuning.
func KeywordConfig(c config.KeywordConfig) keyword.Config {
	return keyword.Config{
		PrefixLen:              c.PrefixLen,
		PickTopK:               c.PickTopK,
		ConsonantExactWeight:   c.ConsonantExactWeight,
		BigramWeight:           c.BigramWeight,
		ConsonantOverlapWeight: c.ConsonantOverlapWeight,
		VowelOverlapWeight:     c.VowelOverlapWeight,
		RejectPenalty:          c.RejectPenalty,
		RejectedScore:          c.RejectedScore,
		DefaultTemperature:     c.DefaultTemperature,
		RejectedTemperature:    c.RejectedTemperature,
		DiversityLinear:        c.DiversityLinear,
		DiversityLog:           c.DiversityLog,
		DiversityCap:           c.DiversityCap,
	}
}

// PictureConfig converts the loaded settings into matcher settings.
func PictureConfig(c config.PictureConfig) picture.Config {
	return picture.Config{
		MaxSegments:       c.MaxSegments,
		PlaceholderSource: c.PlaceholderSource,
		PlaceholderTarget: c.PlaceholderTarget,
	}
}
