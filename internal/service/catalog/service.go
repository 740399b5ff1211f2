// Package catalog maintains the stored dictionaries: bulk imports and
// recomputation of picture-word canonical keys.
package catalog

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/ipa-mnemonic/internal/domain"
)

type pictureRepo interface {
	ListAll(ctx context.Context) ([]domain.PictureWord, error)
	InsertMany(ctx context.Context, words []domain.PictureWord) error
	UpdateKeys(ctx context.Context, updates []domain.KeyUpdate) error
}

type keywordRepo interface {
	Insert(ctx context.Context, sourceText, rawIPA string) (domain.Keyword, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// DefaultChunkSize bounds the rows sent in one batch.
const DefaultChunkSize = 500

// Service provides dictionary maintenance operations.
type Service struct {
	pictures  pictureRepo
	keywords  keywordRepo
	tx        txManager
	log       *slog.Logger
	chunkSize int
}

// NewService creates a new catalog Service.
func NewService(
	log *slog.Logger,
	pictures pictureRepo,
	keywords keywordRepo,
	tx txManager,
) *Service {
	return &Service{
		pictures:  pictures,
		keywords:  keywords,
		tx:        tx,
		log:       log.With("service", "catalog"),
		chunkSize: DefaultChunkSize,
	}
}

func chunks[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = len(items)
	}
	var out [][]T
	for size < len(items) {
		items, out = items[size:], append(out, items[:size])
	}
	if len(items) > 0 {
		out = append(out, items)
	}
	return out
}
