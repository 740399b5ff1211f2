package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/ipa-mnemonic/internal/domain"
	"github.com/heartmarshall/ipa-mnemonic/internal/ipa"
)

// ReindexResult reports what a Reindex run touched.
type ReindexResult struct {
	Scanned int
	Updated int
}

// Reindex recomputes the canonical key of every picture word from its raw
// IPA and rewrites the stale ones in a single transaction. Run it after
// any change to the normalization tables.
func (s *Service) Reindex(ctx context.Context, maxSegments int) (ReindexResult, error) {
	if maxSegments <= 0 {
		return ReindexResult{}, domain.NewValidationError("max_segments", "must be positive")
	}

	var result ReindexResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		words, err := s.pictures.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list picture words: %w", err)
		}
		result.Scanned = len(words)

		var updates []domain.KeyUpdate
		for _, w := range words {
			key := ipa.StorageKey(w.RawIPA, maxSegments)
			if key != w.CanonicalKey {
				updates = append(updates, domain.KeyUpdate{ID: w.ID, Key: key})
			}
		}

		for _, chunk := range chunks(updates, s.chunkSize) {
			if err := s.pictures.UpdateKeys(ctx, chunk); err != nil {
				return fmt.Errorf("update keys: %w", err)
			}
		}
		result.Updated = len(updates)
		return nil
	})
	if err != nil {
		return ReindexResult{}, err
	}

	s.log.InfoContext(ctx, "picture words reindexed",
		slog.Int("scanned", result.Scanned),
		slog.Int("updated", result.Updated),
	)
	return result, nil
}
