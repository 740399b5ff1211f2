package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/ipa-mnemonic/internal/domain"
	"github.com/heartmarshall/ipa-mnemonic/internal/ipa"
)

// ImportPictures upserts picture words. Canonical keys are recomputed so
// stored keys never disagree with the current normalization.
func (s *Service) ImportPictures(ctx context.Context, words []domain.PictureWord, maxSegments int) (int, error) {
	prepared := make([]domain.PictureWord, 0, len(words))
	var errs []domain.FieldError
	for i, w := range words {
		if strings.TrimSpace(w.SourceText) == "" {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("pictures[%d].source_text", i), Message: "required"})
			continue
		}
		if !w.UsageCategory.IsValid() {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("pictures[%d].usage_category", i), Message: "invalid"})
			continue
		}
		w.CanonicalKey = ipa.StorageKey(w.RawIPA, maxSegments)
		if strings.TrimSpace(w.CanonicalKey) == "" {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("pictures[%d].raw_ipa", i), Message: "no ipa symbols"})
			continue
		}
		prepared = append(prepared, w)
	}
	if len(errs) > 0 {
		return 0, domain.NewValidationErrors(errs)
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, chunk := range chunks(prepared, s.chunkSize) {
			if err := s.pictures.InsertMany(ctx, chunk); err != nil {
				return fmt.Errorf("insert picture words: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "picture words imported", slog.Int("count", len(prepared)))
	return len(prepared), nil
}

// ImportKeywords appends keywords to the dictionary in one transaction.
// Ids from the input are ignored; the store assigns new ones in input
// order, so the dictionary order follows the input.
func (s *Service) ImportKeywords(ctx context.Context, keywords []domain.Keyword) (int, error) {
	for i, kw := range keywords {
		if strings.TrimSpace(kw.SourceText) == "" || strings.TrimSpace(kw.RawIPA) == "" {
			return 0, domain.NewValidationError(fmt.Sprintf("keywords[%d]", i), "source text and ipa are required")
		}
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, kw := range keywords {
			if _, err := s.keywords.Insert(ctx, kw.SourceText, kw.RawIPA); err != nil {
				return fmt.Errorf("insert keyword %q: %w", kw.SourceText, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "keywords imported", slog.Int("count", len(keywords)))
	return len(keywords), nil
}
