package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/ipa-mnemonic/internal/domain"
	"github.com/heartmarshall/ipa-mnemonic/internal/ipa"
)

// UniqueSuffix returns a short unique string for generating non-conflicting test data.
func UniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedKeyword inserts a keyword and returns it with its generated id.
func SeedKeyword(t *testing.T, pool *pgxpool.Pool, sourceText, rawIPA string) domain.Keyword {
	t.Helper()

	kw := domain.Keyword{SourceText: sourceText, RawIPA: rawIPA}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO keywords (source_text, raw_ipa) VALUES ($1, $2) RETURNING id`,
		kw.SourceText, kw.RawIPA,
	).Scan(&kw.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedKeyword insert: %v", err)
	}
	return kw
}

// SeedPictureWord inserts a picture word. The canonical key is derived
// from rawIPA unless staleKey is true, in which case it is left empty so
// reindexing can be exercised.
func SeedPictureWord(
	t *testing.T,
	pool *pgxpool.Pool,
	sourceText, rawIPA string,
	category domain.UsageCategory,
	staleKey bool,
) domain.PictureWord {
	t.Helper()

	w := domain.PictureWord{
		ID:            uuid.New(),
		SourceText:    sourceText + "-" + UniqueSuffix(),
		TargetText:    sourceText,
		RawIPA:        rawIPA,
		UsageCategory: category,
	}
	if !staleKey {
		w.CanonicalKey = ipa.StorageKey(rawIPA, ipa.StorageSegments)
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO picture_words (id, source_text, target_text, raw_ipa, canonical_key, usage_category, can_be_personal)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		w.ID, w.SourceText, w.TargetText, w.RawIPA, w.CanonicalKey, string(w.UsageCategory), w.CanBePersonal,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPictureWord insert: %v", err)
	}
	return w
}
