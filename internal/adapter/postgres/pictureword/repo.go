// Package pictureword implements the picture-word catalog using PostgreSQL.
package pictureword

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/ipa-mnemonic/internal/adapter/postgres"
	"github.com/heartmarshall/ipa-mnemonic/internal/domain"
)

const table = "picture_words"

var columns = []string{
	"id", "source_text", "target_text", "canonical_key",
	"raw_ipa", "usage_category", "can_be_personal",
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type row struct {
	ID            uuid.UUID `db:"id"`
	SourceText    string    `db:"source_text"`
	TargetText    string    `db:"target_text"`
	CanonicalKey  string    `db:"canonical_key"`
	RawIPA        string    `db:"raw_ipa"`
	UsageCategory string    `db:"usage_category"`
	CanBePersonal bool      `db:"can_be_personal"`
}

func (r row) toDomain() domain.PictureWord {
	return domain.PictureWord{
		ID:            r.ID,
		SourceText:    r.SourceText,
		TargetText:    r.TargetText,
		CanonicalKey:  r.CanonicalKey,
		RawIPA:        r.RawIPA,
		UsageCategory: domain.UsageCategory(r.UsageCategory),
		CanBePersonal: r.CanBePersonal,
	}
}

// Repo provides picture-word persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new picture-word repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Find returns the records of category whose canonical key starts with
// pattern; '_' in pattern matches exactly one character.
func (r *Repo) Find(ctx context.Context, pattern string, category domain.UsageCategory) ([]domain.PictureWord, error) {
	query := psql.Select(columns...).
		From(table).
		Where(squirrel.Eq{"usage_category": string(category)}).
		Where(squirrel.Like{"canonical_key": likePrefix(pattern)}).
		OrderBy("source_text", "id")

	words, err := r.selectWords(ctx, query)
	if err != nil {
		return nil, postgres.MapError(err, fmt.Sprintf("find %s %q", category, pattern))
	}
	return words, nil
}

// ListAll returns every record ordered by id.
func (r *Repo) ListAll(ctx context.Context) ([]domain.PictureWord, error) {
	words, err := r.selectWords(ctx, psql.Select(columns...).From(table).OrderBy("id"))
	if err != nil {
		return nil, postgres.MapError(err, "list picture words")
	}
	return words, nil
}

// InsertMany upserts records by (source_text, usage_category) in one batch.
func (r *Repo) InsertMany(ctx context.Context, words []domain.PictureWord) error {
	if len(words) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, w := range words {
		sql, args, err := psql.Insert(table).
			Columns("source_text", "target_text", "canonical_key", "raw_ipa", "usage_category", "can_be_personal").
			Values(w.SourceText, w.TargetText, w.CanonicalKey, w.RawIPA, string(w.UsageCategory), w.CanBePersonal).
			Suffix(`ON CONFLICT (source_text, usage_category) DO UPDATE SET
				target_text = EXCLUDED.target_text,
				canonical_key = EXCLUDED.canonical_key,
				raw_ipa = EXCLUDED.raw_ipa,
				can_be_personal = EXCLUDED.can_be_personal,
				updated_at = now()`).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		batch.Queue(sql, args...)
	}

	return r.execBatch(ctx, batch, len(words), "insert picture words")
}

// UpdateKeys rewrites canonical keys in one batch.
func (r *Repo) UpdateKeys(ctx context.Context, updates []domain.KeyUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(
			`UPDATE picture_words SET canonical_key = $1, updated_at = now() WHERE id = $2`,
			u.Key, u.ID,
		)
	}

	return r.execBatch(ctx, batch, len(updates), "update canonical keys")
}

func (r *Repo) selectWords(ctx context.Context, query squirrel.SelectBuilder) ([]domain.PictureWord, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, err
	}

	out := make([]domain.PictureWord, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}

func (r *Repo) execBatch(ctx context.Context, batch *pgx.Batch, n int, op string) error {
	br := postgres.QuerierFromCtx(ctx, r.db).SendBatch(ctx, batch)
	defer br.Close()

	for range n {
		if _, err := br.Exec(); err != nil {
			return postgres.MapError(err, op)
		}
	}
	return nil
}

// likePrefix turns a wildcard pattern into a LIKE prefix pattern. The
// wildcard is LIKE's own single-character '_'; '%' and '\' are escaped.
func likePrefix(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern) + 1)
	for _, r := range pattern {
		if r == '%' || r == '\\' {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	b.WriteRune('%')
	return b.String()
}
