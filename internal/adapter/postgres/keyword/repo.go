// Package keyword implements the keyword dictionary source using PostgreSQL.
package keyword

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/ipa-mnemonic/internal/adapter/postgres"
	"github.com/heartmarshall/ipa-mnemonic/internal/domain"
)

const listKeywords = `SELECT id, source_text, raw_ipa FROM keywords ORDER BY id`

type keywordRow struct {
	ID         int64  `db:"id"`
	SourceText string `db:"source_text"`
	RawIPA     string `db:"raw_ipa"`
}

// Repo provides read access to the keyword dictionary.
type Repo struct {
	db postgres.Querier
}

// New creates a new keyword repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ListKeywords returns the whole dictionary ordered by id. The order is
// the dictionary index order the matcher breaks ties with.
func (r *Repo) ListKeywords(ctx context.Context) ([]domain.Keyword, error) {
	var rows []keywordRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, listKeywords); err != nil {
		return nil, postgres.MapError(err, "list keywords")
	}

	out := make([]domain.Keyword, len(rows))
	for i, row := range rows {
		out[i] = domain.Keyword{ID: row.ID, SourceText: row.SourceText, RawIPA: row.RawIPA}
	}
	return out, nil
}

// Insert adds a keyword and returns it with its generated id.
func (r *Repo) Insert(ctx context.Context, sourceText, rawIPA string) (domain.Keyword, error) {
	kw := domain.Keyword{SourceText: sourceText, RawIPA: rawIPA}
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx,
		`INSERT INTO keywords (source_text, raw_ipa) VALUES ($1, $2) RETURNING id`,
		sourceText, rawIPA,
	).Scan(&kw.ID)
	if err != nil {
		return domain.Keyword{}, postgres.MapError(err, "insert keyword")
	}
	return kw, nil
}
