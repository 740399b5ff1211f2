// Package memcatalog is an in-memory picture-word catalog.
package memcatalog

import (
	"cmp"
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/heartmarshall/ipa-mnemonic/internal/domain"
	"github.com/heartmarshall/ipa-mnemonic/internal/service/picture"
)

// Catalog holds records grouped by category and sorted by canonical key,
// so the literal head of a pattern narrows the scan to one key range.
type Catalog struct {
	byCategory map[domain.UsageCategory][]domain.PictureWord
}

// New indexes words. Records with an empty canonical key are unreachable
// by any pattern but the empty one.
func New(words []domain.PictureWord) *Catalog {
	c := &Catalog{byCategory: make(map[domain.UsageCategory][]domain.PictureWord)}
	for _, w := range words {
		c.byCategory[w.UsageCategory] = append(c.byCategory[w.UsageCategory], w)
	}
	for _, ws := range c.byCategory {
		slices.SortStableFunc(ws, func(a, b domain.PictureWord) int {
			return strings.Compare(a.CanonicalKey, b.CanonicalKey)
		})
	}
	return c
}

// Len returns the number of indexed records.
func (c *Catalog) Len() int {
	n := 0
	for _, ws := range c.byCategory {
		n += len(ws)
	}
	return n
}

// Find returns the records of category matching pattern with the same
// prefix semantics as the SQL catalog, ordered by source text then id.
func (c *Catalog) Find(ctx context.Context, pattern string, category domain.UsageCategory) ([]domain.PictureWord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ws := c.byCategory[category]
	head, _, _ := strings.Cut(pattern, string(picture.Wildcard))

	lo := sort.Search(len(ws), func(i int) bool { return ws[i].CanonicalKey >= head })

	var out []domain.PictureWord
	for i := lo; i < len(ws) && strings.HasPrefix(ws[i].CanonicalKey, head); i++ {
		if picture.MatchPattern(ws[i].CanonicalKey, pattern) {
			out = append(out, ws[i])
		}
	}

	slices.SortFunc(out, func(a, b domain.PictureWord) int {
		if d := cmp.Compare(a.SourceText, b.SourceText); d != 0 {
			return d
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return out, nil
}
