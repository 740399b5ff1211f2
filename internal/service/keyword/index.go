package keyword

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/heartmarshall/ipa-mnemonic/internal/domain"
	"github.com/heartmarshall/ipa-mnemonic/internal/ipa"
)

// Source lists the keyword dictionary. Implementations return entries in
// a stable order (by id).
type Source interface {
	ListKeywords(ctx context.Context) ([]domain.Keyword, error)
}

// Entry is a dictionary keyword together with its memoized matching key.
type Entry struct {
	Keyword domain.Keyword
	Key     string
}

// Index is the normalized, read-only view of the keyword dictionary.
// It is safe for concurrent use once built.
type Index struct {
	entries []Entry
	byFirst map[rune][]int
}

// NewIndex loads every keyword from src and normalizes it. Failure to load
// is reported as domain.ErrDictionaryUnavailable.
func NewIndex(ctx context.Context, src Source) (*Index, error) {
	keywords, err := src.ListKeywords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list keywords: %w: %w", domain.ErrDictionaryUnavailable, err)
	}
	return BuildIndex(keywords), nil
}

// BuildIndex normalizes keywords in order. Entries whose IPA normalizes to
// an empty key are skipped.
func BuildIndex(keywords []domain.Keyword) *Index {
	idx := &Index{
		entries: make([]Entry, 0, len(keywords)),
		byFirst: make(map[rune][]int),
	}
	for _, kw := range keywords {
		key := ipa.Key(kw.RawIPA, ipa.KeywordSegments)
		if key == "" {
			continue
		}
		first := []rune(key)[0]
		idx.byFirst[first] = append(idx.byFirst[first], len(idx.entries))
		idx.entries = append(idx.entries, Entry{Keyword: kw, Key: key})
	}
	return idx
}

// Len returns the number of indexed entries.
func (idx *Index) Len() int { return len(idx.entries) }

// Lookup returns entries whose key starts with, or is a prefix of, any of
// the basket keys. The result keeps dictionary order and holds one entry
// per distinct key.
func (idx *Index) Lookup(baskets []string) []Entry {
	seenKey := make(map[string]struct{})
	var hits []int
	for _, b := range baskets {
		if b == "" {
			continue
		}
		for _, i := range idx.byFirst[[]rune(b)[0]] {
			e := idx.entries[i]
			if _, ok := seenKey[e.Key]; ok {
				continue
			}
			if strings.HasPrefix(e.Key, b) || strings.HasPrefix(b, e.Key) {
				seenKey[e.Key] = struct{}{}
				hits = append(hits, i)
			}
		}
	}

	slices.Sort(hits)
	out := make([]Entry, 0, len(hits))
	for _, i := range hits {
		out = append(out, idx.entries[i])
	}
	return out
}
