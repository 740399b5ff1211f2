package mnemonic

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/heartmarshall/ipa-mnemonic/internal/domain"
	"github.com/heartmarshall/ipa-mnemonic/internal/ipa"
	"github.com/heartmarshall/ipa-mnemonic/internal/service/keyword"
	"github.com/heartmarshall/ipa-mnemonic/internal/service/picture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockKeywordMatcher struct {
	MatchFunc func(ctx context.Context, raw string, opts keyword.Options) (keyword.Match, error)
}

func (m *mockKeywordMatcher) Match(ctx context.Context, raw string, opts keyword.Options) (keyword.Match, error) {
	return m.MatchFunc(ctx, raw, opts)
}

func (m *mockKeywordMatcher) DefaultOptions() keyword.Options {
	return keyword.Options{PickOne: true}
}

type mockPictureMatcher struct {
	MatchFunc func(ctx context.Context, raw string) (picture.Result, error)
}

func (m *mockPictureMatcher) Match(ctx context.Context, raw string) (picture.Result, error) {
	return m.MatchFunc(ctx, raw)
}

type mockSource struct {
	ListKeywordsFunc func(ctx context.Context) ([]domain.Keyword, error)
}

func (m *mockSource) ListKeywords(ctx context.Context) ([]domain.Keyword, error) {
	return m.ListKeywordsFunc(ctx)
}

type mockCatalog struct {
	FindFunc func(ctx context.Context, pattern string, category domain.UsageCategory) ([]domain.PictureWord, error)
}

func (m *mockCatalog) Find(ctx context.Context, pattern string, category domain.UsageCategory) ([]domain.PictureWord, error) {
	return m.FindFunc(ctx, pattern, category)
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestBuild_DictionaryUnavailable(t *testing.T) {
	t.Parallel()

	deps := Deps{
		Keywords: &mockSource{ListKeywordsFunc: func(context.Context) ([]domain.Keyword, error) {
			return nil, errors.New("no such table: keywords")
		}},
		Catalog: &mockCatalog{},
	}

	_, err := Build(context.Background(), slog.Default(), keyword.DefaultConfig(), picture.DefaultConfig(), deps)
	assert.ErrorIs(t, err, domain.ErrDictionaryUnavailable)
}

func TestBuild_EndToEnd(t *testing.T) {
	t.Parallel()

	deps := Deps{
		Keywords: &mockSource{ListKeywordsFunc: func(context.Context) ([]domain.Keyword, error) {
			return []domain.Keyword{{ID: 1, SourceText: "кэт", RawIPA: "kæt"}}, nil
		}},
		Catalog: &mockCatalog{FindFunc: func(_ context.Context, pattern string, category domain.UsageCategory) ([]domain.PictureWord, error) {
			if category == domain.UsagePerson && pattern == "kæt" {
				return []domain.PictureWord{{SourceText: "Kat", CanonicalKey: "kæt", UsageCategory: domain.UsagePerson}}, nil
			}
			return nil, nil
		}},
	}

	svc, err := Build(context.Background(), slog.Default(), keyword.DefaultConfig(), picture.DefaultConfig(), deps)
	require.NoError(t, err)

	res, err := svc.MatchWord(context.Background(), "ˈkæt")
	require.NoError(t, err)
	require.NotNil(t, res.Keyword.Selected)
	assert.Equal(t, int64(1), res.Keyword.Selected.Keyword.ID)
	require.NotNil(t, res.Pictures.Person)
	assert.Equal(t, "Kat", res.Pictures.Person.Word.SourceText)
	assert.True(t, res.Matched())
}

func TestService_Normalization(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), &mockKeywordMatcher{}, &mockPictureMatcher{})

	assert.Equal(t, []string{"ʧ", "e"}, svc.ToSegments("tʃ eə oʊ", 2))
	assert.Equal(t, "p", svc.ToStorageKey("pp", 10))
	assert.Len(t, svc.Tokenize("ˈkæt", ipa.DefaultTokenizeOptions), 4)
}

func TestMatchKeyword_NegativeLimit(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), &mockKeywordMatcher{}, &mockPictureMatcher{})

	_, err := svc.MatchKeyword(context.Background(), "kæt", keyword.Options{Limit: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMatchWord_PictureErrorIsReturned(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("timeout")
	svc := NewService(slog.Default(),
		&mockKeywordMatcher{MatchFunc: func(context.Context, string, keyword.Options) (keyword.Match, error) {
			return keyword.Match{}, nil
		}},
		&mockPictureMatcher{MatchFunc: func(context.Context, string) (picture.Result, error) {
			return picture.Result{}, dbErr
		}},
	)

	_, err := svc.MatchWord(context.Background(), "kæt")
	assert.ErrorIs(t, err, dbErr)
}

func TestMatchWord_NoMatchIsNotAnError(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(),
		&mockKeywordMatcher{MatchFunc: func(context.Context, string, keyword.Options) (keyword.Match, error) {
			return keyword.Match{}, nil
		}},
		&mockPictureMatcher{MatchFunc: func(context.Context, string) (picture.Result, error) {
			return picture.Result{}, nil
		}},
	)

	res, err := svc.MatchWord(context.Background(), "ʔ")
	require.NoError(t, err)
	assert.False(t, res.Matched())
}
