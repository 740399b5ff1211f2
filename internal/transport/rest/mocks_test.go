package rest

import (
	"context"

	"github.com/heartmarshall/ipa-mnemonic/internal/ipa"
	"github.com/heartmarshall/ipa-mnemonic/internal/service/keyword"
	"github.com/heartmarshall/ipa-mnemonic/internal/service/picture"
)

type matchServiceMock struct {
	MatchKeywordFunc      func(ctx context.Context, raw string, opts keyword.Options) (keyword.Match, error)
	MatchPictureWordsFunc func(ctx context.Context, raw string) (picture.Result, error)
}

func (m *matchServiceMock) Tokenize(raw string, opts ipa.TokenizeOptions) []ipa.Token {
	return ipa.Tokenize(raw, opts)
}

func (m *matchServiceMock) ToSegments(raw string, maxCount int) []string {
	return ipa.Segments(raw, maxCount)
}

func (m *matchServiceMock) ToStorageKey(raw string, maxCount int) string {
	return ipa.StorageKey(raw, maxCount)
}

func (m *matchServiceMock) DefaultKeywordOptions() keyword.Options {
	return keyword.Options{PickOne: true, PickTopK: 10, PrefixLen: 5}
}

func (m *matchServiceMock) MatchKeyword(ctx context.Context, raw string, opts keyword.Options) (keyword.Match, error) {
	return m.MatchKeywordFunc(ctx, raw, opts)
}

func (m *matchServiceMock) MatchPictureWords(ctx context.Context, raw string) (picture.Result, error) {
	return m.MatchPictureWordsFunc(ctx, raw)
}
