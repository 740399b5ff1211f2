package mnemonic

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/ipa-mnemonic/internal/domain"
	"github.com/heartmarshall/ipa-mnemonic/internal/ipa"
	"github.com/heartmarshall/ipa-mnemonic/internal/service/keyword"
	"github.com/heartmarshall/ipa-mnemonic/internal/service/picture"
)

type keywordMatcher interface {
	Match(ctx context.Context, raw string, opts keyword.Options) (keyword.Match, error)
	DefaultOptions() keyword.Options
}

type pictureMatcher interface {
	Match(ctx context.Context, raw string) (picture.Result, error)
}

// Service is the engine surface: tokenization, normalization and both
// matchers behind one type.
type Service struct {
	log      *slog.Logger
	keywords keywordMatcher
	pictures pictureMatcher
}

// NewService creates a Service from ready matchers.
func NewService(logger *slog.Logger, keywords keywordMatcher, pictures pictureMatcher) *Service {
	return &Service{
		log:      logger.With("service", "mnemonic"),
		keywords: keywords,
		pictures: pictures,
	}
}

// Deps are the external stores an engine is built from.
type Deps struct {
	Keywords keyword.Source
	Counters keyword.SelectionCounter
	Catalog  picture.Catalog
}

// Build loads the keyword dictionary eagerly and wires both matchers.
// A dictionary that cannot be loaded fails with
// domain.ErrDictionaryUnavailable.
func Build(ctx context.Context, logger *slog.Logger, kwCfg keyword.Config, picCfg picture.Config, deps Deps) (*Service, error) {
	index, err := keyword.NewIndex(ctx, deps.Keywords)
	if err != nil {
		return nil, fmt.Errorf("build keyword index: %w", err)
	}
	logger.InfoContext(ctx, "keyword index loaded", slog.Int("entries", index.Len()))

	counters := deps.Counters
	if counters == nil {
		counters = keyword.NewMemoryCounters()
	}

	return NewService(logger,
		keyword.NewMatcher(logger, kwCfg, index, counters),
		picture.NewMatcher(logger, picCfg, deps.Catalog),
	), nil
}

// Tokenize splits raw IPA into tokens.
func (s *Service) Tokenize(raw string, opts ipa.TokenizeOptions) []ipa.Token {
	return ipa.Tokenize(raw, opts)
}

// ToSegments returns the canonical segment list of raw.
func (s *Service) ToSegments(raw string, maxCount int) []string {
	return ipa.Segments(raw, maxCount)
}

// ToStorageKey returns the catalog storage key of raw.
func (s *Service) ToStorageKey(raw string, maxCount int) string {
	return ipa.StorageKey(raw, maxCount)
}

// DefaultKeywordOptions returns the keyword options used by MatchWord.
func (s *Service) DefaultKeywordOptions() keyword.Options {
	return s.keywords.DefaultOptions()
}

// MatchKeyword finds dictionary keywords that sound like raw.
func (s *Service) MatchKeyword(ctx context.Context, raw string, opts keyword.Options) (keyword.Match, error) {
	if opts.Limit < 0 {
		return keyword.Match{}, domain.NewValidationError("limit", "must not be negative")
	}
	m, err := s.keywords.Match(ctx, raw, opts)
	if err != nil {
		return keyword.Match{}, fmt.Errorf("match keyword: %w", err)
	}
	return m, nil
}

// MatchPictureWords assembles picture words for raw.
func (s *Service) MatchPictureWords(ctx context.Context, raw string) (picture.Result, error) {
	r, err := s.pictures.Match(ctx, raw)
	if err != nil {
		return picture.Result{}, fmt.Errorf("match picture words: %w", err)
	}
	return r, nil
}

// WordResult is the combined outcome for one word.
type WordResult struct {
	Keyword  keyword.Match
	Pictures picture.Result
}

// Matched reports whether either matcher produced anything.
func (r WordResult) Matched() bool {
	return !r.Keyword.Empty() || r.Pictures.Person != nil
}

// MatchWord runs both matchers on one transcription. Keyword matching
// uses the default options.
func (s *Service) MatchWord(ctx context.Context, raw string) (WordResult, error) {
	kw, err := s.MatchKeyword(ctx, raw, s.keywords.DefaultOptions())
	if err != nil {
		return WordResult{}, err
	}
	pics, err := s.MatchPictureWords(ctx, raw)
	if err != nil {
		return WordResult{}, err
	}
	return WordResult{Keyword: kw, Pictures: pics}, nil
}
