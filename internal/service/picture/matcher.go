package picture

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/ipa-mnemonic/internal/domain"
	"github.com/heartmarshall/ipa-mnemonic/internal/ipa"
)

// Catalog is the picture-word store. Find returns records of the given
// category whose canonical key matches pattern as a prefix, with '_'
// matching any single character. An empty slice means no match.
type Catalog interface {
	Find(ctx context.Context, pattern string, category domain.UsageCategory) ([]domain.PictureWord, error)
}

// Config holds the picture matcher settings.
type Config struct {
	// MaxSegments caps the storage key derived from the input.
	MaxSegments int
	// PlaceholderSource and PlaceholderTarget describe the synthesized job
	// used when no real job picture matches.
	PlaceholderSource string
	PlaceholderTarget string
}

// DefaultConfig returns the production settings.
func DefaultConfig() Config {
	return Config{
		MaxSegments:       ipa.StorageSegments,
		PlaceholderSource: "standing",
		PlaceholderTarget: "стоящий",
	}
}

// Strategy names the dispatch branch a key went through.
type Strategy string

const (
	StrategyShort Strategy = "short"
	StrategyThree Strategy = "three"
	StrategySpace Strategy = "space"
	StrategyFour  Strategy = "four"
	StrategyFive  Strategy = "five"
	StrategyLong  Strategy = "long"
)

// Match is one filled slot of a Result.
type Match struct {
	Word        domain.PictureWord
	Pattern     string
	Placeholder bool
}

// Result is the composite picture assembled for one input.
type Result struct {
	Key          string
	Strategy     Strategy
	Person       *Match
	Job          *Match
	Adj          *Match
	PersianImage *Match
}

// Empty reports whether no slot was filled.
func (r Result) Empty() bool {
	return r.Person == nil && r.Job == nil && r.Adj == nil && r.PersianImage == nil
}

// Matcher assembles person/job/adj pictures for an IPA transcription by
// running a cascade of increasingly loose prefix patterns against the
// catalog.
type Matcher struct {
	log     *slog.Logger
	cfg     Config
	catalog Catalog
}

// NewMatcher creates a picture-word Matcher.
func NewMatcher(logger *slog.Logger, cfg Config, catalog Catalog) *Matcher {
	return &Matcher{
		log:     logger.With("service", "picture"),
		cfg:     cfg,
		catalog: catalog,
	}
}

// Match derives the storage key of raw and fills the result slots. Only
// catalog failures are returned as errors; an unmatched input yields an
// empty Result.
func (m *Matcher) Match(ctx context.Context, raw string) (Result, error) {
	key := strings.TrimSpace(ipa.StorageKey(raw, m.cfg.MaxSegments))
	if key == "" {
		return Result{}, nil
	}

	res := Result{Key: key, Strategy: strategyFor(key)}

	var err error
	if res.Strategy == StrategySpace {
		err = m.matchSplit(ctx, key, &res)
	} else {
		err = m.matchWhole(ctx, key, &res)
	}
	if err != nil {
		return Result{}, err
	}

	if err := m.fillGap(ctx, key, &res); err != nil {
		return Result{}, err
	}

	image, err := m.findBest(ctx, key, key, domain.UsageImage)
	if err != nil {
		return Result{}, err
	}
	res.PersianImage = image

	m.log.DebugContext(ctx, "picture match",
		slog.String("key", key),
		slog.String("strategy", string(res.Strategy)),
		slog.Bool("person", res.Person != nil),
		slog.Bool("adj", res.Adj != nil),
		slog.Bool("placeholder_job", res.Job != nil && res.Job.Placeholder),
	)
	return res, nil
}

func strategyFor(key string) Strategy {
	n := utf8.RuneCountInString(key)
	switch {
	case n < 3:
		return StrategyShort
	case n == 3:
		return StrategyThree
	case strings.Contains(key, " "):
		return StrategySpace
	case n == 4:
		return StrategyFour
	case n == 5:
		return StrategyFive
	default:
		return StrategyLong
	}
}

// matchWhole looks for one person covering the whole key. Failing that,
// the key is split in half into a person and a job. A single character
// has no halves and keeps the placeholder job.
func (m *Matcher) matchWhole(ctx context.Context, key string, res *Result) error {
	person, err := m.cascadeWithRetry(ctx, key, domain.UsagePerson)
	if err != nil {
		return err
	}
	if person != nil {
		res.Person = person
		res.Job = m.placeholder()
		return nil
	}

	if utf8.RuneCountInString(key) < 2 {
		res.Job = m.placeholder()
		return nil
	}
	first, second := splitHalf(key)
	return m.matchPair(ctx, first, second, res)
}

// matchSplit matches the text before the first space as the person and
// the rest as the job.
func (m *Matcher) matchSplit(ctx context.Context, key string, res *Result) error {
	first, second, _ := strings.Cut(key, " ")
	return m.matchPair(ctx, strings.TrimSpace(first), strings.TrimSpace(second), res)
}

func (m *Matcher) matchPair(ctx context.Context, personKey, jobKey string, res *Result) error {
	person, err := m.cascadeWithRetry(ctx, personKey, domain.UsagePerson)
	if err != nil {
		return err
	}
	job, err := m.cascadeWithRetry(ctx, jobKey, domain.UsageJob)
	if err != nil {
		return err
	}
	if job == nil {
		job = m.placeholder()
	}
	res.Person, res.Job = person, job
	return nil
}

// fillGap attaches an adjective for the first key character the person's
// canonical key does not account for. The job is not subtracted.
func (m *Matcher) fillGap(ctx context.Context, key string, res *Result) error {
	if res.Person == nil {
		return nil
	}

	missing := missingChars(key, res.Person.Word.CanonicalKey)
	if len(missing) == 0 {
		return nil
	}

	adj, err := m.cascade(ctx, string(missing[0]), domain.UsageAdj)
	if err != nil {
		return err
	}
	res.Adj = adj
	return nil
}

func (m *Matcher) placeholder() *Match {
	return &Match{
		Word: domain.PictureWord{
			SourceText:    m.cfg.PlaceholderSource,
			TargetText:    m.cfg.PlaceholderTarget,
			UsageCategory: domain.UsageJob,
		},
		Placeholder: true,
	}
}

// cascadeWithRetry runs the cascade for key and, when nothing matched and
// key opens with "s" plus a consonant, once more for "e"+key.
func (m *Matcher) cascadeWithRetry(ctx context.Context, key string, category domain.UsageCategory) (*Match, error) {
	match, err := m.cascade(ctx, key, category)
	if err != nil || match != nil {
		return match, err
	}
	if !startsWithSCluster(key) {
		return nil, nil
	}
	return m.cascade(ctx, "e"+key, category)
}

// cascade queries the catalog with each pattern of key in order and stops
// at the first pattern that yields anything.
func (m *Matcher) cascade(ctx context.Context, key string, category domain.UsageCategory) (*Match, error) {
	if key == "" {
		return nil, nil
	}
	for _, p := range Patterns(key) {
		match, err := m.findBest(ctx, p, key, category)
		if err != nil {
			return nil, err
		}
		if match != nil {
			return match, nil
		}
	}
	return nil, nil
}

func (m *Matcher) findBest(ctx context.Context, pattern, target string, category domain.UsageCategory) (*Match, error) {
	words, err := m.catalog.Find(ctx, pattern, category)
	if err != nil {
		return nil, fmt.Errorf("find %s %q: %w", category, pattern, err)
	}
	if len(words) == 0 {
		return nil, nil
	}
	return &Match{Word: best(words, target), Pattern: pattern}, nil
}

func startsWithSCluster(key string) bool {
	k := []rune(key)
	return len(k) >= 2 && k[0] == 's' && ipa.IsCanonicalConsonant(k[1])
}

// splitHalf splits key into a first half of ceil(n/2) characters and the
// rest, trimming spaces at the cut.
func splitHalf(key string) (string, string) {
	k := []rune(key)
	mid := (len(k) + 1) / 2
	return strings.TrimSpace(string(k[:mid])), strings.TrimSpace(string(k[mid:]))
}

// best picks the record whose key shares the most characters with target
// over the first five non-space characters. Ties go to the lexically
// smallest source text.
func best(words []domain.PictureWord, target string) domain.PictureWord {
	t := head(target, 5)
	return slices.MinFunc(words, func(a, b domain.PictureWord) int {
		return cmp.Or(
			cmp.Compare(overlap(head(b.CanonicalKey, 5), t), overlap(head(a.CanonicalKey, 5), t)),
			strings.Compare(a.SourceText, b.SourceText),
			strings.Compare(a.ID.String(), b.ID.String()),
		)
	})
}

// head returns the first n non-space characters of s.
func head(s string, n int) []rune {
	out := make([]rune, 0, n)
	for _, r := range s {
		if r == ' ' {
			continue
		}
		if len(out) == n {
			break
		}
		out = append(out, r)
	}
	return out
}

// overlap returns the size of the multiset intersection of a and b.
func overlap(a, b []rune) int {
	counts := make(map[rune]int, len(a))
	for _, r := range a {
		counts[r]++
	}
	n := 0
	for _, r := range b {
		if counts[r] > 0 {
			counts[r]--
			n++
		}
	}
	return n
}

// missingChars subtracts the characters of used from key (as multisets)
// and returns what is left: consonants first, each group in key order.
func missingChars(key, used string) []rune {
	counts := make(map[rune]int)
	for _, r := range used {
		counts[r]++
	}

	var cons, vows []rune
	for _, r := range key {
		if r == ' ' {
			continue
		}
		if counts[r] > 0 {
			counts[r]--
			continue
		}
		if ipa.IsCanonicalConsonant(r) {
			cons = append(cons, r)
		} else {
			vows = append(vows, r)
		}
	}
	return append(cons, vows...)
}
