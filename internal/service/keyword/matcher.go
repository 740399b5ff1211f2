package keyword

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/heartmarshall/ipa-mnemonic/internal/domain"
	"github.com/heartmarshall/ipa-mnemonic/internal/ipa"
)

// Candidate is a scored dictionary keyword.
type Candidate struct {
	Keyword  domain.Keyword
	Key      string
	Score    float64
	Features Features
	GatePass bool
}

// Match is the outcome of one Match call. With PickOne, Selected holds the
// sampled candidate; otherwise Ranked holds the ranked list. Both are
// empty when nothing was retained.
type Match struct {
	Selected *Candidate
	Ranked   []Candidate
}

// Empty reports whether the call produced no candidate at all.
func (m Match) Empty() bool {
	return m.Selected == nil && len(m.Ranked) == 0
}

// Matcher finds dictionary keywords that sound like the start of an IPA
// transcription.
type Matcher struct {
	log      *slog.Logger
	cfg      Config
	index    *Index
	counters SelectionCounter
}

// NewMatcher creates a Matcher over a prebuilt index.
func NewMatcher(logger *slog.Logger, cfg Config, index *Index, counters SelectionCounter) *Matcher {
	return &Matcher{
		log:      logger.With("service", "keyword"),
		cfg:      cfg,
		index:    index,
		counters: counters,
	}
}

// DefaultOptions returns options that pick one candidate using the
// configured prefix length and top-k.
func (m *Matcher) DefaultOptions() Options {
	return Options{
		PrefixLen: m.cfg.PrefixLen,
		PickOne:   true,
		PickTopK:  m.cfg.PickTopK,
	}
}

// Match normalizes raw and ranks dictionary keywords against it. An input
// that normalizes to nothing, or that retains no candidate, yields an
// empty Match and a nil error. Errors come only from ctx.
func (m *Matcher) Match(ctx context.Context, raw string, opts Options) (Match, error) {
	if err := ctx.Err(); err != nil {
		return Match{}, err
	}
	opts = opts.withDefaults(m.cfg)

	key := ipa.Key(raw, ipa.KeywordSegments)
	if key == "" {
		return Match{}, nil
	}

	baskets := basketKeys(key)
	entries := m.index.Lookup(baskets)
	ranked := m.rank(key, entries, opts)

	m.log.DebugContext(ctx, "keyword candidates",
		slog.String("key", key),
		slog.Int("baskets", len(baskets)),
		slog.Int("retained", len(entries)),
		slog.Int("ranked", len(ranked)),
	)

	if len(ranked) == 0 {
		return Match{}, nil
	}

	if !opts.PickOne {
		if opts.Limit > 0 && len(ranked) > opts.Limit {
			ranked = ranked[:opts.Limit]
		}
		return Match{Ranked: ranked}, nil
	}

	selected, err := m.pick(ctx, key, ranked, opts)
	if err != nil {
		return Match{}, err
	}
	return Match{Selected: &selected}, nil
}

// rank scores every retained entry and sorts ascending by score, then key,
// then id.
func (m *Matcher) rank(key string, entries []Entry, opts Options) []Candidate {
	target := []rune(key)
	targetPrefix := prefix(target, opts.PrefixLen)
	variants := gateVariants(target)

	out := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		cand := []rune(e.Key)
		candPrefix := prefix(cand, opts.PrefixLen)

		pass := passesGate(variants, cand, opts.Gate1Len, opts.Gate2Len)
		if !pass && !opts.IncludeRejected {
			continue
		}

		f := extractFeatures(targetPrefix, candPrefix)
		s := score(m.cfg, targetPrefix, candPrefix, f)
		if !pass {
			s += m.cfg.RejectPenalty
		}

		out = append(out, Candidate{
			Keyword:  e.Keyword,
			Key:      e.Key,
			Score:    s,
			Features: f,
			GatePass: pass,
		})
	}

	slices.SortStableFunc(out, func(a, b Candidate) int {
		return cmp.Or(
			cmp.Compare(a.Score, b.Score),
			cmp.Compare(a.Key, b.Key),
			cmp.Compare(a.Keyword.ID, b.Keyword.ID),
		)
	})
	return out
}

// pick samples one candidate from the top of ranked and records the
// selection. Counter failures degrade to unbiased sampling.
func (m *Matcher) pick(ctx context.Context, key string, ranked []Candidate, opts Options) (Candidate, error) {
	top := ranked[:min(opts.PickTopK, len(ranked))]
	if len(top) == 1 {
		m.record(ctx, top[0].Key)
		return top[0], nil
	}

	keys := make([]string, len(top))
	for i, c := range top {
		keys[i] = c.Key
	}
	counts, err := m.counters.Counts(ctx, keys)
	if err != nil {
		if ctx.Err() != nil {
			return Candidate{}, fmt.Errorf("selection counts: %w", err)
		}
		m.log.WarnContext(ctx, "selection counts unavailable, sampling without diversity",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		counts = nil
	}

	temperature := opts.Temperature
	if temperature <= 0 {
		temperature = m.cfg.DefaultTemperature
		if top[0].Score > m.cfg.RejectedScore {
			temperature = m.cfg.RejectedTemperature
		}
	}

	weights := samplingWeights(m.cfg, top, counts, temperature)
	chosen := top[pickWeighted(weights, newXorshift32(key))]

	m.record(ctx, chosen.Key)
	return chosen, nil
}

func (m *Matcher) record(ctx context.Context, key string) {
	if err := m.counters.Increment(ctx, key); err != nil {
		m.log.WarnContext(ctx, "selection counter increment failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}
