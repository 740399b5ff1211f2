package batch

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/ipa-mnemonic/internal/domain"
	"github.com/heartmarshall/ipa-mnemonic/internal/service/keyword"
	"github.com/heartmarshall/ipa-mnemonic/internal/service/mnemonic"
	"github.com/heartmarshall/ipa-mnemonic/internal/service/picture"
	"github.com/heartmarshall/ipa-mnemonic/pkg/ctxutil"
)

type wordMatcherMock struct {
	MatchWordFunc func(ctx context.Context, raw string) (mnemonic.WordResult, error)
}

func (m *wordMatcherMock) MatchWord(ctx context.Context, raw string) (mnemonic.WordResult, error) {
	return m.MatchWordFunc(ctx, raw)
}

func matchedResult(raw string) mnemonic.WordResult {
	return mnemonic.WordResult{
		Keyword: keyword.Match{Selected: &keyword.Candidate{
			Keyword:  domain.Keyword{ID: 1, SourceText: "кот", RawIPA: raw},
			Key:      raw,
			GatePass: true,
		}},
		Pictures: picture.Result{
			Key:      raw,
			Strategy: picture.StrategyThree,
			Person:   &picture.Match{Word: domain.PictureWord{SourceText: "Kat", CanonicalKey: raw}, Pattern: raw},
			Job:      &picture.Match{Word: domain.PictureWord{SourceText: "standing"}, Placeholder: true},
		},
	}
}

func decode(t *testing.T, out string) []map[string]any {
	t.Helper()
	var recs []map[string]any
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		recs = append(recs, m)
	}
	return recs
}

func TestRunner_PreservesInputOrder(t *testing.T) {
	t.Parallel()

	m := &wordMatcherMock{MatchWordFunc: func(_ context.Context, raw string) (mnemonic.WordResult, error) {
		// Earlier lines finish last.
		if raw == "kæt" {
			time.Sleep(20 * time.Millisecond)
		}
		return matchedResult(raw), nil
	}}
	r := NewRunner(slog.Default(), m, 4, time.Second)

	var out bytes.Buffer
	stats, err := r.Run(context.Background(), strings.NewReader("cat\tkæt\n\n# comment\ndog\tdɒɡ\nsɪt\n"), &out)

	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 3, Matched: 3}, stats)

	recs := decode(t, out.String())
	require.Len(t, recs, 3)
	assert.Equal(t, float64(1), recs[0]["line"])
	assert.Equal(t, "cat", recs[0]["word"])
	assert.Equal(t, float64(4), recs[1]["line"])
	assert.Equal(t, "dɒɡ", recs[1]["ipa"])
	assert.Equal(t, float64(5), recs[2]["line"])
	assert.Equal(t, "", recs[2]["word"])
	assert.Equal(t, "sɪt", recs[2]["ipa"])

	person := recs[0]["person"].(map[string]any)
	assert.Equal(t, "Kat", person["source"])
	job := recs[0]["job"].(map[string]any)
	assert.Equal(t, true, job["placeholder"])
	assert.Equal(t, "three", recs[0]["strategy"])
	assert.NotContains(t, recs[0], "adj")
}

func TestRunner_CountsFailuresAndUnmatched(t *testing.T) {
	t.Parallel()

	m := &wordMatcherMock{MatchWordFunc: func(_ context.Context, raw string) (mnemonic.WordResult, error) {
		switch raw {
		case "bad":
			return mnemonic.WordResult{}, errors.New("catalog down")
		case "none":
			return mnemonic.WordResult{}, nil
		}
		return matchedResult(raw), nil
	}}
	r := NewRunner(slog.Default(), m, 2, 0)

	var out bytes.Buffer
	stats, err := r.Run(context.Background(), strings.NewReader("a\tbad\nb\tnone\nc\tkæt\n"), &out)

	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 3, Matched: 1, Unmatched: 1, Failed: 1}, stats)

	recs := decode(t, out.String())
	require.Len(t, recs, 3)
	assert.Equal(t, "catalog down", recs[0]["error"])
	assert.NotContains(t, recs[1], "error")
}

func TestRunner_BoundedConcurrency(t *testing.T) {
	t.Parallel()

	var inFlight, peak atomic.Int32
	m := &wordMatcherMock{MatchWordFunc: func(_ context.Context, raw string) (mnemonic.WordResult, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return matchedResult(raw), nil
	}}
	r := NewRunner(slog.Default(), m, 3, 0)

	input := strings.Repeat("w\tkæt\n", 30)
	stats, err := r.Run(context.Background(), strings.NewReader(input), &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, 30, stats.Total)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestRunner_WordContextCarriesIDsAndDeadline(t *testing.T) {
	t.Parallel()

	m := &wordMatcherMock{MatchWordFunc: func(ctx context.Context, raw string) (mnemonic.WordResult, error) {
		_, hasRun := ctxutil.RunIDFromCtx(ctx)
		_, hasDeadline := ctx.Deadline()
		if !hasRun || ctxutil.RequestIDFromCtx(ctx) != "line-1" || !hasDeadline {
			return mnemonic.WordResult{}, errors.New("missing context values")
		}
		return matchedResult(raw), nil
	}}
	r := NewRunner(slog.Default(), m, 1, time.Minute)

	stats, err := r.Run(context.Background(), strings.NewReader("x\tkæt\n"), &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Matched)
}

func TestRunner_WordTimeout(t *testing.T) {
	t.Parallel()

	m := &wordMatcherMock{MatchWordFunc: func(ctx context.Context, _ string) (mnemonic.WordResult, error) {
		<-ctx.Done()
		return mnemonic.WordResult{}, ctx.Err()
	}}
	r := NewRunner(slog.Default(), m, 1, 10*time.Millisecond)

	var out bytes.Buffer
	stats, err := r.Run(context.Background(), strings.NewReader("x\tkæt\n"), &out)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)
	assert.Contains(t, out.String(), "deadline exceeded")
}

func TestRunner_CanceledContext(t *testing.T) {
	t.Parallel()

	m := &wordMatcherMock{MatchWordFunc: func(_ context.Context, raw string) (mnemonic.WordResult, error) {
		return matchedResult(raw), nil
	}}
	r := NewRunner(slog.Default(), m, 1, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := r.Run(ctx, strings.NewReader("x\tkæt\n"), &out)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, out.Len())
}

func TestReadInputs(t *testing.T) {
	t.Parallel()

	got, err := readInputs(strings.NewReader("  cat \t kæt \n\n#skip\nonlyipa\n"))

	require.NoError(t, err)
	assert.Equal(t, []input{
		{line: 1, word: "cat", ipa: "kæt"},
		{line: 4, word: "", ipa: "onlyipa"},
	}, got)
}
