// Package batch matches many words concurrently and writes one JSON
// record per input line, in input order.
package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/ipa-mnemonic/internal/service/mnemonic"
	"github.com/heartmarshall/ipa-mnemonic/pkg/ctxutil"
)

type wordMatcher interface {
	MatchWord(ctx context.Context, raw string) (mnemonic.WordResult, error)
}

// Stats summarizes a run.
type Stats struct {
	Total     int
	Matched   int
	Unmatched int
	Failed    int
}

// Runner fans words out to the matcher with bounded concurrency.
type Runner struct {
	matcher     wordMatcher
	log         *slog.Logger
	concurrency int
	wordTimeout time.Duration
}

// NewRunner creates a Runner. A zero wordTimeout disables the per-word
// deadline.
func NewRunner(log *slog.Logger, matcher wordMatcher, concurrency int, wordTimeout time.Duration) *Runner {
	return &Runner{
		matcher:     matcher,
		log:         log.With("component", "batch"),
		concurrency: max(1, concurrency),
		wordTimeout: wordTimeout,
	}
}

type input struct {
	line int
	word string
	ipa  string
}

// Run reads "word<TAB>ipa" lines from in (a line without a tab is taken
// as IPA only) and writes JSON lines to out. A word that fails is written
// with its error and counted in Stats.Failed; only cancellation of ctx or
// an I/O failure aborts the run.
func (r *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) (Stats, error) {
	inputs, err := readInputs(in)
	if err != nil {
		return Stats{}, err
	}

	runID := uuid.New()
	ctx = ctxutil.WithRunID(ctx, runID)
	r.log.InfoContext(ctx, "batch started", slog.Int("words", len(inputs)))
	started := time.Now()

	records := make([]Record, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, item := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records[i] = r.matchOne(gctx, item)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, fmt.Errorf("batch %s: %w", runID, err)
	}
	if err := ctx.Err(); err != nil {
		return Stats{}, fmt.Errorf("batch %s: %w", runID, err)
	}

	stats := Stats{Total: len(records)}
	w := bufio.NewWriter(out)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, rec := range records {
		switch {
		case rec.Error != "":
			stats.Failed++
		case rec.matched:
			stats.Matched++
		default:
			stats.Unmatched++
		}
		if err := enc.Encode(rec); err != nil {
			return stats, fmt.Errorf("write record %d: %w", rec.Line, err)
		}
	}
	if err := w.Flush(); err != nil {
		return stats, fmt.Errorf("flush output: %w", err)
	}

	r.log.InfoContext(ctx, "batch finished",
		slog.Int("total", stats.Total),
		slog.Int("matched", stats.Matched),
		slog.Int("unmatched", stats.Unmatched),
		slog.Int("failed", stats.Failed),
		slog.Duration("elapsed", time.Since(started)),
	)
	return stats, nil
}

func (r *Runner) matchOne(ctx context.Context, in input) Record {
	ctx = ctxutil.WithRequestID(ctx, "line-"+strconv.Itoa(in.line))
	if r.wordTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.wordTimeout)
		defer cancel()
	}

	res, err := r.matcher.MatchWord(ctx, in.ipa)
	if err != nil {
		r.log.WarnContext(ctx, "word failed",
			slog.String("word", in.word),
			slog.String("error", err.Error()),
		)
		return Record{Line: in.line, Word: in.word, IPA: in.ipa, Error: err.Error()}
	}
	return toRecord(in, res)
}

func readInputs(in io.Reader) ([]input, error) {
	var inputs []input
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		word, ipaText, ok := strings.Cut(text, "\t")
		if !ok {
			word, ipaText = "", text
		}
		inputs = append(inputs, input{
			line: line,
			word: strings.TrimSpace(word),
			ipa:  strings.TrimSpace(ipaText),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return inputs, nil
}
