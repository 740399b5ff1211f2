package ipa

import (
	"slices"
	"strings"
)

const (
	// KeywordSegments is the segment cap used for keyword matching keys.
	KeywordSegments = 8
	// StorageSegments is the segment cap used for persisted picture-word keys.
	StorageSegments = 10

	// maxRounds bounds the fixed-point iteration. Each round that changes
	// the output strictly shortens it, so two or three rounds suffice.
	maxRounds = 8
)

// normalizeOptions drops everything but segments; the storage key adds
// boundaries back.
var (
	segmentOptions = TokenizeOptions{AssumeAffricates: true}
	storageOptions = TokenizeOptions{AssumeAffricates: true, KeepBoundaries: true}
)

// Segments tokenizes raw and returns its canonical segment list, capped at
// maxCount entries (maxCount <= 0 means no cap).
//
// Each segment's base symbols are folded through the multi-symbol table
// and then symbol by symbol onto the canonical alphabet. Segments whose
// folded text starts with the glottal stop are dropped.
//
// The result is a fixed point: Segments(strings.Join(s, ""), maxCount)
// returns s again.
func Segments(raw string, maxCount int) []string {
	segs := segmentsOnce(raw, maxCount)
	for range maxRounds {
		next := segmentsOnce(strings.Join(segs, ""), maxCount)
		if slices.Equal(next, segs) {
			break
		}
		segs = next
	}
	return segs
}

// Key returns the joined segment list of raw capped at maxCount segments.
func Key(raw string, maxCount int) string {
	return strings.Join(Segments(raw, maxCount), "")
}

// StorageKey is Segments with space boundaries preserved as literal spaces
// and runs of repeated characters collapsed. It is the form stored and
// indexed by external catalogs; StorageKey(StorageKey(s, n), n) equals
// StorageKey(s, n).
func StorageKey(raw string, maxCount int) string {
	key := storageKeyOnce(raw, maxCount)
	for range maxRounds {
		next := storageKeyOnce(key, maxCount)
		if next == key {
			break
		}
		key = next
	}
	return key
}

func segmentsOnce(raw string, maxCount int) []string {
	tokens := Tokenize(raw, segmentOptions)

	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		switch v := tok.(type) {
		case *Segment:
			if folded, ok := FoldSegment(v); ok {
				out = append(out, folded)
			}
		case Boundary, Stress, Unknown:
		}
	}
	return truncate(out, maxCount)
}

func storageKeyOnce(raw string, maxCount int) string {
	tokens := Tokenize(raw, storageOptions)

	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		switch v := tok.(type) {
		case *Segment:
			if folded, ok := FoldSegment(v); ok {
				parts = append(parts, folded)
			}
		case Boundary:
			if v.Kind == BoundarySpace {
				parts = append(parts, " ")
			}
		case Stress, Unknown:
		}
	}
	return collapseRuns(strings.Join(truncate(parts, maxCount), ""))
}

// FoldSegment folds a segment's base symbols onto the canonical alphabet.
// It reports false when the segment must be dropped: nothing survives the
// fold, or the folded text starts with the glottal stop.
func FoldSegment(s *Segment) (string, bool) {
	base := s.Base()
	if folded, ok := multiFold[base]; ok {
		base = folded
	}

	var b strings.Builder
	b.Grow(len(base))
	for _, r := range base {
		if c, ok := symbolFold[r]; ok {
			b.WriteRune(c)
		}
	}

	folded := b.String()
	if folded == "" || strings.HasPrefix(folded, string(GlottalStop)) {
		return "", false
	}

	folded = strings.ReplaceAll(folded, string(GlottalStop), "")
	if folded == "" {
		return "", false
	}
	return folded, true
}

// collapseRuns replaces every run of identical consecutive characters with
// a single character.
func collapseRuns(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune = -1
	for _, r := range s {
		if r == prev {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func truncate(s []string, maxCount int) []string {
	if maxCount > 0 && len(s) > maxCount {
		return s[:maxCount]
	}
	return s
}
