package ipa

import (
	"golang.org/x/text/unicode/norm"
)

// TokenizeOptions controls a single Tokenize run.
type TokenizeOptions struct {
	// KeepBoundaries emits Boundary tokens. When false boundaries still
	// close the current segment but produce no token.
	KeepBoundaries bool
	// KeepStress emits explicit Stress tokens.
	KeepStress bool
	// AttachStress records a preceding stress mark on the next segment.
	AttachStress bool
	// AssumeAffricates merges adjacent base symbols that form a known
	// affricate pair (e.g. "tʃ") into one segment even without a tie bar.
	AssumeAffricates bool
	// KeepPositions fills the Span of every token.
	KeepPositions bool
}

// DefaultTokenizeOptions keeps every token kind and attaches stress,
// without source positions.
var DefaultTokenizeOptions = TokenizeOptions{
	KeepBoundaries:   true,
	KeepStress:       true,
	AttachStress:     true,
	AssumeAffricates: true,
	KeepPositions:    false,
}

// Tokenize converts a raw IPA string into an ordered token stream.
//
// The input is NFD-decomposed first so that precomposed characters such
// as "ẽ" split into a base symbol and a combining mark. Tokenize never
// fails: input it cannot interpret becomes Unknown tokens.
func Tokenize(raw string, opts TokenizeOptions) []Token {
	t := &tokenizer{
		opts: opts,
		src:  []rune(norm.NFD.String(raw)),
	}
	t.run()
	return t.out
}

// segmentState is a segment under construction together with its raw runes.
type segmentState struct {
	seg   *Segment
	raw   []rune
	start int
	end   int
}

type tokenizer struct {
	opts TokenizeOptions
	src  []rune
	out  []Token

	// cur is the open segment; held is a closed segment whose emission is
	// delayed until the next token so that trailing marks can still join it.
	cur  *segmentState
	held *segmentState

	pending   StressKind
	forceNext bool
}

func (t *tokenizer) run() {
	for i := 0; i < len(t.src); {
		r := t.src[i]

		switch {
		case t.forceNext && t.cur != nil && IsBaseSymbol(r):
			t.cur.seg.BaseSymbols = append(t.cur.seg.BaseSymbols, r)
			t.cur.extend(r, i)
			t.forceNext = false
			i++

		case IsTieBar(r):
			if t.cur == nil {
				t.startSegment(i, nil)
			}
			t.cur.seg.TieBars = append(t.cur.seg.TieBars, r)
			t.cur.extend(r, i)
			t.forceNext = true
			i++

		case StressKindOf(r) != StressNone:
			kind := StressKindOf(r)
			t.flush()
			if t.opts.KeepStress {
				t.emit(Stress{Text: string(r), Span: t.span(i, i+1), Kind: kind})
			}
			if t.opts.AttachStress {
				t.pending = kind
			}
			i++

		case isBoundary(r):
			kind, _ := BoundaryKindOf(r)
			t.flush()
			if t.opts.KeepBoundaries {
				t.emit(Boundary{Text: string(r), Span: t.span(i, i+1), Kind: kind})
			}
			i++

		case IsLengthMark(r), IsSpacingModifier(r), IsCombiningMark(r):
			t.attachMark(r, i)
			i++

		case IsBaseSymbol(r):
			n := t.lookahead(i)
			t.flush()
			t.startSegment(i, t.src[i:i+n])
			i += n

		default:
			t.flush()
			t.emit(Unknown{Text: string(r), Span: t.span(i, i+1)})
			i++
		}
	}

	t.flush()
	t.emitHeld()
}

// lookahead returns how many consecutive base symbols starting at i form
// one segment: 3 for a known triphthong, 2 for a known diphthong or
// affricate pair, otherwise 1.
func (t *tokenizer) lookahead(i int) int {
	src := t.src
	if i+2 < len(src) && IsBaseSymbol(src[i+1]) && IsBaseSymbol(src[i+2]) &&
		IsKnownTriphthong(src[i], src[i+1], src[i+2]) {
		return 3
	}
	if i+1 < len(src) && IsBaseSymbol(src[i+1]) {
		if IsKnownDiphthong(src[i], src[i+1]) {
			return 2
		}
		if t.opts.AssumeAffricates && IsKnownAffricate(src[i], src[i+1]) {
			return 2
		}
	}
	return 1
}

// attachMark appends a diacritic, length mark or modifier to the open
// segment, else to the most recently closed one, else emits it as Unknown.
func (t *tokenizer) attachMark(r rune, i int) {
	target := t.cur
	if target == nil {
		target = t.held
	}
	if target == nil {
		t.emit(Unknown{Text: string(r), Span: t.span(i, i+1)})
		return
	}

	switch {
	case IsLengthMark(r):
		target.seg.LengthMarks = append(target.seg.LengthMarks, r)
	case IsSpacingModifier(r):
		target.seg.Modifiers = append(target.seg.Modifiers, r)
	default:
		target.seg.Diacritics = append(target.seg.Diacritics, r)
	}
	target.extend(r, i)
}

func (t *tokenizer) startSegment(i int, base []rune) {
	t.emitHeld()

	seg := &Segment{BaseSymbols: append([]rune(nil), base...)}
	if t.opts.AttachStress {
		seg.Stress = t.pending
		t.pending = StressNone
	}

	end := i + len(base)
	if len(base) == 0 {
		end = i
	}
	t.cur = &segmentState{seg: seg, raw: append([]rune(nil), base...), start: i, end: end}
}

// flush closes the open segment. It stays held until the next emission.
func (t *tokenizer) flush() {
	t.forceNext = false
	if t.cur == nil {
		return
	}
	t.emitHeld()
	t.held = t.cur
	t.cur = nil
}

func (t *tokenizer) emitHeld() {
	if t.held == nil {
		return
	}
	h := t.held
	t.held = nil

	h.seg.Text = string(h.raw)
	h.seg.Span = t.span(h.start, h.end)
	categorize(h.seg)
	t.out = append(t.out, h.seg)
}

func (t *tokenizer) emit(tok Token) {
	t.emitHeld()
	t.out = append(t.out, tok)
}

func (t *tokenizer) span(start, end int) *Span {
	if !t.opts.KeepPositions {
		return nil
	}
	return &Span{Start: start, End: end}
}

func (s *segmentState) extend(r rune, i int) {
	s.raw = append(s.raw, r)
	if i+1 > s.end {
		s.end = i + 1
	}
}

func isBoundary(r rune) bool {
	_, ok := BoundaryKindOf(r)
	return ok
}
