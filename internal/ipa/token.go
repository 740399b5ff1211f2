package ipa

import "fmt"

// Category classifies a segment by its base symbols.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryVowel
	CategoryConsonant
	CategoryAffricate
	CategoryCluster
)

// String returns the name of the category.
func (c Category) String() string {
	switch c {
	case CategoryVowel:
		return "vowel"
	case CategoryConsonant:
		return "consonant"
	case CategoryAffricate:
		return "affricate"
	case CategoryCluster:
		return "cluster"
	default:
		return "unknown"
	}
}

// Span is a rune range [Start, End) in the NFD-decomposed input.
type Span struct {
	Start int
	End   int
}

// Token is one element of a tokenized IPA string. The set of
// implementations is closed: *Segment, Stress, Boundary and Unknown.
// Consumers switch on the concrete type.
type Token interface {
	// Raw returns the original text covered by the token.
	Raw() string
	// Position returns the source span, or nil when positions were not kept.
	Position() *Span

	token()
}

// Segment is one phonological unit.
type Segment struct {
	Text        string
	Span        *Span
	BaseSymbols []rune
	TieBars     []rune
	Diacritics  []rune
	Modifiers   []rune
	LengthMarks []rune
	Stress      StressKind
	Category    Category
	IsAffricate bool
}

// Stress is an explicit stress mark.
type Stress struct {
	Text string
	Span *Span
	Kind StressKind
}

// Boundary is a separator between segments.
type Boundary struct {
	Text string
	Span *Span
	Kind BoundaryKind
}

// Unknown is input the tokenizer could not attach to anything.
type Unknown struct {
	Text string
	Span *Span
}

func (s *Segment) Raw() string     { return s.Text }
func (s *Segment) Position() *Span { return s.Span }
func (*Segment) token()            {}
func (s Stress) Raw() string       { return s.Text }
func (s Stress) Position() *Span   { return s.Span }
func (Stress) token()              {}
func (b Boundary) Raw() string     { return b.Text }
func (b Boundary) Position() *Span { return b.Span }
func (Boundary) token()            {}
func (u Unknown) Raw() string      { return u.Text }
func (u Unknown) Position() *Span  { return u.Span }
func (Unknown) token()             {}

// Base returns the base symbols joined as a string.
func (s *Segment) Base() string {
	return string(s.BaseSymbols)
}

// String returns a debug representation, e.g. Segment("tʃ" affricate).
func (s *Segment) String() string {
	return fmt.Sprintf("Segment(%q %s)", s.Text, s.Category)
}

func (s Stress) String() string   { return fmt.Sprintf("Stress(%s)", s.Kind) }
func (b Boundary) String() string { return fmt.Sprintf("Boundary(%s)", b.Kind) }
func (u Unknown) String() string  { return fmt.Sprintf("Unknown(%q)", u.Text) }

// categorize derives the segment category from its base symbols and tie bars.
func categorize(s *Segment) {
	switch {
	case len(s.BaseSymbols) == 0:
		s.Category = CategoryUnknown
	case len(s.TieBars) > 0 && len(s.BaseSymbols) >= 2:
		s.Category = CategoryAffricate
	case len(s.BaseSymbols) == 1:
		if IsVowel(s.BaseSymbols[0]) {
			s.Category = CategoryVowel
		} else {
			s.Category = CategoryConsonant
		}
	default:
		s.Category = CategoryVowel
		for _, r := range s.BaseSymbols {
			if !IsVowel(r) {
				s.Category = CategoryCluster
				break
			}
		}
	}
	s.IsAffricate = len(s.TieBars) > 0 && len(s.BaseSymbols) >= 2
}
