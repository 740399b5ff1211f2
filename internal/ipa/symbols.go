// Package ipa parses raw IPA transcriptions into phonological tokens and
// folds them onto the small canonical alphabet used for phonetic keys.
//
// All functions in this package are pure and safe for concurrent use.
package ipa

import (
	"unicode"
)

// StressKind is the kind of a stress mark.
type StressKind int

const (
	StressNone StressKind = iota
	StressPrimary
	StressSecondary
)

// String returns the name of the stress kind.
func (k StressKind) String() string {
	switch k {
	case StressPrimary:
		return "primary"
	case StressSecondary:
		return "secondary"
	default:
		return "none"
	}
}

// BoundaryKind classifies a boundary or separator character.
type BoundaryKind int

const (
	BoundaryOther BoundaryKind = iota
	BoundarySpace
	BoundarySyllable
	BoundaryProsodic
	BoundaryHyphen
	BoundarySlash
	BoundaryMajorBreak
	BoundaryBracket
)

// String returns the name of the boundary kind.
func (k BoundaryKind) String() string {
	switch k {
	case BoundarySpace:
		return "space"
	case BoundarySyllable:
		return "syllable"
	case BoundaryProsodic:
		return "prosodic"
	case BoundaryHyphen:
		return "hyphen"
	case BoundarySlash:
		return "slash"
	case BoundaryMajorBreak:
		return "major-break"
	case BoundaryBracket:
		return "bracket"
	default:
		return "other"
	}
}

// GlottalStop is dropped from canonical keys.
const GlottalStop = 'ʔ'

var tieBars = map[rune]struct{}{
	'͡': {}, // combining double inverted breve
	'͜': {}, // combining double breve below
}

var stressMarks = map[rune]StressKind{
	'ˈ':  StressPrimary,
	'\'': StressPrimary,
	'ˌ':  StressSecondary,
}

var lengthMarks = map[rune]struct{}{
	'ː': {},
	'ˑ': {},
	':': {},
	'̆': {}, // extra-short
}

var spacingModifiers = map[rune]struct{}{
	'ʰ': {}, 'ʱ': {}, 'ʲ': {}, 'ʷ': {}, 'ˠ': {}, 'ˤ': {},
	'ⁿ': {}, 'ˡ': {}, '˞': {}, 'ʼ': {}, 'ᵊ': {}, '˭': {},
}

var boundaries = map[rune]BoundaryKind{
	' ':  BoundarySpace,
	'\t': BoundarySpace,
	'\n': BoundarySpace,
	'.':  BoundarySyllable,
	'|':  BoundaryProsodic,
	'‖':  BoundaryMajorBreak,
	'-':  BoundaryHyphen,
	'/':  BoundarySlash,
	'[':  BoundaryBracket,
	']':  BoundaryBracket,
	'(':  BoundaryBracket,
	')':  BoundaryBracket,
	',':  BoundaryOther,
	';':  BoundaryOther,
	'‿':  BoundaryOther,
}

var vowels = map[rune]struct{}{
	'a': {}, 'e': {}, 'i': {}, 'o': {}, 'u': {}, 'y': {},
	'æ': {}, 'ɑ': {}, 'ɐ': {}, 'ɒ': {}, 'ɔ': {}, 'ə': {},
	'ɘ': {}, 'ɛ': {}, 'ɜ': {}, 'ɞ': {}, 'ɤ': {}, 'ɨ': {},
	'ɪ': {}, 'ɯ': {}, 'ɵ': {}, 'ø': {}, 'œ': {}, 'ɶ': {},
	'ʉ': {}, 'ʊ': {}, 'ʌ': {}, 'ʏ': {}, 'ɚ': {}, 'ɝ': {},
}

var knownAffricates = map[string]struct{}{
	"tʃ": {}, "dʒ": {}, "ts": {}, "dz": {},
	"tɕ": {}, "dʑ": {}, "ʈʂ": {}, "ɖʐ": {},
}

var knownDiphthongs = map[string]struct{}{
	"eɪ": {}, "aɪ": {}, "ɑɪ": {}, "ɔɪ": {}, "oɪ": {},
	"oʊ": {}, "əʊ": {}, "aʊ": {}, "ɑʊ": {},
	"ɪə": {}, "eə": {}, "ɛə": {}, "ʊə": {},
}

var knownTriphthongs = map[string]struct{}{
	"aɪə": {}, "aʊə": {}, "eɪə": {}, "ɔɪə": {}, "əʊə": {},
}

// multiFold collapses a multi-symbol segment onto one canonical symbol.
var multiFold = map[string]string{
	"tʃ": "ʧ", "dʒ": "ʤ", "tɕ": "ʧ", "dʑ": "ʤ", "ʈʂ": "ʧ", "ɖʐ": "ʤ",

	"eɪ": "e", "eə": "e", "ɛə": "e",
	"aɪ": "a", "ɑɪ": "a", "aʊ": "a", "ɑʊ": "a",
	"ɔɪ": "o", "oɪ": "o", "oʊ": "o", "əʊ": "o",
	"ɪə": "ɪ", "ʊə": "ʊ",

	"aɪə": "a", "aʊə": "a", "eɪə": "e", "ɔɪə": "o", "əʊə": "o",
}

// symbolFold merges acoustically similar symbols onto canonical
// representatives. Canonical symbols map to themselves.
var symbolFold = map[rune]rune{
	// canonical vowels
	'a': 'a', 'æ': 'æ', 'ʌ': 'ʌ', 'e': 'e', 'ɪ': 'ɪ', 'o': 'o', 'ʊ': 'ʊ',
	// canonical consonants
	'p': 'p', 'b': 'b', 't': 't', 'd': 'd', 'k': 'k', 'g': 'g',
	'f': 'f', 'v': 'v', 's': 's', 'z': 'z', 'ʃ': 'ʃ', 'ʒ': 'ʒ',
	'ʧ': 'ʧ', 'ʤ': 'ʤ', 'm': 'm', 'n': 'n', 'l': 'l', 'r': 'r',
	'h': 'h', 'j': 'j',

	'i': 'ɪ', 'ɨ': 'ɪ', 'y': 'ɪ', 'ʏ': 'ɪ',
	'u': 'ʊ', 'ʉ': 'ʊ', 'ɯ': 'ʊ',
	'ɑ': 'a', 'ɶ': 'æ',
	'ɒ': 'o', 'ɔ': 'o', 'ɤ': 'o', 'ɵ': 'o',
	'ɛ': 'e', 'ɘ': 'e', 'ø': 'e', 'œ': 'e',
	'ə': 'ʌ', 'ɐ': 'ʌ', 'ɜ': 'ʌ', 'ɞ': 'ʌ', 'ɚ': 'ʌ', 'ɝ': 'ʌ',

	'ɡ': 'g', 'ɣ': 'g', 'ɢ': 'g', 'ɟ': 'g', 'q': 'k', 'c': 'k',
	'ɹ': 'r', 'ɾ': 'r', 'ɻ': 'r', 'ʀ': 'r', 'ʁ': 'r',
	'ɫ': 'l', 'ɬ': 'l', 'ɭ': 'l', 'ʎ': 'l',
	'ŋ': 'n', 'ɲ': 'n', 'ɳ': 'n', 'ɱ': 'm',
	'θ': 's', 'ð': 'z',
	'w': 'v', 'ʍ': 'v', 'ʋ': 'v', 'β': 'v', 'ɸ': 'f',
	'x': 'h', 'χ': 'h', 'ç': 'h', 'ħ': 'h', 'ɦ': 'h', 'ʕ': 'h',
	'ʂ': 'ʃ', 'ɕ': 'ʃ', 'ʐ': 'ʒ', 'ʑ': 'ʒ',
	'ʈ': 't', 'ɖ': 'd',
	'ʔ': 'ʔ',
}

// CanonicalVowels lists the vowels of the canonical alphabet in a stable order.
var CanonicalVowels = []rune{'a', 'æ', 'ʌ', 'e', 'ɪ', 'o', 'ʊ'}

// CanonicalConsonants lists the consonants of the canonical alphabet.
var CanonicalConsonants = []rune{
	'p', 'b', 't', 'd', 'k', 'g', 'f', 'v', 's', 'z',
	'ʃ', 'ʒ', 'ʧ', 'ʤ', 'm', 'n', 'l', 'r', 'h', 'j',
}

var canonical = func() map[rune]struct{} {
	m := make(map[rune]struct{}, len(CanonicalVowels)+len(CanonicalConsonants))
	for _, r := range CanonicalVowels {
		m[r] = struct{}{}
	}
	for _, r := range CanonicalConsonants {
		m[r] = struct{}{}
	}
	return m
}()

// IsTieBar reports whether r joins two base symbols into one segment.
func IsTieBar(r rune) bool {
	_, ok := tieBars[r]
	return ok
}

// StressKindOf returns the stress kind of r, or StressNone.
func StressKindOf(r rune) StressKind {
	return stressMarks[r]
}

// BoundaryKindOf returns the boundary kind of r and whether r is a boundary.
func BoundaryKindOf(r rune) (BoundaryKind, bool) {
	k, ok := boundaries[r]
	return k, ok
}

// IsLengthMark reports whether r marks segment length.
func IsLengthMark(r rune) bool {
	_, ok := lengthMarks[r]
	return ok
}

// IsSpacingModifier reports whether r is a spacing modifier letter such as ʰ.
func IsSpacingModifier(r rune) bool {
	_, ok := spacingModifiers[r]
	return ok
}

// IsCombiningMark reports whether r is a combining diacritic (tie bars excluded).
func IsCombiningMark(r rune) bool {
	if IsTieBar(r) || IsLengthMark(r) {
		return false
	}
	return unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r)
}

// IsBaseSymbol reports whether r can start or extend a segment.
func IsBaseSymbol(r rune) bool {
	if IsSpacingModifier(r) || IsLengthMark(r) || StressKindOf(r) != StressNone {
		return false
	}
	return unicode.IsLetter(r)
}

// IsVowel reports whether r is a vowel symbol (raw or canonical).
func IsVowel(r rune) bool {
	_, ok := vowels[r]
	return ok
}

// IsKnownAffricate reports whether a followed by b is a known affricate pair.
func IsKnownAffricate(a, b rune) bool {
	_, ok := knownAffricates[string([]rune{a, b})]
	return ok
}

// IsKnownDiphthong reports whether a followed by b is a known diphthong.
func IsKnownDiphthong(a, b rune) bool {
	_, ok := knownDiphthongs[string([]rune{a, b})]
	return ok
}

// IsKnownTriphthong reports whether a, b, c form a known triphthong.
func IsKnownTriphthong(a, b, c rune) bool {
	_, ok := knownTriphthongs[string([]rune{a, b, c})]
	return ok
}

// IsCanonical reports whether r belongs to the canonical alphabet.
func IsCanonical(r rune) bool {
	_, ok := canonical[r]
	return ok
}

// IsCanonicalVowel reports whether r is a vowel of the canonical alphabet.
func IsCanonicalVowel(r rune) bool {
	return IsCanonical(r) && IsVowel(r)
}

// IsCanonicalConsonant reports whether r is a consonant of the canonical alphabet.
func IsCanonicalConsonant(r rune) bool {
	return IsCanonical(r) && !IsVowel(r)
}
