package picture

import (
	"strings"

	"github.com/heartmarshall/ipa-mnemonic/internal/ipa"
)

// Wildcard matches exactly one character of a catalog key. Every pattern
// also has an implicit trailing "any suffix".
const Wildcard = '_'

// Pattern templates per key length. Letters a-f stand for the key's
// characters in order; '_' is a single-character wildcard.
var templates = map[int][]string{
	1: {"a"},
	2: {"ab", "a_b", "a__b"},
	3: {"abc", "ab_c", "a_bc", "ab__c", "a__bc", "a_b_c"},
	4: {"abcd", "abc_d", "abc__d", "ab_cd", "ab__cd", "a_bcd", "ab_c_d", "a_b_cd", "abc___d"},
	5: {"abcde", "abcd_e", "abc_de", "ab_cde", "abcd__e", "abc__de", "a_bcde", "ab_c_de"},
	6: {"abcdef", "abcde_f", "abcd_ef", "abc_def", "ab_cdef", "abcde__f", "abcd__ef"},
}

// basePatterns expands the templates for key's length. Keys longer than
// six characters try the whole key first, then the six-character
// templates over its first six characters.
func basePatterns(key string) []string {
	k := []rune(key)
	switch {
	case len(k) == 0:
		return nil
	case len(k) > 6:
		out := []string{key}
		return append(out, expand(templates[6], k[:6])...)
	default:
		return expand(templates[len(k)], k)
	}
}

func expand(tmpls []string, k []rune) []string {
	out := make([]string, 0, len(tmpls))
	for _, t := range tmpls {
		var b strings.Builder
		for _, c := range t {
			if c == Wildcard {
				b.WriteRune(Wildcard)
				continue
			}
			b.WriteRune(k[c-'a'])
		}
		out = append(out, b.String())
	}
	return out
}

// Patterns returns the full search order for key: every base pattern
// followed by its single-swap perturbations, without repeats.
func Patterns(key string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, base := range basePatterns(key) {
		for _, p := range ipa.Perturb(base, ipa.DefaultSwaps) {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// MatchPattern reports whether key starts with pattern, where every
// Wildcard in pattern matches exactly one character. This is the prefix
// semantics a Catalog.Find implementation must provide.
func MatchPattern(key, pattern string) bool {
	k, p := []rune(key), []rune(pattern)
	if len(k) < len(p) {
		return false
	}
	for i := range p {
		if p[i] != Wildcard && p[i] != k[i] {
			return false
		}
	}
	return true
}
