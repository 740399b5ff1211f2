package keyword

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/heartmarshall/ipa-mnemonic/internal/ipa"
)

// Features are the prefix similarity signals that lower a candidate's score.
type Features struct {
	PrefixConsonantExact int
	FirstConsonantBigram bool
	ConsonantOverlap     int
	VowelOverlap         int
}

// shiftyPrefixes are key openings whose third character is often an
// epenthetic or reduced sound; the gate also tries the key without it.
var shiftyPrefixes = []string{"kem", "ken", "ke", "ɪn", "re", "de"}

func prefix(r []rune, n int) []rune {
	if len(r) > n {
		return r[:n]
	}
	return r
}

// extractFeatures compares the first prefixLen characters of target and
// candidate keys.
func extractFeatures(target, cand []rune) Features {
	var f Features

	for i := 0; i < len(target) && i < len(cand); i++ {
		if target[i] == cand[i] && ipa.IsCanonicalConsonant(target[i]) {
			f.PrefixConsonantExact++
		}
	}

	tc, cc := consonants(target), consonants(cand)
	f.FirstConsonantBigram = len(tc) >= 2 && len(cc) >= 2 && tc[0] == cc[0] && tc[1] == cc[1]

	f.ConsonantOverlap = overlap(tc, cc)
	f.VowelOverlap = overlap(vowels(target), vowels(cand))
	return f
}

func consonants(r []rune) []rune {
	var out []rune
	for _, c := range r {
		if ipa.IsCanonicalConsonant(c) {
			out = append(out, c)
		}
	}
	return out
}

func vowels(r []rune) []rune {
	var out []rune
	for _, c := range r {
		if ipa.IsCanonicalVowel(c) {
			out = append(out, c)
		}
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

// score is the prefix edit distance minus weighted feature bonuses. Lower
// is better.
func score(cfg Config, target, cand []rune, f Features) float64 {
	d := float64(levenshtein.ComputeDistance(string(target), string(cand)))
	bigram := 0.0
	if f.FirstConsonantBigram {
		bigram = 1
	}
	return d -
		cfg.ConsonantExactWeight*float64(f.PrefixConsonantExact) -
		cfg.BigramWeight*bigram -
		cfg.ConsonantOverlapWeight*float64(f.ConsonantOverlap) -
		cfg.VowelOverlapWeight*float64(f.VowelOverlap)
}

// gateVariants returns the key forms the gate test is run against.
func gateVariants(key []rune) [][]rune {
	out := [][]rune{key}
	s := string(key)
	for _, p := range shiftyPrefixes {
		if strings.HasPrefix(s, p) && len(key) > 2 {
			shifted := make([]rune, 0, len(key)-1)
			shifted = append(shifted, key[:2]...)
			shifted = append(shifted, key[3:]...)
			out = append(out, shifted)
			break
		}
	}
	return out
}

// similarity counts equal positions among the first n characters. At
// position 0 only, "s" and "e" are treated as equal.
func similarity(target, cand []rune, n int) int {
	count := 0
	for i := 0; i < n && i < len(target) && i < len(cand); i++ {
		a, b := target[i], cand[i]
		if a == b || (i == 0 && (a == 's' && b == 'e' || a == 'e' && b == 's')) {
			count++
		}
	}
	return count
}

// passesGate reports whether cand is admissible against any variant of
// the target key. Gate lengths are clamped to the variant length.
func passesGate(variants [][]rune, cand []rune, gate1, gate2 int) bool {
	for _, v := range variants {
		g1 := min(gate1, len(v))
		g2 := min(gate2, len(v))
		if similarity(v, cand, g1) >= max(1, g1-1) && similarity(v, cand, g2) >= max(1, g2-2) {
			return true
		}
	}
	return false
}
