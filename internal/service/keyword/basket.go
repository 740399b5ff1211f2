package keyword

import (
	"github.com/heartmarshall/ipa-mnemonic/internal/ipa"
)

// basketKeys derives the short lookup keys for a normalized input key.
//
// The base baskets are the first two characters and, for keys of four or
// more characters, the (0,2) and (1,2) pairs. Each base is expanded with
// the shared swap perturbations; a base opening with two non-vowels also
// gets one variant per canonical vowel inserted between them, and a base
// starting with "s" repeats every variant with an "e" prefix.
func basketKeys(key string) []string {
	k := []rune(key)
	if len(k) == 0 {
		return nil
	}

	var bases [][]rune
	if len(k) == 1 {
		bases = append(bases, k[:1])
	} else {
		bases = append(bases, []rune{k[0], k[1]})
		if len(k) >= 4 {
			bases = append(bases, []rune{k[0], k[2]}, []rune{k[1], k[2]})
		}
	}

	var out []string
	seen := make(map[string]struct{})
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, base := range bases {
		variants := ipa.Perturb(string(base), ipa.DefaultSwaps)

		if len(base) == 2 && !ipa.IsCanonicalVowel(base[0]) && !ipa.IsCanonicalVowel(base[1]) {
			for _, v := range ipa.CanonicalVowels {
				variants = append(variants, string([]rune{base[0], v, base[1]}))
			}
		}

		if base[0] == 's' {
			n := len(variants)
			for _, v := range variants[:n] {
				variants = append(variants, "e"+v)
			}
		}

		for _, v := range variants {
			add(v)
		}
	}
	return out
}
