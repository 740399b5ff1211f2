package ipa

// SwapPair is a pair of canonical symbols that are interchangeable when
// broadening a search.
type SwapPair struct {
	A rune
	B rune
}

// DefaultSwaps is the swap table shared by the keyword and picture-word
// matchers.
var DefaultSwaps = []SwapPair{
	{A: 'j', B: 'ɪ'},
	{A: 'ɪ', B: 'e'},
	{A: 'ʤ', B: 'ʒ'},
	{A: 'ʤ', B: 'ʧ'},
	{A: 'o', B: 'ʊ'},
	{A: 'æ', B: 'ʌ'},
}

// Perturb returns key followed by every distinct variant that differs
// from it by one swapped symbol. Variants are ordered by swap pair, then
// by position. Characters outside the pairs (including the '_' wildcard
// and spaces) are never touched.
func Perturb(key string, pairs []SwapPair) []string {
	runes := []rune(key)
	out := []string{key}
	seen := map[string]struct{}{key: {}}

	for _, p := range pairs {
		for i, r := range runes {
			var to rune
			switch r {
			case p.A:
				to = p.B
			case p.B:
				to = p.A
			default:
				continue
			}

			variant := make([]rune, len(runes))
			copy(variant, runes)
			variant[i] = to

			s := string(variant)
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
