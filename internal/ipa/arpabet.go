package ipa

import (
	"fmt"
	"strings"
)

// arpabet maps ARPAbet phonemes, stress digits removed, to broad IPA.
var arpabet = map[string]string{
	"AA": "ɑ",
	"AE": "æ",
	"AH": "ʌ",
	"AO": "ɔ",
	"AW": "aʊ",
	"AY": "aɪ",
	"B":  "b",
	"CH": "tʃ",
	"D":  "d",
	"DH": "ð",
	"EH": "ɛ",
	"ER": "ɝ",
	"EY": "eɪ",
	"F":  "f",
	"G":  "ɡ",
	"HH": "h",
	"IH": "ɪ",
	"IY": "i",
	"JH": "dʒ",
	"K":  "k",
	"L":  "l",
	"M":  "m",
	"N":  "n",
	"NG": "ŋ",
	"OW": "oʊ",
	"OY": "ɔɪ",
	"P":  "p",
	"R":  "ɹ",
	"S":  "s",
	"SH": "ʃ",
	"T":  "t",
	"TH": "θ",
	"UH": "ʊ",
	"UW": "u",
	"V":  "v",
	"W":  "w",
	"Y":  "j",
	"Z":  "z",
	"ZH": "ʒ",
}

// FromARPAbet converts a sequence of ARPAbet phonemes (as used by the CMU
// Pronouncing Dictionary) into an IPA string. Primary stress (digit 1) is
// written as 'ˈ' before the stressed vowel, secondary stress (2) as 'ˌ'.
// Syllable onsets are not reconstructed.
func FromARPAbet(phonemes []string) (string, error) {
	var b strings.Builder
	for _, ph := range phonemes {
		base, stress := splitStress(strings.ToUpper(ph))
		sym, ok := arpabet[base]
		if !ok {
			return "", fmt.Errorf("unknown ARPAbet phoneme %q", ph)
		}
		switch stress {
		case '1':
			b.WriteRune('ˈ')
		case '2':
			b.WriteRune('ˌ')
		}
		b.WriteString(sym)
	}
	return b.String(), nil
}

func splitStress(ph string) (string, byte) {
	if n := len(ph); n > 0 && ph[n-1] >= '0' && ph[n-1] <= '2' {
		return ph[:n-1], ph[n-1]
	}
	return ph, 0
}
