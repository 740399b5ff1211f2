package ipa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromARPAbet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		phonemes []string
		want     string
	}{
		{"house", []string{"HH", "AW1", "S"}, "hˈaʊs"},
		{"world", []string{"W", "ER1", "L", "D"}, "wˈɝld"},
		{"the", []string{"DH", "AH0"}, "ðʌ"},
		{"secondary", []string{"AE2", "T"}, "ˌæt"},
		{"lowercase", []string{"k", "ae1", "t"}, "kˈæt"},
		{"affricate", []string{"CH", "IY1", "Z"}, "tʃˈiz"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := FromARPAbet(tt.phonemes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromARPAbet_Unknown(t *testing.T) {
	t.Parallel()

	_, err := FromARPAbet([]string{"HH", "XX1"})
	assert.ErrorContains(t, err, `"XX1"`)
}

func TestFromARPAbet_FoldsToCanonicalKey(t *testing.T) {
	t.Parallel()

	raw, err := FromARPAbet([]string{"HH", "AW1", "S"})
	require.NoError(t, err)
	assert.Equal(t, "has", StorageKey(raw, StorageSegments))
}
