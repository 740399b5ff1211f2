package dictfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/ipa-mnemonic/internal/domain"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dict.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestKeywordFile_ListKeywords(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "# id\tsource\tipa\n1\tкот\tkot\n\n2\tдом\tdom\r\n3\tпарк\t pɑrk \n")

	got, err := NewKeywordFile(path).ListKeywords(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.Keyword{
		{ID: 1, SourceText: "кот", RawIPA: "kot"},
		{ID: 2, SourceText: "дом", RawIPA: "dom"},
		{ID: 3, SourceText: "парк", RawIPA: "pɑrk"},
	}, got)
}

func TestKeywordFile_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"missing column", "1\tкот\n", ":1: want 3 columns"},
		{"bad id", "x\tкот\tkot\n", ":1: bad id"},
		{"error on later line", "1\tа\ta\n\n2\tб\n", ":3: want 3 columns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewKeywordFile(writeFile(t, tt.content)).ListKeywords(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestKeywordFile_MissingAndEmpty(t *testing.T) {
	t.Parallel()

	_, err := NewKeywordFile(filepath.Join(t.TempDir(), "nope.tsv")).ListKeywords(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)

	got, err := NewKeywordFile(writeFile(t, "")).ListKeywords(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestKeywordFile_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewKeywordFile(writeFile(t, "1\tа\ta\n")).ListKeywords(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadPictureWords(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "Kat\tКэт\tkæt\tperson\ttrue\nteacher\tучитель\tˈtiːtʃə\tjob\n")

	got, err := LoadPictureWords(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Kat", got[0].SourceText)
	assert.Equal(t, "kæt", got[0].CanonicalKey)
	assert.Equal(t, domain.UsagePerson, got[0].UsageCategory)
	assert.True(t, got[0].CanBePersonal)

	assert.Equal(t, "tɪʧʌ", got[1].CanonicalKey)
	assert.Equal(t, domain.UsageJob, got[1].UsageCategory)
	assert.False(t, got[1].CanBePersonal)

	again, err := LoadPictureWords(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, got[0].ID, again[0].ID, "ids are stable across loads")
	assert.NotEqual(t, got[0].ID, got[1].ID)
}

func TestLoadPictureWords_Errors(t *testing.T) {
	t.Parallel()

	_, err := LoadPictureWords(context.Background(), writeFile(t, "a\tb\tc\tanimal\n"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = LoadPictureWords(context.Background(), writeFile(t, "a\tb\tc\tjob\tmaybe\n"))
	assert.ErrorContains(t, err, "bad personal flag")

	_, err = LoadPictureWords(context.Background(), writeFile(t, "a\tb\tc\n"))
	assert.ErrorContains(t, err, "want 4 or 5 columns")
}
