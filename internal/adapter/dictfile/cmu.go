package dictfile

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/ipa-mnemonic/internal/domain"
	"github.com/heartmarshall/ipa-mnemonic/internal/ipa"
)

// CMUStats counts what LoadCMU saw.
type CMUStats struct {
	Entries  int // data lines
	Variants int // alternate pronunciations skipped
}

// LoadCMU reads a CMU Pronouncing Dictionary file ("WORD  PH1 PH2 ...",
// ";;;" comments) and turns every primary pronunciation into a picture word
// of the given category. Alternate pronunciations ("WORD(2)") are skipped
// so each word yields one record.
func LoadCMU(ctx context.Context, path string, category domain.UsageCategory) ([]domain.PictureWord, CMUStats, error) {
	var stats CMUStats
	if !category.IsValid() {
		return nil, stats, domain.NewValidationError("category", "unknown usage category")
	}

	var out []domain.PictureWord
	err := scanLines(ctx, path, ";;;", func(text string) error {
		word, phonemes, err := parseCMULine(text)
		if err != nil {
			return err
		}
		stats.Entries++

		if strings.HasSuffix(word, ")") {
			stats.Variants++
			return nil
		}

		raw, err := ipa.FromARPAbet(phonemes)
		if err != nil {
			return err
		}

		source := domain.NormalizeText(word)
		out = append(out, domain.PictureWord{
			ID:            uuid.NewSHA1(pictureNamespace, []byte(string(category)+"\x00"+source)),
			SourceText:    source,
			TargetText:    source,
			RawIPA:        raw,
			CanonicalKey:  ipa.StorageKey(raw, ipa.StorageSegments),
			UsageCategory: category,
		})
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	return out, stats, nil
}

// parseCMULine splits "WORD  PH1 PH2" on the double-space separator.
func parseCMULine(text string) (string, []string, error) {
	word, rest, ok := strings.Cut(text, "  ")
	if !ok {
		return "", nil, errors.New("missing double-space separator")
	}
	word = strings.TrimSpace(word)
	phonemes := strings.Fields(rest)
	if word == "" || len(phonemes) == 0 {
		return "", nil, errors.New("empty word or pronunciation")
	}
	return word, phonemes, nil
}
