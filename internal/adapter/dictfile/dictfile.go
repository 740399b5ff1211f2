// Package dictfile loads keyword dictionaries and picture-word catalogs
// from tab-separated files and the CMU Pronouncing Dictionary.
//
// Keyword files hold "id<TAB>source<TAB>ipa" rows. Picture files hold
// "source<TAB>target<TAB>ipa<TAB>category[<TAB>personal]" rows. Blank
// lines and lines starting with '#' are ignored.
package dictfile

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/google/uuid"

	"github.com/heartmarshall/ipa-mnemonic/internal/domain"
	"github.com/heartmarshall/ipa-mnemonic/internal/ipa"
)

// pictureNamespace scopes the deterministic ids given to file records.
var pictureNamespace = uuid.MustParse("6f1c9f7e-2f4b-4d0e-9a53-0b8e1f4a7c21")

// KeywordFile is a keyword.Source backed by a TSV file. The file is read
// on every ListKeywords call.
type KeywordFile struct {
	path string
}

// NewKeywordFile returns a source reading path.
func NewKeywordFile(path string) *KeywordFile {
	return &KeywordFile{path: path}
}

// ListKeywords parses the file. Rows keep file order.
func (f *KeywordFile) ListKeywords(ctx context.Context) ([]domain.Keyword, error) {
	var out []domain.Keyword
	err := scan(ctx, f.path, func(fields []string) error {
		if len(fields) != 3 {
			return fmt.Errorf("want 3 columns, got %d", len(fields))
		}
		id, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad id %q: %w", fields[0], err)
		}
		out = append(out, domain.Keyword{ID: id, SourceText: fields[1], RawIPA: fields[2]})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LoadPictureWords parses a picture file. Each record gets its canonical
// key computed from the IPA and an id derived from source and category.
func LoadPictureWords(ctx context.Context, path string) ([]domain.PictureWord, error) {
	var out []domain.PictureWord
	err := scan(ctx, path, func(fields []string) error {
		if len(fields) < 4 || len(fields) > 5 {
			return fmt.Errorf("want 4 or 5 columns, got %d", len(fields))
		}

		category, err := domain.ParseUsageCategory(fields[3])
		if err != nil {
			return err
		}

		var personal bool
		if len(fields) == 5 && fields[4] != "" {
			personal, err = strconv.ParseBool(fields[4])
			if err != nil {
				return fmt.Errorf("bad personal flag %q: %w", fields[4], err)
			}
		}

		out = append(out, domain.PictureWord{
			ID:            uuid.NewSHA1(pictureNamespace, []byte(string(category)+"\x00"+fields[0])),
			SourceText:    fields[0],
			TargetText:    fields[1],
			RawIPA:        fields[2],
			CanonicalKey:  ipa.StorageKey(fields[2], ipa.StorageSegments),
			UsageCategory: category,
			CanBePersonal: personal,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// scan calls fn with the trimmed tab-separated fields of every data row.
func scan(ctx context.Context, path string, fn func(fields []string) error) error {
	return scanLines(ctx, path, "#", func(text string) error {
		fields := strings.Split(text, "\t")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		return fn(fields)
	})
}

// scanLines maps path into memory and calls fn with every line that is not
// blank and does not start with comment. Errors are prefixed with path and
// line number.
func scanLines(ctx context.Context, path, comment string, fn func(text string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	// Zero-length files cannot be mapped.
	if info.Size() == 0 {
		return nil
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return fmt.Errorf("mmap %s: %w", path, err)
	}
	defer data.Unmap()

	n := 0
	for line := range bytes.Lines(data) {
		n++
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		text := strings.TrimRight(string(line), "\r\n")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, comment) {
			continue
		}
		if err := fn(text); err != nil {
			return fmt.Errorf("%s:%d: %w", path, n, err)
		}
	}
	return ctx.Err()
}
