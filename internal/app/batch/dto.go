package batch

import (
	"github.com/heartmarshall/ipa-mnemonic/internal/service/keyword"
	"github.com/heartmarshall/ipa-mnemonic/internal/service/mnemonic"
	"github.com/heartmarshall/ipa-mnemonic/internal/service/picture"
)

// Record is one output line.
type Record struct {
	Line     int         `json:"line"`
	Word     string      `json:"word"`
	IPA      string      `json:"ipa"`
	Key      string      `json:"key,omitempty"`
	Strategy string      `json:"strategy,omitempty"`
	Keyword  *KeywordDTO `json:"keyword,omitempty"`
	Person   *PictureDTO `json:"person,omitempty"`
	Job      *PictureDTO `json:"job,omitempty"`
	Adj      *PictureDTO `json:"adj,omitempty"`
	Image    *PictureDTO `json:"persian_image,omitempty"`
	Error    string      `json:"error,omitempty"`
	matched  bool
}

// KeywordDTO is the selected keyword of a word.
type KeywordDTO struct {
	ID       int64   `json:"id"`
	Text     string  `json:"text"`
	IPA      string  `json:"ipa"`
	Key      string  `json:"key"`
	Score    float64 `json:"score"`
	GatePass bool    `json:"gate_pass"`
}

// PictureDTO is one filled picture slot.
type PictureDTO struct {
	Source      string `json:"source"`
	Target      string `json:"target,omitempty"`
	Key         string `json:"key,omitempty"`
	Pattern     string `json:"pattern,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

func toRecord(in input, res mnemonic.WordResult) Record {
	return Record{
		Line:     in.line,
		Word:     in.word,
		IPA:      in.ipa,
		Key:      res.Pictures.Key,
		Strategy: string(res.Pictures.Strategy),
		Keyword:  NewKeywordDTO(res.Keyword.Selected),
		Person:   NewPictureDTO(res.Pictures.Person),
		Job:      NewPictureDTO(res.Pictures.Job),
		Adj:      NewPictureDTO(res.Pictures.Adj),
		Image:    NewPictureDTO(res.Pictures.PersianImage),
		matched:  res.Matched(),
	}
}

// NewKeywordDTO converts a candidate; nil stays nil.
func NewKeywordDTO(c *keyword.Candidate) *KeywordDTO {
	if c == nil {
		return nil
	}
	return &KeywordDTO{
		ID:       c.Keyword.ID,
		Text:     c.Keyword.SourceText,
		IPA:      c.Keyword.RawIPA,
		Key:      c.Key,
		Score:    c.Score,
		GatePass: c.GatePass,
	}
}

// NewPictureDTO converts a filled slot; nil stays nil.
func NewPictureDTO(m *picture.Match) *PictureDTO {
	if m == nil {
		return nil
	}
	return &PictureDTO{
		Source:      m.Word.SourceText,
		Target:      m.Word.TargetText,
		Key:         m.Word.CanonicalKey,
		Pattern:     m.Pattern,
		Placeholder: m.Placeholder,
	}
}

// MatchDTO is the full answer for one transcription, as printed by the
// match command and returned by the HTTP API.
type MatchDTO struct {
	IPA        string        `json:"ipa"`
	Segments   []string      `json:"segments"`
	StorageKey string        `json:"storage_key"`
	Tokens     []string      `json:"tokens,omitempty"`
	Keyword    *KeywordDTO   `json:"keyword,omitempty"`
	Ranked     []*KeywordDTO `json:"ranked,omitempty"`
	Strategy   string        `json:"strategy,omitempty"`
	Person     *PictureDTO   `json:"person,omitempty"`
	Job        *PictureDTO   `json:"job,omitempty"`
	Adj        *PictureDTO   `json:"adj,omitempty"`
	Image      *PictureDTO   `json:"persian_image,omitempty"`
}

// SetKeyword fills the keyword fields from m.
func (d *MatchDTO) SetKeyword(m keyword.Match) {
	d.Keyword = NewKeywordDTO(m.Selected)
	for i := range m.Ranked {
		d.Ranked = append(d.Ranked, NewKeywordDTO(&m.Ranked[i]))
	}
}

// SetPictures fills the picture slots from r.
func (d *MatchDTO) SetPictures(r picture.Result) {
	d.Strategy = string(r.Strategy)
	d.Person = NewPictureDTO(r.Person)
	d.Job = NewPictureDTO(r.Job)
	d.Adj = NewPictureDTO(r.Adj)
	d.Image = NewPictureDTO(r.PersianImage)
}
