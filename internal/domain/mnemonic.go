package domain

import "github.com/google/uuid"

// Keyword is one entry of the keyword dictionary: a native-language word
// and its IPA transcription.
type Keyword struct {
	ID         int64
	SourceText string
	RawIPA     string
}

// PictureWord is a catalog record usable as part of a mnemonic picture.
// CanonicalKey is the storage-key form of RawIPA and is what the catalog
// is searched by.
type PictureWord struct {
	ID            uuid.UUID
	SourceText    string
	TargetText    string
	CanonicalKey  string
	RawIPA        string
	UsageCategory UsageCategory
	CanBePersonal bool
}

// KeyUpdate sets the canonical key of one picture word.
type KeyUpdate struct {
	ID  uuid.UUID
	Key string
}
