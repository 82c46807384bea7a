package models

import "time"

// VocabItem is a single saved vocabulary entry.
//
// ID is assigned once at local creation time and never changes; it is the
// preferred matching key against the remote collection. Records created
// before stable IDs were introduced may exist remotely without a matching
// ID and are identified by their natural key instead.
//
// The natural key of a vocabulary item is (Word, Language): one user never
// holds two entries for the same word in the same language.
type VocabItem struct {
	ID string `json:"id,omitempty"`

	Word    string `json:"word"`
	Meaning string `json:"meaning,omitempty"`

	// Reading, Pinyin and Romanization are mutually exclusive phonetic
	// annotations; which one is populated depends on Language
	// (ja → Reading, zh → Pinyin, ko → Romanization).
	Reading      *string `json:"reading,omitempty"`
	Pinyin       *string `json:"pinyin,omitempty"`
	Romanization *string `json:"romanization,omitempty"`

	Language Language `json:"language"`
	Level    Level    `json:"level"`

	Examples []string `json:"examples,omitempty"`

	// Created and Updated are nil when no modification time is known;
	// a nil Updated compares as the zero time during merging, so such
	// entries always lose a last-writer-wins comparison.
	Created *time.Time `json:"created,omitempty"`
	Updated *time.Time `json:"updated,omitempty"`
}

// NaturalKey returns the (word, language) uniqueness key for the item.
func (v VocabItem) NaturalKey() string {
	return v.Word + "\x1f" + string(v.Language)
}

// ClockTime returns the item's merge clock: the last update time, or the
// zero time when none is recorded.
func (v VocabItem) ClockTime() time.Time {
	if v.Updated == nil {
		return time.Time{}
	}
	return *v.Updated
}

// VocabRecord is the remote wire shape of a vocabulary item: the item
// itself plus the owning user's id, which scopes every remote record.
type VocabRecord struct {
	VocabItem
	User string `json:"user,omitempty"`
}
