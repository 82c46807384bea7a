package service

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lingoreel/lingoreel/models"
)

const (
	vocabularyCollection = "vocabulary"
	historyCollection    = "history"
)

// collection bundles the domain knowledge the engine needs about one
// synced collection: its remote name, how to key and clock its entities,
// and how to fingerprint a snapshot for the change trigger.
type collection[E any] struct {
	name string
	// sort is the remote listing order; it has no semantic weight, it
	// just keeps fetches stable.
	sort string

	// id returns the entity's stable ID (also the remote primary key for
	// records created after the stable-ID scheme was introduced).
	id func(E) string
	// key returns the natural key; the merge result holds exactly one
	// entity per distinct key.
	key func(E) string
	// clock returns the last-writer-wins comparison time. Entities
	// without a known modification time report the zero time and
	// therefore lose every tie.
	clock func(E) time.Time

	// fingerprint reduces a snapshot's mutable fields to a deterministic
	// digest; equal content yields equal digests regardless of order.
	fingerprint func([]E) string

	// record wraps an entity into its remote wire shape, attaching the
	// owning user id.
	record func(E, string) any
}

var vocabColl = collection[models.VocabItem]{
	name: vocabularyCollection,
	sort: "-updated",
	id:   func(v models.VocabItem) string { return v.ID },
	key:  func(v models.VocabItem) string { return v.NaturalKey() },
	clock: func(v models.VocabItem) time.Time {
		return v.ClockTime()
	},
	fingerprint: vocabFingerprint,
	record: func(v models.VocabItem, userID string) any {
		return models.VocabRecord{VocabItem: v, User: userID}
	},
}

var historyColl = collection[models.HistoryItem]{
	name: historyCollection,
	sort: "-watched_at",
	id:   func(h models.HistoryItem) string { return h.ID },
	key:  func(h models.HistoryItem) string { return h.NaturalKey() },
	clock: func(h models.HistoryItem) time.Time {
		return h.ClockTime()
	},
	fingerprint: historyFingerprint,
	record: func(h models.HistoryItem, userID string) any {
		return models.HistoryRecord{HistoryItem: h, User: userID}
	},
}

// vocabFingerprint digests the user-mutable fields of every vocabulary
// item. Timestamps are deliberately excluded: an import that only
// refreshes clocks must not look like a local edit.
func vocabFingerprint(items []models.VocabItem) string {
	lines := make([]string, 0, len(items))
	for _, v := range items {
		fields := []string{
			v.Word,
			string(v.Language),
			v.Meaning,
			derefOr(v.Reading),
			derefOr(v.Pinyin),
			derefOr(v.Romanization),
			string(v.Level),
			strings.Join(v.Examples, "\x1e"),
		}
		lines = append(lines, strings.Join(fields, "\x1f"))
	}
	return digestLines(lines)
}

// historyFingerprint digests the fields a local action can change on a
// history entry. WatchedAt is included because a rewatch is a real
// mutation worth pushing.
func historyFingerprint(items []models.HistoryItem) string {
	lines := make([]string, 0, len(items))
	for _, h := range items {
		fields := []string{
			h.VideoID,
			h.Title,
			string(h.Language),
			strconv.FormatInt(h.WatchedAt.UTC().UnixMilli(), 10),
			strconv.FormatFloat(h.Progress, 'f', -1, 64),
			strconv.FormatBool(h.IsFavorite),
		}
		lines = append(lines, strings.Join(fields, "\x1f"))
	}
	return digestLines(lines)
}

func digestLines(lines []string) string {
	sort.Strings(lines)
	sum := sha256.Sum256([]byte(strings.Join(lines, "\x00")))
	return hex.EncodeToString(sum[:])
}

func derefOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
