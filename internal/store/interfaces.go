// Package store implements the local, always-available side of the two
// lingoreel collections on SQLite, plus persistence for the last
// authenticated session.
//
// Repositories double as the local mutation event source for the sync
// trigger: every successful local write is announced on the channel
// returned by Changes. Imports performed by the sync engine itself do
// not announce, so a finished sync cycle cannot re-trigger a push.
package store

import (
	"context"

	"github.com/lingoreel/lingoreel/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// VocabularyRepository is the local vocabulary collection.
type VocabularyRepository interface {
	// GetAllItems returns the full local snapshot.
	GetAllItems(ctx context.Context) ([]models.VocabItem, error)

	// SaveItems upserts locally mutated items by natural key. Items
	// without an ID get a fresh stable ID; Updated is stamped with the
	// current time. A change notification is emitted on success.
	SaveItems(ctx context.Context, items ...models.VocabItem) error

	// ImportItems writes a reconciled snapshot back into the store,
	// replacing rows by natural key. IDs and timestamps are taken from
	// the snapshot verbatim and no change notification is emitted.
	ImportItems(ctx context.Context, items []models.VocabItem) error

	// Changes announces local mutations. The channel is buffered and
	// never blocks the writer; coalesced bursts deliver at least one
	// notification.
	Changes() <-chan struct{}
}

// HistoryRepository is the local watch-history collection.
type HistoryRepository interface {
	GetAllItems(ctx context.Context) ([]models.HistoryItem, error)
	SaveItems(ctx context.Context, items ...models.HistoryItem) error
	ImportItems(ctx context.Context, items []models.HistoryItem) error
	Changes() <-chan struct{}
}

// SessionRepository persists the last authenticated remote identity.
type SessionRepository interface {
	SaveSession(ctx context.Context, session models.Session) error
	// GetSession returns the stored session or ErrSessionNotFound.
	GetSession(ctx context.Context) (models.Session, error)
	ClearSession(ctx context.Context) error
}
