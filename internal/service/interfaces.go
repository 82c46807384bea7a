// Package service implements the lingoreel synchronization engine: the
// merge, identity resolution, batched upsert, and orchestration logic
// that keeps the local and remote copies of the vocabulary and watch
// history collections eventually consistent.
//
// Reconciliation is last-writer-wins per natural key: (word, language)
// for vocabulary, video_id for history. A winner replaces the losing
// entity wholesale; fields are never merged individually.
package service

import (
	"context"
	"time"

	"github.com/lingoreel/lingoreel/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/sync_service_mock.go -package=mock

// SyncService is the public surface of the sync engine. All entry points
// are safe to call concurrently; at most one cycle runs at a time and
// extra invocations are dropped, not queued. No entry point ever returns
// an error: failures surface only through Status and the logs.
type SyncService interface {
	// FullSync runs a bidirectional cycle for both collections: fetch
	// remote, merge with local, upsert the reconciled snapshot to remote,
	// import it back locally. No-op when no identity is set or a cycle
	// is already in flight.
	FullSync(ctx context.Context)

	// PushOnly uploads the current local snapshots without merging or
	// importing. Collections whose content is unchanged since the last
	// successful push are skipped. Shares the single-flight guard with
	// FullSync but does not touch the published status.
	PushOnly(ctx context.Context)

	// NeedsPush reports whether any collection's local content differs
	// from the fingerprint recorded after the last successful push.
	NeedsPush(ctx context.Context) bool

	// Status returns the current externally observable engine state.
	Status() models.SyncStatus

	// LastSyncedAt returns the completion time of the last successful
	// full sync, or the zero time if none has completed yet.
	LastSyncedAt() time.Time
}
