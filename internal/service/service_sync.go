package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lingoreel/lingoreel/internal/adapter"
	"github.com/lingoreel/lingoreel/internal/logger"
	"github.com/lingoreel/lingoreel/internal/store"
	"github.com/lingoreel/lingoreel/models"
)

type syncService struct {
	remote  adapter.RecordStore
	vocab   store.VocabularyRepository
	history store.HistoryRepository
	log     *logger.Logger

	// inFlight is the single-flight guard: whoever wins the
	// compare-and-swap owns the cycle, everyone else is dropped.
	inFlight atomic.Bool
	status   atomic.Int32
	lastSync atomic.Int64

	backoff func(attempt int) time.Duration

	mu           sync.Mutex
	fingerprints map[string]string
}

func NewSyncService(remote adapter.RecordStore, storages *store.Storages, log *logger.Logger) SyncService {
	return &syncService{
		remote:       remote,
		vocab:        storages.Vocabulary,
		history:      storages.History,
		log:          log,
		backoff:      defaultBackoff,
		fingerprints: make(map[string]string),
	}
}

func (s *syncService) FullSync(ctx context.Context) {
	if s.remote.UserID() == "" {
		return
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		s.log.Debug().Msg("sync already in flight, dropping full sync trigger")
		return
	}
	defer s.inFlight.Store(false)

	s.status.Store(int32(models.StatusSyncing))

	if err := s.syncAll(ctx); err != nil {
		s.log.Error().Err(err).Msg("full sync failed")
		s.status.Store(int32(models.StatusError))
		return
	}

	s.lastSync.Store(time.Now().UnixNano())
	s.status.Store(int32(models.StatusSynced))
}

func (s *syncService) syncAll(ctx context.Context) error {
	if err := fullSyncCollection(ctx, s, s.vocabBinding()); err != nil {
		return err
	}
	return fullSyncCollection(ctx, s, s.historyBinding())
}

func (s *syncService) PushOnly(ctx context.Context) {
	if s.remote.UserID() == "" {
		return
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		s.log.Debug().Msg("sync already in flight, dropping push-only trigger")
		return
	}
	defer s.inFlight.Store(false)

	if err := pushCollection(ctx, s, s.vocabBinding()); err != nil {
		s.log.Error().Err(err).Msg("vocabulary push failed")
	}
	if err := pushCollection(ctx, s, s.historyBinding()); err != nil {
		s.log.Error().Err(err).Msg("history push failed")
	}
}

func (s *syncService) NeedsPush(ctx context.Context) bool {
	if s.remote.UserID() == "" {
		return false
	}
	return collectionDirty(ctx, s, s.vocabBinding()) ||
		collectionDirty(ctx, s, s.historyBinding())
}

func (s *syncService) Status() models.SyncStatus {
	return models.SyncStatus(s.status.Load())
}

func (s *syncService) LastSyncedAt() time.Time {
	ns := s.lastSync.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// boundCollection ties a collection descriptor to the local repository
// it syncs against.
type boundCollection[E any] struct {
	col       collection[E]
	getAll    func(ctx context.Context) ([]E, error)
	importAll func(ctx context.Context, items []E) error
}

func (s *syncService) vocabBinding() boundCollection[models.VocabItem] {
	return boundCollection[models.VocabItem]{
		col:       vocabColl,
		getAll:    s.vocab.GetAllItems,
		importAll: s.vocab.ImportItems,
	}
}

func (s *syncService) historyBinding() boundCollection[models.HistoryItem] {
	return boundCollection[models.HistoryItem]{
		col:       historyColl,
		getAll:    s.history.GetAllItems,
		importAll: s.history.ImportItems,
	}
}

// fullSyncCollection runs one collection through the whole cycle:
// fetch → merge → upsert → import.
func fullSyncCollection[E any](ctx context.Context, s *syncService, b boundCollection[E]) error {
	remote := fetchRemoteSnapshot(ctx, s, b.col)

	local, err := b.getAll(ctx)
	if err != nil {
		return fmt.Errorf("read local %s snapshot: %w", b.col.name, err)
	}

	merged := mergeSnapshots(local, remote, b.col.key, b.col.clock)

	ix := newRemoteIndex(remote, b.col)
	newExecutor(s, b.col).run(ctx, buildUpsertPlan(merged, ix, b.col))

	if err = b.importAll(ctx, merged); err != nil {
		return fmt.Errorf("import merged %s snapshot: %w", b.col.name, err)
	}

	s.setFingerprint(b.col.name, b.col.fingerprint(merged))
	return nil
}

// pushCollection uploads the local snapshot as-is. Remote state is
// fetched solely to resolve create-vs-update; nothing is merged or
// imported.
func pushCollection[E any](ctx context.Context, s *syncService, b boundCollection[E]) error {
	local, err := b.getAll(ctx)
	if err != nil {
		return fmt.Errorf("read local %s snapshot: %w", b.col.name, err)
	}

	fp := b.col.fingerprint(local)
	if fp == s.getFingerprint(b.col.name) {
		s.log.Debug().Str("collection", b.col.name).Msg("no local changes since last push, skipping")
		return nil
	}

	remote := fetchRemoteSnapshot(ctx, s, b.col)
	ix := newRemoteIndex(remote, b.col)
	newExecutor(s, b.col).run(ctx, buildUpsertPlan(local, ix, b.col))

	s.setFingerprint(b.col.name, fp)
	return nil
}

func collectionDirty[E any](ctx context.Context, s *syncService, b boundCollection[E]) bool {
	local, err := b.getAll(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("collection", b.col.name).Msg("could not read local snapshot for dirty check")
		return false
	}
	return b.col.fingerprint(local) != s.getFingerprint(b.col.name)
}

// fetchRemoteSnapshot lists the user's remote records for a collection.
// A fetch failure degrades to an empty snapshot instead of aborting the
// cycle; the merge then lets local win everything. That trades a real
// data-loss risk for availability and is a deliberate choice, so it is
// logged loudly rather than hidden.
func fetchRemoteSnapshot[E any](ctx context.Context, s *syncService, col collection[E]) []E {
	filter := adapter.Eq("user", s.remote.UserID())
	raw, err := s.remote.List(ctx, col.name, adapter.ListQuery{Filter: filter, Sort: col.sort})
	if err != nil {
		s.log.Warn().Err(err).
			Str("collection", col.name).
			Msg("remote fetch failed, treating remote snapshot as empty")
		return nil
	}

	items := make([]E, 0, len(raw))
	for _, rec := range raw {
		var item E
		if err := json.Unmarshal(rec, &item); err != nil {
			s.log.Warn().Err(err).Str("collection", col.name).Msg("skipping undecodable remote record")
			continue
		}
		items = append(items, item)
	}
	return items
}

func newExecutor[E any](s *syncService, col collection[E]) *upsertExecutor[E] {
	userID := s.remote.UserID()
	return &upsertExecutor[E]{
		col: col,
		create: func(ctx context.Context, item E) error {
			return s.remote.Create(ctx, col.name, col.record(item, userID))
		},
		update: func(ctx context.Context, remoteID string, item E) error {
			return s.remote.Update(ctx, col.name, remoteID, col.record(item, userID))
		},
		backoff: s.backoff,
		log:     s.log,
	}
}

func (s *syncService) setFingerprint(name, fp string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fingerprints[name] = fp
}

func (s *syncService) getFingerprint(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fingerprints[name]
}
