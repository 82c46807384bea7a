package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lingoreel/lingoreel/internal/adapter"
	"github.com/lingoreel/lingoreel/internal/config"
	"github.com/lingoreel/lingoreel/internal/logger"
	"github.com/lingoreel/lingoreel/internal/service"
	"github.com/lingoreel/lingoreel/internal/store"
	"github.com/lingoreel/lingoreel/internal/workers"
	"github.com/lingoreel/lingoreel/models"
)

// App owns every long-lived component of the client process.
type App struct {
	remote   adapter.RecordStore
	storages *store.Storages
	sync     service.SyncService
	trigger  *service.Trigger
	workers  *workers.Workers
	log      *logger.Logger
}

func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	db, err := store.NewConnectSQLite(ctx, cfg.Storage.DB.DSN, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	storages := store.NewStorages(db, log)

	remote := adapter.NewHTTPRecordStore(adapter.HTTPClientConfig{
		BaseURL: cfg.Remote.BaseURL,
		Timeout: cfg.Remote.RequestTimeout,
	})

	syncSvc := service.NewSyncService(remote, storages, log)
	trigger := service.NewTrigger(syncSvc, log,
		storages.Vocabulary.Changes(),
		storages.History.Changes(),
	)
	job := workers.NewSyncJob(syncSvc, log, cfg.Sync.Interval)

	return &App{
		remote:   remote,
		storages: storages,
		sync:     syncSvc,
		trigger:  trigger,
		workers:  workers.NewWorkers(trigger, job),
		log:      log,
	}, nil
}

// Run restores the persisted session if one exists, starts the
// background workers, and blocks until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.workers.Run(ctx)

	a.restoreSession(ctx)

	<-ctx.Done()
	a.workers.Wait()
	return nil
}

// Authenticate installs a fresh token obtained by the UI's login flow,
// persists it for the next process start, and kicks off a full sync.
func (a *App) Authenticate(ctx context.Context, token string) error {
	if err := a.remote.SetToken(token); err != nil {
		return fmt.Errorf("set remote token: %w", err)
	}

	session := models.Session{
		UserID:  a.remote.UserID(),
		Token:   token,
		SavedAt: time.Now(),
	}
	if err := a.storages.Session.SaveSession(ctx, session); err != nil {
		// Sync still works for this process; only the next start loses out.
		a.log.Warn().Err(err).Msg("could not persist session")
	}

	a.trigger.NotifyLogin()
	return nil
}

// Logout drops the remote identity and the persisted session. Local data
// stays untouched.
func (a *App) Logout(ctx context.Context) error {
	if err := a.remote.SetToken(""); err != nil {
		return fmt.Errorf("clear remote token: %w", err)
	}
	if err := a.storages.Session.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Storages exposes the local repositories to the embedding UI.
func (a *App) Storages() *store.Storages { return a.storages }

// SyncStatus reports the engine's externally observable state.
func (a *App) SyncStatus() models.SyncStatus { return a.sync.Status() }

// LastSyncedAt reports when the last successful full sync completed.
func (a *App) LastSyncedAt() time.Time { return a.sync.LastSyncedAt() }

// restoreSession reinstates the identity saved by a previous process, if
// any. Failures are logged and swallowed: an unrestorable session just
// means the user logs in again.
func (a *App) restoreSession(ctx context.Context) {
	session, err := a.storages.Session.GetSession(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrSessionNotFound) {
			a.log.Warn().Err(err).Msg("could not read persisted session")
		}
		return
	}

	if err = a.remote.SetToken(session.Token); err != nil {
		a.log.Warn().Err(err).Msg("persisted session token rejected, clearing it")
		if err = a.storages.Session.ClearSession(ctx); err != nil {
			a.log.Warn().Err(err).Msg("could not clear stale session")
		}
		return
	}

	a.log.Info().Str("user_id", session.UserID).Msg("session restored")
	a.trigger.NotifyRestored()
}
