package service

import (
	"context"
	"time"

	"github.com/lingoreel/lingoreel/internal/logger"
)

// defaultDebounceWindow is the quiet period after the last local
// mutation before a push-only sync fires.
const defaultDebounceWindow = 2 * time.Second

// Trigger turns the three event sources the engine reacts to into sync
// invocations:
//
//   - user login → full sync immediately;
//   - session restore → full sync, at most once per process lifetime;
//   - local mutation of a watched collection → push-only sync after a
//     quiet period, with every further mutation restarting the timer
//     (trailing debounce, no leading edge, no maximum wait).
//
// Mutations only arm the timer when the local content actually differs
// from what was last pushed, so redundant change notifications cost one
// fingerprint comparison and nothing else.
type Trigger struct {
	svc    SyncService
	log    *logger.Logger
	window time.Duration

	login     chan struct{}
	restored  chan struct{}
	mutations []<-chan struct{}

	restoredOnce bool
}

// NewTrigger wires a trigger to the sync service and the repositories'
// change channels.
func NewTrigger(svc SyncService, log *logger.Logger, mutations ...<-chan struct{}) *Trigger {
	return &Trigger{
		svc:       svc,
		log:       log,
		window:    defaultDebounceWindow,
		login:     make(chan struct{}, 1),
		restored:  make(chan struct{}, 1),
		mutations: mutations,
	}
}

// NotifyLogin signals that a remote identity just became available.
// Non-blocking; a signal already pending is enough.
func (t *Trigger) NotifyLogin() {
	select {
	case t.login <- struct{}{}:
	default:
	}
}

// NotifyRestored signals that a previously known identity reappeared
// from the persisted session.
func (t *Trigger) NotifyRestored() {
	select {
	case t.restored <- struct{}{}:
	default:
	}
}

// Run consumes events until ctx is cancelled. It implements
// workers.Worker.
func (t *Trigger) Run(ctx context.Context) {
	muts := make(chan struct{}, 1)
	for _, ch := range t.mutations {
		go fanIn(ctx, ch, muts)
	}

	timer := time.NewTimer(t.window)
	if !timer.Stop() {
		<-timer.C
	}
	armed := false

	for {
		select {
		case <-ctx.Done():
			if armed {
				timer.Stop()
			}
			return

		case <-t.login:
			t.log.Debug().Msg("login event, starting full sync")
			t.svc.FullSync(ctx)

		case <-t.restored:
			if t.restoredOnce {
				continue
			}
			t.restoredOnce = true
			t.log.Debug().Msg("session restored, starting full sync")
			t.svc.FullSync(ctx)

		case <-muts:
			if !t.svc.NeedsPush(ctx) {
				continue
			}
			if armed && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(t.window)
			armed = true

		case <-timer.C:
			armed = false
			t.log.Debug().Msg("debounce window elapsed, starting push-only sync")
			t.svc.PushOnly(ctx)
		}
	}
}

func fanIn(ctx context.Context, from <-chan struct{}, to chan<- struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-from:
			if !ok {
				return
			}
			select {
			case to <- struct{}{}:
			default:
			}
		}
	}
}
