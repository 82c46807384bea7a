package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingoreel/lingoreel/internal/logger"
	"github.com/lingoreel/lingoreel/models"
)

// stubSyncService records invocations with their timestamps; real
// timing is what the debounce tests are about.
type stubSyncService struct {
	mu        sync.Mutex
	fullCalls []time.Time
	pushCalls []time.Time
	needsPush bool
}

func (s *stubSyncService) FullSync(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fullCalls = append(s.fullCalls, time.Now())
}

func (s *stubSyncService) PushOnly(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushCalls = append(s.pushCalls, time.Now())
}

func (s *stubSyncService) NeedsPush(context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.needsPush
}

func (s *stubSyncService) Status() models.SyncStatus { return models.StatusIdle }
func (s *stubSyncService) LastSyncedAt() time.Time   { return time.Time{} }

func (s *stubSyncService) counts() (full, push int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fullCalls), len(s.pushCalls)
}

const testWindow = 50 * time.Millisecond

func newTestTrigger(svc SyncService, mutations ...<-chan struct{}) *Trigger {
	tr := NewTrigger(svc, logger.Nop(), mutations...)
	tr.window = testWindow
	return tr
}

func startTrigger(t *testing.T, tr *Trigger) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		tr.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return cancel
}

// ── Login and restore ─────────────────────────────────────────────────────────

func TestTrigger_LoginStartsFullSync(t *testing.T) {
	svc := &stubSyncService{}
	tr := newTestTrigger(svc)
	startTrigger(t, tr)

	tr.NotifyLogin()

	require.Eventually(t, func() bool {
		full, _ := svc.counts()
		return full == 1
	}, time.Second, time.Millisecond)

	_, push := svc.counts()
	assert.Zero(t, push)
}

func TestTrigger_EveryLoginSyncs(t *testing.T) {
	svc := &stubSyncService{}
	tr := newTestTrigger(svc)
	startTrigger(t, tr)

	tr.NotifyLogin()
	require.Eventually(t, func() bool { f, _ := svc.counts(); return f == 1 }, time.Second, time.Millisecond)

	tr.NotifyLogin()
	require.Eventually(t, func() bool { f, _ := svc.counts(); return f == 2 }, time.Second, time.Millisecond)
}

func TestTrigger_RestoreFiresOncePerProcess(t *testing.T) {
	svc := &stubSyncService{}
	tr := newTestTrigger(svc)
	startTrigger(t, tr)

	tr.NotifyRestored()
	require.Eventually(t, func() bool { f, _ := svc.counts(); return f == 1 }, time.Second, time.Millisecond)

	tr.NotifyRestored()
	time.Sleep(3 * testWindow)

	full, _ := svc.counts()
	assert.Equal(t, 1, full, "a second restore in the same process is ignored")
}

// ── Debounced mutations ───────────────────────────────────────────────────────

func TestTrigger_MutationDebounces(t *testing.T) {
	svc := &stubSyncService{needsPush: true}
	muts := make(chan struct{}, 1)
	tr := newTestTrigger(svc, muts)
	startTrigger(t, tr)

	// Two rapid edits inside one window collapse into a single push.
	muts <- struct{}{}
	time.Sleep(testWindow / 2)
	muts <- struct{}{}
	secondEdit := time.Now()

	require.Eventually(t, func() bool {
		_, push := svc.counts()
		return push == 1
	}, time.Second, time.Millisecond)

	svc.mu.Lock()
	firedAt := svc.pushCalls[0]
	svc.mu.Unlock()
	assert.GreaterOrEqual(t, firedAt.Sub(secondEdit), testWindow,
		"the window restarts on every edit, so the push trails the last one")

	// No further pushes without further edits.
	time.Sleep(3 * testWindow)
	_, push := svc.counts()
	assert.Equal(t, 1, push)
}

func TestTrigger_SeparatedEditsPushSeparately(t *testing.T) {
	svc := &stubSyncService{needsPush: true}
	muts := make(chan struct{}, 1)
	tr := newTestTrigger(svc, muts)
	startTrigger(t, tr)

	muts <- struct{}{}
	require.Eventually(t, func() bool { _, p := svc.counts(); return p == 1 }, time.Second, time.Millisecond)

	muts <- struct{}{}
	require.Eventually(t, func() bool { _, p := svc.counts(); return p == 2 }, time.Second, time.Millisecond)
}

func TestTrigger_CleanMutationDoesNotArm(t *testing.T) {
	svc := &stubSyncService{needsPush: false}
	muts := make(chan struct{}, 1)
	tr := newTestTrigger(svc, muts)
	startTrigger(t, tr)

	muts <- struct{}{}
	time.Sleep(3 * testWindow)

	full, push := svc.counts()
	assert.Zero(t, full)
	assert.Zero(t, push, "content identical to the last push must not schedule anything")
}

func TestTrigger_MultipleMutationSources(t *testing.T) {
	svc := &stubSyncService{needsPush: true}
	vocabCh := make(chan struct{}, 1)
	historyCh := make(chan struct{}, 1)
	tr := newTestTrigger(svc, vocabCh, historyCh)
	startTrigger(t, tr)

	vocabCh <- struct{}{}
	historyCh <- struct{}{}

	require.Eventually(t, func() bool { _, p := svc.counts(); return p >= 1 }, time.Second, time.Millisecond)
	time.Sleep(3 * testWindow)

	_, push := svc.counts()
	assert.Equal(t, 1, push, "edits from both collections share one debounce window")
}

func TestTrigger_CancelStops(t *testing.T) {
	svc := &stubSyncService{needsPush: true}
	muts := make(chan struct{}, 1)
	tr := newTestTrigger(svc, muts)
	cancel := startTrigger(t, tr)

	muts <- struct{}{}
	cancel()
	time.Sleep(3 * testWindow)

	_, push := svc.counts()
	assert.Zero(t, push, "cancellation while armed discards the pending push")
}

func TestTrigger_NotifyNeverBlocks(t *testing.T) {
	tr := newTestTrigger(&stubSyncService{})
	// Run is intentionally not started; repeated notifications must
	// still return immediately.
	for i := 0; i < 5; i++ {
		tr.NotifyLogin()
		tr.NotifyRestored()
	}
}
