package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lingoreel/lingoreel/internal/logger"
	"github.com/lingoreel/lingoreel/models"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount atomic.Int32
}

func (m *mockWorker) Run(ctx context.Context) {
	m.runCount.Add(1)
	<-ctx.Done()
}

func TestWorkers_Run_AllWorkersAreStarted(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ctx, cancel := context.WithCancel(context.Background())
	ws := NewWorkers(w1, w2, w3)
	ws.Run(ctx)

	deadline := time.After(time.Second)
	for i, w := range []*mockWorker{w1, w2, w3} {
		for w.runCount.Load() == 0 {
			select {
			case <-deadline:
				t.Fatalf("worker[%d]: Run was never called", i)
			default:
				time.Sleep(time.Millisecond)
			}
		}
	}

	cancel()
	ws.Wait()

	for i, w := range []*mockWorker{w1, w2, w3} {
		if got := w.runCount.Load(); got != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, got)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()

	// Should not panic on empty workers list
	ws.Run(context.Background())
	ws.Wait()
}

func TestWorkers_Wait_BlocksUntilCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ws := NewWorkers(&mockWorker{})
	ws.Run(ctx)

	done := make(chan struct{})
	go func() {
		ws.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait returned while workers were still running")
	case <-time.After(20 * time.Millisecond):
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after cancellation")
	}
}

// stubSync counts FullSync invocations for the job tests.
type stubSync struct {
	full atomic.Int32
}

func (s *stubSync) FullSync(context.Context)       { s.full.Add(1) }
func (s *stubSync) PushOnly(context.Context)       {}
func (s *stubSync) NeedsPush(context.Context) bool { return false }
func (s *stubSync) Status() models.SyncStatus      { return models.StatusIdle }
func (s *stubSync) LastSyncedAt() time.Time        { return time.Time{} }

func TestSyncJob_TicksFullSync(t *testing.T) {
	svc := &stubSync{}
	job := NewSyncJob(svc, logger.Nop(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		job.Run(ctx)
	}()

	deadline := time.After(time.Second)
	for svc.full.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 2 ticks, got %d", svc.full.Load())
		default:
			time.Sleep(time.Millisecond)
		}
	}

	cancel()
	<-done
}

func TestSyncJob_NoImmediateSync(t *testing.T) {
	svc := &stubSync{}
	job := NewSyncJob(svc, logger.Nop(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		job.Run(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	if got := svc.full.Load(); got != 0 {
		t.Errorf("expected no sync before the first tick, got %d", got)
	}

	cancel()
	<-done
}

func TestSyncJob_DefaultInterval(t *testing.T) {
	job := NewSyncJob(&stubSync{}, logger.Nop(), 0)
	if job.interval != defaultSyncInterval {
		t.Errorf("expected default interval %v, got %v", defaultSyncInterval, job.interval)
	}

	job = NewSyncJob(&stubSync{}, logger.Nop(), -time.Second)
	if job.interval != defaultSyncInterval {
		t.Errorf("expected default interval %v, got %v", defaultSyncInterval, job.interval)
	}
}
