package service

import (
	"context"
	"sync"
	"time"

	"github.com/lingoreel/lingoreel/internal/adapter"
	"github.com/lingoreel/lingoreel/internal/logger"
)

const (
	// upsertBatchSize bounds how many remote operations are in flight at
	// once: operations within a batch run concurrently, batches run
	// sequentially.
	upsertBatchSize = 10

	// upsertAttempts is the total number of tries per item for transient
	// failures. Permanent failures stop after the first try.
	upsertAttempts = 3
)

// defaultBackoff waits 2^attempt seconds after a failed attempt
// (0-indexed): 1s, 2s, 4s.
func defaultBackoff(attempt int) time.Duration {
	return time.Duration(1<<attempt) * time.Second
}

// upsertExecutor pushes a reconciled snapshot to the remote store. It
// never fails as a whole: each item retries transient errors on its own
// and is logged and dropped when its attempts are exhausted, so a bad
// item cannot abort the batch or the sync cycle. A dropped item is
// simply missing from this cycle's remote state and is retried by the
// next full sync.
type upsertExecutor[E any] struct {
	col     collection[E]
	create  func(ctx context.Context, item E) error
	update  func(ctx context.Context, remoteID string, item E) error
	backoff func(attempt int) time.Duration
	log     *logger.Logger
}

func (e *upsertExecutor[E]) run(ctx context.Context, plan []upsertOp[E]) {
	for start := 0; start < len(plan); start += upsertBatchSize {
		end := min(start+upsertBatchSize, len(plan))

		var wg sync.WaitGroup
		for _, op := range plan[start:end] {
			wg.Add(1)
			go func(op upsertOp[E]) {
				defer wg.Done()
				e.push(ctx, op)
			}(op)
		}
		wg.Wait()
	}
}

// push writes one item, retrying transient failures with exponential
// backoff. Items in a batch operate on disjoint natural keys, so no
// ordering between them is needed.
func (e *upsertExecutor[E]) push(ctx context.Context, op upsertOp[E]) {
	var err error
	for attempt := 0; attempt < upsertAttempts; attempt++ {
		if op.remoteID != "" {
			err = e.update(ctx, op.remoteID, op.item)
		} else {
			err = e.create(ctx, op.item)
		}
		if err == nil {
			return
		}

		if !adapter.IsTransient(err) {
			e.log.Warn().Err(err).
				Str("collection", e.col.name).
				Str("id", e.col.id(op.item)).
				Msg("permanent upsert failure, dropping item for this cycle")
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(e.backoff(attempt)):
		}
	}

	e.log.Warn().Err(err).
		Str("collection", e.col.name).
		Str("id", e.col.id(op.item)).
		Int("attempts", upsertAttempts).
		Msg("transient upsert failure persisted, dropping item for this cycle")
}
