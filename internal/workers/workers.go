package workers

import (
	"context"
	"sync"
)

// Workers runs a set of Worker implementations, one goroutine each.
type Workers struct {
	workers []Worker
	wg      sync.WaitGroup
}

func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

// Run starts every worker and returns immediately. Workers stop when
// ctx is cancelled; Wait blocks until they all have.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func(worker Worker) {
			defer w.wg.Done()
			worker.Run(ctx)
		}(worker)
	}
}

func (w *Workers) Wait() {
	w.wg.Wait()
}
