package workers

import (
	"context"
	"time"

	"github.com/lingoreel/lingoreel/internal/logger"
	"github.com/lingoreel/lingoreel/internal/service"
)

// defaultSyncInterval is used when the configured interval is zero or
// negative.
const defaultSyncInterval = 5 * time.Minute

// SyncJob periodically runs a full sync so devices converge even when
// no local activity occurs. Overlap with event-driven syncs is harmless:
// the engine's single-flight guard drops the extra invocation.
type SyncJob struct {
	svc      service.SyncService
	log      *logger.Logger
	interval time.Duration
}

func NewSyncJob(svc service.SyncService, log *logger.Logger, interval time.Duration) *SyncJob {
	if interval <= 0 {
		interval = defaultSyncInterval
	}
	return &SyncJob{svc: svc, log: log, interval: interval}
}

// Run implements Worker. The first sync fires after one full interval,
// not immediately: startup syncs are the trigger's job.
func (j *SyncJob) Run(ctx context.Context) {
	t := time.NewTicker(j.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			j.log.Debug().Msg("periodic sync tick")
			j.svc.FullSync(ctx)
		}
	}
}
