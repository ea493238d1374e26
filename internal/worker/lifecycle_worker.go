package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/thebiblebus/biblebus-backend/internal/service"
)

// LifecycleWorker periodically sweeps group statuses forward and opens the
// next quarterly group when one is due. The same sweep can also be triggered
// on demand through the admin API.
type LifecycleWorker struct {
	groupService *service.GroupService
	interval     time.Duration
	log          zerolog.Logger
}

func NewLifecycleWorker(groupService *service.GroupService, interval time.Duration, log zerolog.Logger) *LifecycleWorker {
	return &LifecycleWorker{
		groupService: groupService,
		interval:     interval,
		log:          log.With().Str("component", "lifecycle_worker").Logger(),
	}
}

func (w *LifecycleWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("LifecycleWorker started")

	// Run once at startup so a restarted server catches up immediately.
	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *LifecycleWorker) sweep(ctx context.Context) {
	counts, err := w.groupService.UpdateGroupStatuses(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("Status sweep failed")
		return
	}
	if counts.Activated+counts.Closed+counts.Completed > 0 {
		w.log.Info().
			Int("activated", counts.Activated).
			Int("closed", counts.Closed).
			Int("completed", counts.Completed).
			Msg("Group statuses advanced")
	}

	created, err := w.groupService.CreateNextQuarterlyGroup(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("Quarterly group creation failed")
		return
	}
	if created != nil {
		w.log.Info().
			Int("group_id", created.ID).
			Str("name", created.Name).
			Msg("Next quarterly group created")
	}
}
