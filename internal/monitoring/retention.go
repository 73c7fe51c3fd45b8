package monitoring

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/ecxhq/identity-be/internal/services"
)

// Retention purges aged request logs and audit events on a daily schedule.
type Retention struct {
	logSvc    services.LogServiceProvider
	eventSvc  services.EventServiceProvider
	retention time.Duration
	cron      *cron.Cron
}

// NewRetention creates a retention job keeping rows younger than
// retentionDays.
func NewRetention(logSvc services.LogServiceProvider, eventSvc services.EventServiceProvider, retentionDays int) *Retention {
	return &Retention{
		logSvc:    logSvc,
		eventSvc:  eventSvc,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		cron:      cron.New(),
	}
}

// Run purges once immediately, then daily.
func (r *Retention) Run() {
	log.Info().Dur("retention", r.retention).Msg("Starting retention job")
	r.purge()
	if _, err := r.cron.AddFunc("@daily", r.purge); err != nil {
		log.Error().Err(err).Msg("Failed to schedule retention job")
		return
	}
	r.cron.Start()
}

// Stop halts the schedule, waiting for a purge in flight.
func (r *Retention) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("Retention job stopped")
}

func (r *Retention) purge() {
	cutoff := time.Now().Add(-r.retention)

	logs, err := r.logSvc.PurgeLogsBefore(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Retention: failed to purge request logs")
	}

	events, err := r.eventSvc.PurgeEventsBefore(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Retention: failed to purge events")
	}

	if logs > 0 || events > 0 {
		log.Info().Int64("request_logs", logs).Int64("events", events).Msg("Retention: purged aged rows")
	}
}
