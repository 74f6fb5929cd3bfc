package monitoring

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/lifetrack/lifetrack-be/internal/services"
)

// Janitor runs scheduled maintenance: pruning audit events past the
// retention window.
type Janitor struct {
	eventSvc      services.EventServiceProvider
	schedule      string
	retentionDays int
	cron          *cron.Cron
}

// NewJanitor creates a janitor with a standard cron schedule expression,
// e.g. "@daily" or "0 3 * * *".
func NewJanitor(eventSvc services.EventServiceProvider, schedule string, retentionDays int) *Janitor {
	return &Janitor{
		eventSvc:      eventSvc,
		schedule:      schedule,
		retentionDays: retentionDays,
	}
}

// Start validates the schedule and begins running maintenance.
func (j *Janitor) Start() error {
	j.cron = cron.New()
	if _, err := j.cron.AddFunc(j.schedule, j.pruneEvents); err != nil {
		return err
	}
	j.cron.Start()
	log.Info().Str("schedule", j.schedule).Int("retention_days", j.retentionDays).Msg("Janitor started")
	return nil
}

// Stop halts scheduled maintenance. Already-running jobs finish.
func (j *Janitor) Stop() {
	if j.cron != nil {
		j.cron.Stop()
	}
}

func (j *Janitor) pruneEvents() {
	n, err := j.eventSvc.PruneOlderThan(j.retentionDays)
	if err != nil {
		log.Error().Err(err).Msg("Janitor: Failed to prune old events")
		return
	}
	if n > 0 {
		log.Info().Int64("deleted", n).Msg("Janitor: Pruned old events")
	}
}
