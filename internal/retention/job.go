package retention

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"ulascansenturk/weather-fetcher/internal/db/weatherquery"
)

var ErrInvalidRetention = errors.New("history retention must be positive")

// Job periodically deletes weather history older than the retention window.
type Job struct {
	weatherQueryRepo weatherquery.Repository
	retention        time.Duration
	schedule         string
	cron             *cron.Cron
	now              func() time.Time
}

func NewJob(weatherQueryRepo weatherquery.Repository, retention time.Duration, schedule string) (*Job, error) {
	if retention <= 0 {
		return nil, ErrInvalidRetention
	}

	job := &Job{
		weatherQueryRepo: weatherQueryRepo,
		retention:        retention,
		schedule:         schedule,
		cron:             cron.New(cron.WithLogger(cronLogger{})),
		now:              time.Now,
	}

	if _, err := job.cron.AddFunc(schedule, func() {
		if _, err := job.RunOnce(); err != nil {
			log.Error().Err(err).Msg("history retention run failed")
		}
	}); err != nil {
		return nil, err
	}

	return job, nil
}

func (j *Job) Start() {
	log.Info().
		Str("schedule", j.schedule).
		Dur("retention", j.retention).
		Msg("starting history retention job")

	j.cron.Start()
}

// Stop prevents further runs. The returned context is done once a running
// cleanup has finished.
func (j *Job) Stop() context.Context {
	return j.cron.Stop()
}

// RunOnce deletes every history row older than the retention window.
func (j *Job) RunOnce() (int64, error) {
	cutoff := j.now().Add(-j.retention)

	deleted, err := j.weatherQueryRepo.DeleteOlderThan(cutoff)
	if err != nil {
		return 0, err
	}

	log.Info().
		Int64("deleted", deleted).
		Time("cutoff", cutoff).
		Msg("pruned weather history")

	return deleted, nil
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg(msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
