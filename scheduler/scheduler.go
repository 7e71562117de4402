// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job is a unit of scheduled work.
type Job interface {
	Run() error
	Name() string
}

type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		log:  log.With().Str("component", "scheduler").Logger(),
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Int("jobs", len(s.cron.Entries())).Msg("Scheduler started")
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("Scheduler stopped")
}

// AddJob registers job on a standard five-field cron spec or a descriptor
// such as "@hourly" or "@every 15m".
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.log.Debug().Str("job", job.Name()).Msg("Running job")

		if err := job.Run(); err != nil {
			s.log.Error().
				Err(err).
				Str("job", job.Name()).
				Msg("Job failed")
			return
		}
		s.log.Debug().Str("job", job.Name()).Msg("Job completed")
	})
	if err != nil {
		return err
	}

	s.log.Info().
		Str("schedule", schedule).
		Str("job", job.Name()).
		Msg("Job registered")

	return nil
}

// Len returns the number of registered jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}
