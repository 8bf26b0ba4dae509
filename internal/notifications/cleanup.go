package notifications

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const (
	cleanupSchedule   = "0 0 3 * * *" // daily at 03:00
	readRetention     = 30 * 24 * time.Hour
	cleanupJobTimeout = 2 * time.Minute
)

// Cleanup periodically deletes read notifications past retention.
type Cleanup struct {
	repo *Repo
	cron *cron.Cron
	now  func() time.Time
}

func NewCleanup(repo *Repo) *Cleanup {
	return &Cleanup{
		repo: repo,
		cron: cron.New(cron.WithSeconds()),
		now:  time.Now,
	}
}

// Start registers the job and starts the scheduler.
func (c *Cleanup) Start() error {
	if _, err := c.cron.AddFunc(cleanupSchedule, c.run); err != nil {
		return err
	}
	c.cron.Start()
	log.Info().Str("schedule", cleanupSchedule).Msg("notification cleanup scheduled")
	return nil
}

// Stop waits for a running job to finish.
func (c *Cleanup) Stop() {
	<-c.cron.Stop().Done()
}

func (c *Cleanup) run() {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupJobTimeout)
	defer cancel()

	if _, err := c.RunOnce(ctx); err != nil {
		log.Error().Err(err).Msg("notification cleanup failed")
	}
}

// RunOnce performs one purge and returns the number of rows removed.
func (c *Cleanup) RunOnce(ctx context.Context) (int64, error) {
	cutoff := c.now().Add(-readRetention)
	n, err := c.repo.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	log.Info().Int64("deleted", n).Time("cutoff", cutoff).Msg("notification cleanup done")
	return n, nil
}
