package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"bloodbank-backend/internal/jobs"
	"bloodbank-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scheduler for the runner's jobs. Specs come from
// the runner's scheduler config and use six fields (with seconds), in UTC.
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Config().Scheduler

	entries := []struct {
		name string
		spec string
		run  func()
	}{
		{"FlagExpiringStock", cfg.FlagExpiringStock, s.jobs.FlagExpiringStock},
		{"FlagCriticalStock", cfg.FlagCriticalStock, s.jobs.FlagCriticalStock},
		{"RemindEligibleDonors", cfg.RemindEligibleDonors, s.jobs.RemindEligibleDonors},
	}
	for _, e := range entries {
		if _, err := s.cron.AddFunc(e.spec, e.run); err != nil {
			logger.Error("Failed to register job", "job", e.name, "spec", e.spec, "error", err)
			return fmt.Errorf("invalid schedule %q for %s: %w", e.spec, e.name, err)
		}
		logger.Debug("Registered job", "job", e.name, "spec", e.spec)
	}

	logger.Info("All cron jobs registered successfully", "count", len(entries))
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	s.running = true
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler, waiting for running jobs.
// Stopping a scheduler that is not running does nothing.
func (s *Scheduler) Stop() {
	if !s.IsRunning() {
		return
	}
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
	logger.Info("Cron scheduler stopped")
}

// IsRunning reports whether Start has been called without a matching Stop.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
