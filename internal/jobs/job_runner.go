package jobs

import (
	"context"
	"time"

	"bloodbank-backend/internal/config"
	"bloodbank-backend/internal/logger"
	"bloodbank-backend/internal/repository"
	"bloodbank-backend/internal/service"
)

const jobTimeout = 5 * time.Minute

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store    repository.Store
	services *Services
	config   *config.Config
	clock    service.Clock
}

// Services holds the service dependencies needed by jobs
type Services struct {
	Inventory     service.InventoryService
	Donations     service.DonationService
	Notifications service.NotificationService
}

// NewJobRunner creates a job runner. A nil clock means time.Now.
func NewJobRunner(store repository.Store, services *Services, cfg *config.Config, clock service.Clock) *JobRunner {
	return &JobRunner{
		store:    store,
		services: services,
		config:   cfg,
		clock:    clock,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

func (jr *JobRunner) today() time.Time {
	if jr.clock == nil {
		return time.Now().UTC()
	}
	return jr.clock().UTC()
}

// runWithRecovery wraps job execution with panic recovery and a timeout
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) (int, error)) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	logger.Info("Starting job", "job", jobName)
	sent, err := jobFunc(ctx)
	if err != nil {
		logger.Error("Job failed", "job", jobName, "notifications", sent, "error", err)
		return
	}
	logger.Info("Job completed", "job", jobName, "notifications", sent)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.FlagExpiringStock()
	jr.FlagCriticalStock()
	jr.RemindEligibleDonors()
}
