package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bloodbank-backend/internal/cache"
	"bloodbank-backend/internal/config"
	"bloodbank-backend/internal/jobs"
	"bloodbank-backend/internal/logger"
	"bloodbank-backend/internal/repository"
	"bloodbank-backend/internal/repository/memory"
	"bloodbank-backend/internal/repository/postgres"
	"bloodbank-backend/internal/scheduler"
	"bloodbank-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'flag-expiring-stock', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Blood Bank cronjob runner...", "log_level", cfg.Log.Level, "store", cfg.Store.Type)

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	var kv cache.KVStore
	if cfg.Redis.Addr != "" {
		client := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer client.Close()
		kv = cache.NewRedisKVStore(client, "bloodbank:")
	}

	// Initialize Services
	notificationSvc := service.NewNotificationService(store.Notifications(), store.Users(), nil)
	jobServices := &jobs.Services{
		Inventory:     service.NewInventoryService(store.Inventory(), kv, time.Duration(cfg.Redis.TTLSeconds)*time.Second, nil),
		Donations:     service.NewDonationService(store.Donations(), store.Users(), notificationSvc, nil),
		Notifications: notificationSvc,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(store, jobServices, cfg, nil)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		if !runJobOnce(jobRunner, *runOnce) {
			os.Exit(1)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...", "running", cronScheduler.IsRunning())
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// openStore connects to the configured store. The in-memory store only
// makes sense for trying jobs out, so it is seeded with the demo data.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, func(), error) {
	if cfg.Store.Type != config.StorePostgres {
		logger.Warn("Cronjob runner is using a private in-memory store")
		store := memory.NewStore()
		if err := repository.Seed(ctx, store); err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}

	db, err := postgres.Open(ctx, cfg.GetDatabaseConnectionString(), cfg.Database.MaxOpenConns)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Database connection established")
	store := postgres.NewStore(db)
	return store, func() { store.Close() }, nil
}

// runJobOnce runs a specific job once. It reports false for unknown names.
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) bool {
	switch jobName {
	case "flag-expiring-stock":
		jobRunner.FlagExpiringStock()
	case "flag-critical-stock":
		jobRunner.FlagCriticalStock()
	case "remind-eligible-donors":
		jobRunner.RemindEligibleDonors()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - flag-expiring-stock\n")
		fmt.Printf("  - flag-critical-stock\n")
		fmt.Printf("  - remind-eligible-donors\n")
		fmt.Printf("  - all\n")
		return false
	}
	return true
}
