package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	grpcapi "bloodbank-backend/internal/api/grpc"
	httpapi "bloodbank-backend/internal/api/http"
	"bloodbank-backend/internal/cache"
	"bloodbank-backend/internal/config"
	"bloodbank-backend/internal/logger"
	"bloodbank-backend/internal/repository"
	"bloodbank-backend/internal/repository/memory"
	"bloodbank-backend/internal/repository/postgres"
	"bloodbank-backend/internal/security"
	"bloodbank-backend/internal/service"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Blood Bank backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "http", cfg.GetServerAddress(), "grpc", cfg.GetGRPCAddress(), "store", cfg.Store.Type)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped. Goodbye!")
}

func run(ctx context.Context, cfg *config.Config) error {
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.Store.Seed {
		if _, err := repository.SeedIfEmpty(ctx, store); err != nil {
			return fmt.Errorf("failed to seed store: %w", err)
		}
	}

	// Optional inventory cache
	var kv cache.KVStore
	if cfg.Redis.Addr != "" {
		client := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer client.Close()
		redisKV := cache.NewRedisKVStore(client, "bloodbank:")
		if err := redisKV.Ping(ctx); err != nil {
			logger.Warn("Redis unavailable, inventory cache will fall back to the store", "addr", cfg.Redis.Addr, "error", err)
		}
		kv = redisKV
		logger.Info("Inventory cache enabled", "addr", cfg.Redis.Addr, "ttl_seconds", cfg.Redis.TTLSeconds)
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// Initialize Services
	var clock service.Clock
	notificationSvc := service.NewNotificationService(store.Notifications(), store.Users(), clock)
	inventorySvc := service.NewInventoryService(store.Inventory(), kv, time.Duration(cfg.Redis.TTLSeconds)*time.Second, clock)
	requestSvc := service.NewRequestService(store.Requests(), store.Users(), notificationSvc, clock)
	donationSvc := service.NewDonationService(store.Donations(), store.Users(), notificationSvc, clock)
	userSvc := service.NewUserService(store.Users(), clock)

	router := httpapi.NewRouter(httpapi.Services{
		Auth:          service.NewAuthService(store.Users(), tokenManager),
		Inventory:     inventorySvc,
		Requests:      requestSvc,
		Donations:     donationSvc,
		Users:         userSvc,
		Notifications: notificationSvc,
		Dashboard:     service.NewDashboardService(inventorySvc, requestSvc, donationSvc, userSvc, notificationSvc, clock),
		Health:        store.Ping,
	}, cfg.Auth)

	httpServer := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if addr := cfg.GetGRPCAddress(); addr != "" {
		monitor := grpcapi.NewHealthMonitor(store.Ping, 30*time.Second)
		grpcServer := grpcapi.NewServer(monitor)
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", addr, err)
		}

		g.Go(func() error {
			monitor.Run(gctx)
			return nil
		})
		g.Go(func() error {
			logger.Info("gRPC health server listening", "address", addr)
			return grpcServer.Serve(lis)
		})
		g.Go(func() error {
			<-gctx.Done()
			grpcServer.GracefulStop()
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openStore returns the configured store and a function releasing it.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, func(), error) {
	if cfg.Store.Type != config.StorePostgres {
		logger.Info("Using in-memory store")
		return memory.NewStore(), func() {}, nil
	}

	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	db, err := postgres.Open(ctx, cfg.GetDatabaseConnectionString(), cfg.Database.MaxOpenConns)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Database connection established")

	if cfg.Database.Migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
	}
	store := postgres.NewStore(db)
	return store, func() { store.Close() }, nil
}
