package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"bloodbank-backend/internal/api/grpc/interceptor"
	"bloodbank-backend/internal/logger"
)

// ServiceName is reported alongside the overall ("") health status.
const ServiceName = "bloodbank.v1.BloodBank"

// NewServer builds a gRPC server exposing grpc.health.v1 and reflection.
func NewServer(monitor *HealthMonitor) *grpc.Server {
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(interceptor.Recovery(), interceptor.Logging()),
	)
	healthpb.RegisterHealthServer(s, monitor.health)
	reflection.Register(s)
	return s
}

// HealthMonitor keeps the health service in step with the store.
type HealthMonitor struct {
	health   *health.Server
	ping     func(ctx context.Context) error
	interval time.Duration
}

func NewHealthMonitor(ping func(ctx context.Context) error, interval time.Duration) *HealthMonitor {
	return &HealthMonitor{health: health.NewServer(), ping: ping, interval: interval}
}

// Check pings the store once and publishes the result.
func (m *HealthMonitor) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	st := healthpb.HealthCheckResponse_SERVING
	if err := m.ping(ctx); err != nil {
		logger.Warn("Store ping failed", "error", err)
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	m.health.SetServingStatus("", st)
	m.health.SetServingStatus(ServiceName, st)
	return st
}

// Run checks on every tick until ctx is done, then reports NOT_SERVING.
func (m *HealthMonitor) Run(ctx context.Context) {
	m.Check(ctx)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.health.Shutdown()
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}
