package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/repository"
	"bloodbank-backend/internal/repository/memory"
	"bloodbank-backend/internal/service"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockRequestRepo
type MockRequestRepo struct {
	mock.Mock
}

func (m *MockRequestRepo) Create(ctx context.Context, req *domain.BloodRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRequestRepo) GetByID(ctx context.Context, id string) (*domain.BloodRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BloodRequest), args.Error(1)
}
func (m *MockRequestRepo) List(ctx context.Context, filter repository.RequestFilter) ([]domain.BloodRequest, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.BloodRequest), args.Error(1)
}
func (m *MockRequestRepo) UpdateStatus(ctx context.Context, id string, from, to domain.RequestStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

// MockInventoryRepo
type MockInventoryRepo struct {
	mock.Mock
}

func (m *MockInventoryRepo) List(ctx context.Context) ([]domain.BloodInventory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.BloodInventory), args.Error(1)
}
func (m *MockInventoryRepo) Create(ctx context.Context, inv *domain.BloodInventory) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
func (m *MockInventoryRepo) ListListings(ctx context.Context) ([]domain.BloodBankListing, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.BloodBankListing), args.Error(1)
}
func (m *MockInventoryRepo) CreateListing(ctx context.Context, l *domain.BloodBankListing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

// MockNotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
func (m *MockNotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
func (m *MockNotificationService) Notify(ctx context.Context, userID, title, message string, kind domain.NotificationType) error {
	args := m.Called(ctx, userID, title, message, kind)
	return args.Error(0)
}
func (m *MockNotificationService) NotifyRole(ctx context.Context, role domain.UserRole, title, message string, kind domain.NotificationType) (int, error) {
	args := m.Called(ctx, role, title, message, kind)
	return args.Int(0), args.Error(1)
}
func (m *MockNotificationService) NotifyRoleOnce(ctx context.Context, role domain.UserRole, title, message string, kind domain.NotificationType) (int, error) {
	args := m.Called(ctx, role, title, message, kind)
	return args.Int(0), args.Error(1)
}

// MockKVStore
type MockKVStore struct {
	mock.Mock
}

func (m *MockKVStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}
func (m *MockKVStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}
func (m *MockKVStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func fixedClock(y int, m time.Month, d int) service.Clock {
	return func() time.Time { return time.Date(y, m, d, 9, 0, 0, 0, time.UTC) }
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, repository.Seed(context.Background(), store))
	return store
}

func mustSession(t *testing.T, userID string, role domain.UserRole) domain.Session {
	t.Helper()
	s, err := domain.NewSession(userID, role)
	require.NoError(t, err)
	return s
}
