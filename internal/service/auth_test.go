package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/security"
	"bloodbank-backend/internal/service"
)

const testSecret = "test-secret-key-that-is-at-least-32-chars"

func TestAuthService_Login(t *testing.T) {
	repo := new(MockUserRepo)
	tokens := security.NewTokenManager(testSecret, time.Hour)
	svc := service.NewAuthService(repo, tokens)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		user := &domain.User{ID: "u1", Email: "donor@test.com", Name: "John", Role: domain.UserRoleDonor, BloodType: domain.BloodTypeOPos}
		repo.On("GetByEmail", ctx, "donor@test.com").Return(user, nil).Once()

		got, token, err := svc.Login(ctx, "  donor@test.com ")
		require.NoError(t, err)
		assert.Equal(t, "u1", got.ID)
		assert.NotEmpty(t, token)

		session, err := svc.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.IsType(t, domain.DonorSession{}, session)
		assert.Equal(t, "u1", session.UserID())
		repo.AssertExpectations(t)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo.On("GetByEmail", ctx, "nobody@test.com").Return(nil, domain.ErrNotFound).Once()

		_, _, err := svc.Login(ctx, "nobody@test.com")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("EmptyEmail", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "  ")
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("StoreFailure", func(t *testing.T) {
		boom := errors.New("connection reset")
		repo.On("GetByEmail", ctx, "admin@bloodbank.com").Return(nil, boom).Once()

		_, _, err := svc.Login(ctx, "admin@bloodbank.com")
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthService_Register(t *testing.T) {
	repo := new(MockUserRepo)
	svc := service.NewAuthService(repo, security.NewTokenManager(testSecret, time.Hour))
	ctx := context.Background()

	t.Run("Recipient", func(t *testing.T) {
		repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.User).ID = "new-id" }).
			Return(nil).Once()

		user, token, err := svc.Register(ctx, &domain.User{
			ID:        "caller-chosen",
			Email:     "new@test.com",
			Name:      "New Recipient",
			Role:      domain.UserRoleRecipient,
			BloodType: domain.BloodTypeABNeg,
		})
		require.NoError(t, err)
		assert.Equal(t, "new-id", user.ID)

		session, err := svc.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, domain.UserRoleRecipient, session.Role())
		repo.AssertExpectations(t)
	})

	t.Run("AdminRefused", func(t *testing.T) {
		repo.ExpectedCalls = nil
		_, _, err := svc.Register(ctx, &domain.User{
			Email: "boss@test.com", Name: "Boss", Role: domain.UserRoleAdmin, BloodType: domain.BloodTypeAPos,
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "role", verr.Field)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("InvalidForm", func(t *testing.T) {
		_, _, err := svc.Register(ctx, &domain.User{Email: "no-at-sign", Name: "X", Role: domain.UserRoleDonor, BloodType: domain.BloodTypeAPos})
		assert.True(t, domain.IsValidation(err))
	})
}

func TestAuthService_AuthenticateRejectsGarbage(t *testing.T) {
	svc := service.NewAuthService(new(MockUserRepo), security.NewTokenManager(testSecret, time.Hour))
	_, err := svc.Authenticate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}
