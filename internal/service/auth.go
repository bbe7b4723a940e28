package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/logger"
	"bloodbank-backend/internal/repository"
	"bloodbank-backend/internal/security"
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

// Login signs in by email alone; the demo has no credential store.
func (s *authService) Login(ctx context.Context, email string) (*domain.User, string, error) {
	logger.EnterMethod("authService.Login", "email", email)

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, "", &domain.ValidationError{Field: "email", Message: "is required"}
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Warn("Login for unknown email", "email", email)
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		logger.ExitMethodWithError("authService.Login", err, "email", email)
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		logger.ExitMethodWithError("authService.Login", err, "userID", user.ID)
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	logger.ExitMethod("authService.Login", "userID", user.ID, "role", user.Role)
	return user, token, nil
}

// Register creates a donor or recipient account and signs it in. Admin
// accounts cannot be self-registered.
func (s *authService) Register(ctx context.Context, user *domain.User) (*domain.User, string, error) {
	logger.EnterMethod("authService.Register", "email", user.Email, "role", user.Role)

	user.ID = ""
	user.Email = strings.TrimSpace(user.Email)
	if err := user.Validate(); err != nil {
		return nil, "", err
	}
	if user.Role == domain.UserRoleAdmin {
		return nil, "", &domain.ValidationError{Field: "role", Message: "admin accounts cannot be self-registered"}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ExitMethodWithError("authService.Register", err, "email", user.Email)
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	logger.ExitMethod("authService.Register", "userID", user.ID)
	return user, token, nil
}

// Authenticate resolves a bearer token into the role variant session.
func (s *authService) Authenticate(ctx context.Context, token string) (domain.Session, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	return claims.Session()
}
