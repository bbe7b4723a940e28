package service

import (
	"context"
	"fmt"

	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/repository"
	"bloodbank-backend/internal/utils"
)

// UserProfile is a user with the age derived from their date of birth.
type UserProfile struct {
	domain.User
	Age *int `json:"age,omitempty"`
}

type userService struct {
	userRepo repository.UserRepository
	clock    Clock
}

func NewUserService(userRepo repository.UserRepository, clock Clock) UserService {
	return &userService{userRepo: userRepo, clock: clock}
}

func (s *userService) profile(u domain.User) UserProfile {
	p := UserProfile{User: u}
	if u.DateOfBirth != nil {
		if age, err := utils.Age(*u.DateOfBirth, s.clock.now()); err == nil {
			p.Age = &age
		}
	}
	return p
}

// List returns users in the role tab (all roles when empty) whose name,
// email or blood type contains term.
func (s *userService) List(ctx context.Context, role domain.UserRole, term string) ([]UserProfile, error) {
	if role != "" && !role.Valid() {
		return nil, &domain.ValidationError{Field: "role", Message: fmt.Sprintf("%q is not a role", role)}
	}
	users, err := s.userRepo.List(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	out := make([]UserProfile, 0, len(users))
	for _, u := range users {
		if u.MatchesSearch(term) {
			out = append(out, s.profile(u))
		}
	}
	return out, nil
}

func (s *userService) Profile(ctx context.Context, id string) (*UserProfile, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p := s.profile(*u)
	return &p, nil
}

// RoleCounts counts users per role. The "" key holds the total.
func (s *userService) RoleCounts(ctx context.Context) (map[domain.UserRole]int, error) {
	users, err := s.userRepo.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	counts := map[domain.UserRole]int{
		"":                       len(users),
		domain.UserRoleDonor:     0,
		domain.UserRoleRecipient: 0,
		domain.UserRoleAdmin:     0,
	}
	for _, u := range users {
		counts[u.Role]++
	}
	return counts, nil
}
