package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/repository"
)

type UserRepository struct {
	mu    sync.RWMutex
	users []domain.User
	byID  map[string]int
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{byID: map[string]int{}}
}

func (r *UserRepository) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return &domain.ValidationError{Field: "email", Message: "is already registered"}
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	r.byID[u.ID] = len(r.users)
	r.users = append(r.users, copyUser(*u))
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u := copyUser(r.users[idx])
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, strings.TrimSpace(email)) {
			u := copyUser(existing)
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *UserRepository) List(_ context.Context, role domain.UserRole) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		if role != "" && u.Role != role {
			continue
		}
		out = append(out, copyUser(u))
	}
	return out, nil
}

func copyUser(u domain.User) domain.User {
	if u.DateOfBirth != nil {
		dob := *u.DateOfBirth
		u.DateOfBirth = &dob
	}
	return u
}
