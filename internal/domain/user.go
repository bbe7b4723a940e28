package domain

import (
	"strings"
	"time"
)

type UserRole string

const (
	UserRoleDonor     UserRole = "donor"
	UserRoleRecipient UserRole = "recipient"
	UserRoleAdmin     UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleDonor, UserRoleRecipient, UserRoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        UserRole   `json:"role"` // fixed at creation
	Phone       string     `json:"phone"`
	Address     string     `json:"address"`
	BloodType   BloodType  `json:"blood_type"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Validate checks the fields a registration form must supply.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return newValidationError("name", "is required")
	}
	if !strings.Contains(u.Email, "@") {
		return newValidationError("email", "%q is not an email address", u.Email)
	}
	if !u.Role.Valid() {
		return newValidationError("role", "%q is not a role", u.Role)
	}
	if !u.BloodType.Valid() {
		return newValidationError("blood_type", "%q is not a blood type", u.BloodType)
	}
	if u.DateOfBirth != nil && u.DateOfBirth.After(time.Now()) {
		return newValidationError("date_of_birth", "is in the future")
	}
	return nil
}

// MatchesSearch reports whether term occurs, case-insensitively, in the
// user's name, email or blood type. An empty term matches everyone.
func (u *User) MatchesSearch(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(u.Name), term) ||
		strings.Contains(strings.ToLower(u.Email), term) ||
		strings.Contains(strings.ToLower(string(u.BloodType)), term)
}
