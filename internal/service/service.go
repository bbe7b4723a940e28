package service

import (
	"context"
	"errors"
	"time"

	"bloodbank-backend/internal/domain"
)

var (
	ErrInvalidCredentials = errors.New("unknown account")
	// ErrForbidden is returned when the session may not act on a record.
	ErrForbidden = errors.New("not permitted for this account")
)

// Clock returns the current time. Nil means time.Now.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

type AuthService interface {
	Login(ctx context.Context, email string) (*domain.User, string, error)
	Register(ctx context.Context, user *domain.User) (*domain.User, string, error)
	Authenticate(ctx context.Context, token string) (domain.Session, error)
}

type InventoryService interface {
	Overview(ctx context.Context) (*InventoryOverview, error)
	Summary(ctx context.Context) (domain.InventorySummary, error)
	Search(ctx context.Context, filter domain.SearchFilter) ([]SearchResult, error)
}

type RequestService interface {
	Create(ctx context.Context, session domain.Session, req *domain.BloodRequest) (*domain.BloodRequest, error)
	// ListFor returns every request for reviewers and the caller's own
	// requests for recipients, most urgent first.
	ListFor(ctx context.Context, session domain.Session, status domain.RequestStatus) ([]domain.BloodRequest, error)
	Approve(ctx context.Context, id string) (*domain.BloodRequest, error)
	Reject(ctx context.Context, id string) (*domain.BloodRequest, error)
	Fulfill(ctx context.Context, id string) (*domain.BloodRequest, error)
	Counts(ctx context.Context) (map[domain.RequestStatus]int, error)
	CriticalAlerts(ctx context.Context) ([]domain.BloodRequest, error)
}

type DonationService interface {
	Schedule(ctx context.Context, session domain.Session, d *domain.DonationRecord) (*domain.DonationRecord, error)
	Complete(ctx context.Context, id string) (*domain.DonationRecord, error)
	Cancel(ctx context.Context, session domain.Session, id string) (*domain.DonationRecord, error)
	ListFor(ctx context.Context, session domain.Session, status domain.DonationStatus) ([]domain.DonationRecord, error)
	History(ctx context.Context, donorID string) ([]domain.DonationRecord, error)
	Eligibility(ctx context.Context, donorID string) (*Eligibility, error)
}

type UserService interface {
	List(ctx context.Context, role domain.UserRole, term string) ([]UserProfile, error)
	Profile(ctx context.Context, id string) (*UserProfile, error)
	RoleCounts(ctx context.Context) (map[domain.UserRole]int, error)
}

type NotificationService interface {
	List(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, userID, id string) error
	UnreadCount(ctx context.Context, userID string) (int, error)
	Notify(ctx context.Context, userID, title, message string, kind domain.NotificationType) error
	NotifyRole(ctx context.Context, role domain.UserRole, title, message string, kind domain.NotificationType) (int, error)
	// NotifyRoleOnce is NotifyRole that skips users who still have the same
	// notification unread.
	NotifyRoleOnce(ctx context.Context, role domain.UserRole, title, message string, kind domain.NotificationType) (int, error)
}

type DashboardService interface {
	Build(ctx context.Context, session domain.Session) (Dashboard, error)
}
