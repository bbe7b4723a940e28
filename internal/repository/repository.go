package repository

import (
	"context"

	"bloodbank-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns every user, or only those holding role when it is set.
	List(ctx context.Context, role domain.UserRole) ([]domain.User, error)
}

type RequestFilter struct {
	Status      domain.RequestStatus
	RecipientID string
}

type BloodRequestRepository interface {
	Create(ctx context.Context, req *domain.BloodRequest) error
	GetByID(ctx context.Context, id string) (*domain.BloodRequest, error)
	List(ctx context.Context, filter RequestFilter) ([]domain.BloodRequest, error)
	// UpdateStatus moves the request from -> to, failing with
	// *domain.InvalidTransitionError if its stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to domain.RequestStatus) error
}

type DonationFilter struct {
	DonorID string
	Status  domain.DonationStatus
}

type DonationRepository interface {
	Create(ctx context.Context, d *domain.DonationRecord) error
	GetByID(ctx context.Context, id string) (*domain.DonationRecord, error)
	List(ctx context.Context, filter DonationFilter) ([]domain.DonationRecord, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.DonationStatus) error
}

type InventoryRepository interface {
	List(ctx context.Context) ([]domain.BloodInventory, error)
	Create(ctx context.Context, inv *domain.BloodInventory) error
	ListListings(ctx context.Context) ([]domain.BloodBankListing, error)
	CreateListing(ctx context.Context, l *domain.BloodBankListing) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id, userID string) error
}

// Store bundles the repositories a backend provides.
type Store interface {
	Users() UserRepository
	Requests() BloodRequestRepository
	Donations() DonationRepository
	Inventory() InventoryRepository
	Notifications() NotificationRepository
	Ping(ctx context.Context) error
}
