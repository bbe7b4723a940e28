package memory

import (
	"context"

	"bloodbank-backend/internal/repository"
)

// Store keeps every record in process memory. It backs the demo deployment
// and the handler tests; data is lost on restart.
type Store struct {
	users         *UserRepository
	requests      *BloodRequestRepository
	donations     *DonationRepository
	inventory     *InventoryRepository
	notifications *NotificationRepository
}

var _ repository.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		users:         NewUserRepository(),
		requests:      NewBloodRequestRepository(),
		donations:     NewDonationRepository(),
		inventory:     NewInventoryRepository(),
		notifications: NewNotificationRepository(),
	}
}

func (s *Store) Users() repository.UserRepository                 { return s.users }
func (s *Store) Requests() repository.BloodRequestRepository      { return s.requests }
func (s *Store) Donations() repository.DonationRepository         { return s.donations }
func (s *Store) Inventory() repository.InventoryRepository        { return s.inventory }
func (s *Store) Notifications() repository.NotificationRepository { return s.notifications }

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}
