package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/repository"
)

type DonationRepository struct {
	mu        sync.RWMutex
	donations []domain.DonationRecord
	byID      map[string]int
}

var _ repository.DonationRepository = (*DonationRepository)(nil)

func NewDonationRepository() *DonationRepository {
	return &DonationRepository{byID: map[string]int{}}
}

func (r *DonationRepository) Create(_ context.Context, d *domain.DonationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Status == "" {
		d.Status = domain.DonationStatusScheduled
	}
	r.byID[d.ID] = len(r.donations)
	r.donations = append(r.donations, *d)
	return nil
}

func (r *DonationRepository) GetByID(_ context.Context, id string) (*domain.DonationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	d := r.donations[idx]
	return &d, nil
}

func (r *DonationRepository) List(_ context.Context, filter repository.DonationFilter) ([]domain.DonationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.DonationRecord, 0, len(r.donations))
	for _, d := range r.donations {
		if filter.DonorID != "" && d.DonorID != filter.DonorID {
			continue
		}
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *DonationRepository) UpdateStatus(_ context.Context, id string, from, to domain.DonationStatus) error {
	if err := domain.ValidateDonationTransition(from, to); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if cur := r.donations[idx].Status; cur != from {
		return &domain.InvalidTransitionError{Entity: "donation", From: string(cur), To: string(to)}
	}
	r.donations[idx].Status = to
	return nil
}
