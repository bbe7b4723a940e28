package memory

import (
	"context"
	"slices"
	"sync"

	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/repository"
)

type InventoryRepository struct {
	mu       sync.RWMutex
	records  []domain.BloodInventory
	listings []domain.BloodBankListing
}

var _ repository.InventoryRepository = (*InventoryRepository)(nil)

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{}
}

func (r *InventoryRepository) List(_ context.Context) ([]domain.BloodInventory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.BloodInventory, len(r.records))
	for i, inv := range r.records {
		out[i] = copyInventory(inv)
	}
	return out, nil
}

func (r *InventoryRepository) Create(_ context.Context, inv *domain.BloodInventory) error {
	if err := inv.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, copyInventory(*inv))
	return nil
}

func (r *InventoryRepository) ListListings(_ context.Context) ([]domain.BloodBankListing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.BloodBankListing, len(r.listings))
	for i, l := range r.listings {
		l.BloodInventory = copyInventory(l.BloodInventory)
		out[i] = l
	}
	return out, nil
}

func (r *InventoryRepository) CreateListing(_ context.Context, l *domain.BloodBankListing) error {
	if err := l.BloodInventory.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *l
	stored.BloodInventory = copyInventory(l.BloodInventory)
	r.listings = append(r.listings, stored)
	return nil
}

func copyInventory(inv domain.BloodInventory) domain.BloodInventory {
	inv.ExpiryDates = slices.Clone(inv.ExpiryDates)
	return inv
}
