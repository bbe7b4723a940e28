package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/repository"
)

type BloodRequestRepository struct {
	mu       sync.RWMutex
	requests []domain.BloodRequest
	byID     map[string]int
}

var _ repository.BloodRequestRepository = (*BloodRequestRepository)(nil)

func NewBloodRequestRepository() *BloodRequestRepository {
	return &BloodRequestRepository{byID: map[string]int{}}
}

func (r *BloodRequestRepository) Create(_ context.Context, req *domain.BloodRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Status == "" {
		req.Status = domain.RequestStatusPending
	}
	if req.RequestDate.IsZero() {
		req.RequestDate = time.Now().UTC()
	}
	r.byID[req.ID] = len(r.requests)
	r.requests = append(r.requests, *req)
	return nil
}

func (r *BloodRequestRepository) GetByID(_ context.Context, id string) (*domain.BloodRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	req := r.requests[idx]
	return &req, nil
}

func (r *BloodRequestRepository) List(_ context.Context, filter repository.RequestFilter) ([]domain.BloodRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.BloodRequest, 0, len(r.requests))
	for _, req := range r.requests {
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		if filter.RecipientID != "" && req.RecipientID != filter.RecipientID {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (r *BloodRequestRepository) UpdateStatus(_ context.Context, id string, from, to domain.RequestStatus) error {
	if err := domain.ValidateRequestTransition(from, to); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if cur := r.requests[idx].Status; cur != from {
		return &domain.InvalidTransitionError{Entity: "blood request", From: string(cur), To: string(to)}
	}
	r.requests[idx].Status = to
	return nil
}
