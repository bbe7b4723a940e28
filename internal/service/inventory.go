package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bloodbank-backend/internal/cache"
	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/logger"
	"bloodbank-backend/internal/repository"
	"bloodbank-backend/internal/utils"
)

// InventoryStatus is an inventory record with its derived stock state and
// next expiry. NextExpiry is nil when the record lists no expiry dates.
type InventoryStatus struct {
	domain.BloodInventory
	Stock      domain.StockState  `json:"stock"`
	NextExpiry *domain.ExpiryInfo `json:"next_expiry,omitempty"`
}

type InventoryOverview struct {
	Records     []InventoryStatus       `json:"records"`
	Summary     domain.InventorySummary `json:"summary"`
	GeneratedAt time.Time               `json:"generated_at"`
}

type SearchResult struct {
	domain.BloodBankListing
	Stock domain.StockState `json:"stock"`
}

type inventoryService struct {
	invRepo  repository.InventoryRepository
	kv       cache.KVStore
	cacheTTL time.Duration
	clock    Clock
}

// NewInventoryService builds the service. kv may be nil to disable caching.
func NewInventoryService(invRepo repository.InventoryRepository, kv cache.KVStore, cacheTTL time.Duration, clock Clock) InventoryService {
	return &inventoryService{invRepo: invRepo, kv: kv, cacheTTL: cacheTTL, clock: clock}
}

// BuildOverview derives stock state and next expiry for every record.
func BuildOverview(records []domain.BloodInventory, now time.Time) *InventoryOverview {
	out := &InventoryOverview{
		Records:     make([]InventoryStatus, 0, len(records)),
		Summary:     domain.Summarize(records),
		GeneratedAt: now,
	}
	for _, r := range records {
		st := InventoryStatus{
			BloodInventory: r,
			Stock:          domain.StockStatus(r.UnitsAvailable, r.UnitsReserved),
		}
		if info, err := domain.NextExpiry(r.ExpiryDates, now); err == nil {
			st.NextExpiry = &info
		}
		out.Records = append(out.Records, st)
	}
	return out
}

// Days until expiry only change at midnight, so one cache entry per day.
func overviewCacheKey(now time.Time) string {
	return "inventory:overview:" + utils.FormatDate(now)
}

func (s *inventoryService) Overview(ctx context.Context) (*InventoryOverview, error) {
	now := s.clock.now()
	key := overviewCacheKey(now)

	if s.kv != nil {
		var cached InventoryOverview
		err := cache.GetJSON(ctx, s.kv, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Warn("Inventory cache unavailable, reading store", "error", err)
		}
	}

	records, err := s.invRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	overview := BuildOverview(records, now)

	if s.kv != nil {
		if err := cache.SetJSON(ctx, s.kv, key, overview, s.cacheTTL); err != nil {
			logger.Warn("Failed to cache inventory overview", "error", err)
		}
	}
	return overview, nil
}

func (s *inventoryService) Summary(ctx context.Context) (domain.InventorySummary, error) {
	overview, err := s.Overview(ctx)
	if err != nil {
		return domain.InventorySummary{}, err
	}
	return overview.Summary, nil
}

func (s *inventoryService) Search(ctx context.Context, filter domain.SearchFilter) ([]SearchResult, error) {
	listings, err := s.invRepo.ListListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list blood banks: %w", err)
	}
	matched, err := domain.SearchInventory(listings, filter)
	if err != nil {
		return nil, err
	}
	results := make([]SearchResult, len(matched))
	for i, l := range matched {
		results[i] = SearchResult{
			BloodBankListing: l,
			Stock:            domain.StockStatus(l.UnitsAvailable, l.UnitsReserved),
		}
	}
	return results, nil
}
