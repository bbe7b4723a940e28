package domain

import (
	"math"
	"sort"
	"strings"
)

type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityLow       Availability = "low"
	AvailabilityAll       Availability = "all"
)

// BloodBankListing is an inventory record offered by a blood bank, with the
// distance from the searcher precomputed.
type BloodBankListing struct {
	BloodInventory
	CenterName string  `json:"center_name"`
	Phone      string  `json:"phone"`
	DistanceKm float64 `json:"distance_km"`
}

type SearchFilter struct {
	BloodType    BloodType    `json:"blood_type,omitempty"` // empty matches any
	Location     string       `json:"location,omitempty"`
	RadiusKm     float64      `json:"radius_km,omitempty"` // 0 means unlimited
	Availability Availability `json:"availability,omitempty"`
}

func (f SearchFilter) Validate() error {
	if f.BloodType != "" && !f.BloodType.Valid() {
		return newValidationError("blood_type", "%q is not a blood type", f.BloodType)
	}
	if f.RadiusKm < 0 || math.IsNaN(f.RadiusKm) {
		return newValidationError("radius", "must be a non-negative number")
	}
	switch f.Availability {
	case "", AvailabilityAll, AvailabilityAvailable, AvailabilityLow:
	default:
		return newValidationError("availability", "%q is not one of available, low, all", f.Availability)
	}
	return nil
}

func (f SearchFilter) matches(l BloodBankListing) bool {
	if f.BloodType != "" && l.BloodType != f.BloodType {
		return false
	}
	if loc := strings.ToLower(strings.TrimSpace(f.Location)); loc != "" {
		if !strings.Contains(strings.ToLower(l.Location), loc) &&
			!strings.Contains(strings.ToLower(l.CenterName), loc) {
			return false
		}
	}
	if f.RadiusKm > 0 && l.DistanceKm > f.RadiusKm {
		return false
	}

	level := StockStatus(l.UnitsAvailable, l.UnitsReserved).Level
	switch f.Availability {
	case AvailabilityAvailable:
		return level == StockLevelModerate || level == StockLevelGood
	case AvailabilityLow:
		return level == StockLevelCritical || level == StockLevelLow
	}
	return true
}

// SearchInventory returns the listings matching every filter, nearest
// first. Listings at equal distance keep their input order.
func SearchInventory(records []BloodBankListing, filter SearchFilter) ([]BloodBankListing, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	results := make([]BloodBankListing, 0, len(records))
	for _, r := range records {
		if filter.matches(r) {
			results = append(results, r)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})
	return results, nil
}
