package domain

import (
	"math"
	"sort"
	"time"
)

type StockLevel string

const (
	StockLevelCritical StockLevel = "critical"
	StockLevelLow      StockLevel = "low"
	StockLevelModerate StockLevel = "moderate"
	StockLevelGood     StockLevel = "good"
)

// Severity orders stock levels for display emphasis; higher is worse.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityGuarded
	SeverityElevated
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityGuarded:
		return "guarded"
	case SeverityElevated:
		return "elevated"
	case SeverityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Stock thresholds, inclusive upper bounds on available units.
const (
	CriticalStockThreshold = 5
	LowStockThreshold      = 10
	ModerateStockThreshold = 20

	// ExpiryUrgentDays is the horizon at which the next expiry needs attention.
	ExpiryUrgentDays = 3
)

type BloodInventory struct {
	BloodType      BloodType   `json:"blood_type"`
	UnitsAvailable int         `json:"units_available"`
	UnitsReserved  int         `json:"units_reserved"`
	ExpiryDates    []time.Time `json:"expiry_dates"` // not sorted
	LastUpdated    time.Time   `json:"last_updated"`
	Location       string      `json:"location"`
}

func (inv *BloodInventory) Validate() error {
	if !inv.BloodType.Valid() {
		return newValidationError("blood_type", "%q is not a blood type", inv.BloodType)
	}
	if inv.UnitsAvailable < 0 {
		return newValidationError("units_available", "must not be negative, got %d", inv.UnitsAvailable)
	}
	if inv.UnitsReserved < 0 {
		return newValidationError("units_reserved", "must not be negative, got %d", inv.UnitsReserved)
	}
	return nil
}

type StockState struct {
	Level    StockLevel `json:"level"`
	Severity Severity   `json:"severity"`
}

// StockStatus derives the stock category from the available unit count.
// Reserved units are accepted but do not influence the result.
func StockStatus(available, reserved int) StockState {
	switch {
	case available <= CriticalStockThreshold:
		return StockState{Level: StockLevelCritical, Severity: SeverityHigh}
	case available <= LowStockThreshold:
		return StockState{Level: StockLevelLow, Severity: SeverityElevated}
	case available <= ModerateStockThreshold:
		return StockState{Level: StockLevelModerate, Severity: SeverityGuarded}
	default:
		return StockState{Level: StockLevelGood, Severity: SeverityNone}
	}
}

type ExpiryInfo struct {
	Date      time.Time `json:"date"`
	DaysUntil int       `json:"days_until"`
	IsUrgent  bool      `json:"is_urgent"`
}

// NextExpiry finds the earliest expiry date and how many days remain until
// it, rounded up. The input slice is left untouched.
func NextExpiry(expiryDates []time.Time, now time.Time) (ExpiryInfo, error) {
	if len(expiryDates) == 0 {
		return ExpiryInfo{}, &EmptyInputError{Input: "expiry dates"}
	}

	sorted := make([]time.Time, len(expiryDates))
	copy(sorted, expiryDates)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})

	earliest := sorted[0]
	days := int(math.Ceil(earliest.Sub(now).Hours() / 24))
	return ExpiryInfo{
		Date:      earliest,
		DaysUntil: days,
		IsUrgent:  days <= ExpiryUrgentDays,
	}, nil
}

type InventorySummary struct {
	TotalUnits    int `json:"total_units"`
	Available     int `json:"available"`
	Reserved      int `json:"reserved"`
	CriticalCount int `json:"critical_count"`
}

func Summarize(records []BloodInventory) InventorySummary {
	var s InventorySummary
	for _, r := range records {
		s.Available += r.UnitsAvailable
		s.Reserved += r.UnitsReserved
		if StockStatus(r.UnitsAvailable, r.UnitsReserved).Level == StockLevelCritical {
			s.CriticalCount++
		}
	}
	s.TotalUnits = s.Available + s.Reserved
	return s
}
