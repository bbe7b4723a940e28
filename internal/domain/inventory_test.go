package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStockStatus(t *testing.T) {
	t.Run("Ranges", func(t *testing.T) {
		for available := 0; available <= 5; available++ {
			assert.Equal(t, StockLevelCritical, StockStatus(available, 0).Level, "available=%d", available)
		}
		for available := 6; available <= 10; available++ {
			assert.Equal(t, StockLevelLow, StockStatus(available, 0).Level, "available=%d", available)
		}
		for available := 11; available <= 20; available++ {
			assert.Equal(t, StockLevelModerate, StockStatus(available, 0).Level, "available=%d", available)
		}
		for _, available := range []int{21, 32, 1000} {
			assert.Equal(t, StockLevelGood, StockStatus(available, 0).Level, "available=%d", available)
		}
	})

	t.Run("Boundaries", func(t *testing.T) {
		tests := []struct {
			available int
			level     StockLevel
			severity  Severity
		}{
			{5, StockLevelCritical, SeverityHigh},
			{6, StockLevelLow, SeverityElevated},
			{10, StockLevelLow, SeverityElevated},
			{11, StockLevelModerate, SeverityGuarded},
			{20, StockLevelModerate, SeverityGuarded},
			{21, StockLevelGood, SeverityNone},
		}
		for _, tt := range tests {
			got := StockStatus(tt.available, 3)
			assert.Equal(t, tt.level, got.Level, "available=%d", tt.available)
			assert.Equal(t, tt.severity, got.Severity, "available=%d", tt.available)
		}
	})

	t.Run("Reserved units are ignored", func(t *testing.T) {
		assert.Equal(t, StockStatus(4, 0), StockStatus(4, 100))
		assert.Equal(t, StockStatus(25, 0), StockStatus(25, 100))
	})
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "high", SeverityHigh.String())
	assert.Equal(t, "none", SeverityNone.String())
	assert.Equal(t, "unknown", Severity(9).String())
}

func TestNextExpiry(t *testing.T) {
	now := day(2024, time.February, 13)

	t.Run("Earliest date wins", func(t *testing.T) {
		dates := []time.Time{day(2024, 2, 20), day(2024, 2, 15), day(2024, 2, 25)}
		info, err := NextExpiry(dates, now)
		require.NoError(t, err)
		assert.Equal(t, day(2024, 2, 15), info.Date)
		assert.Equal(t, 2, info.DaysUntil)
		assert.True(t, info.IsUrgent)
	})

	t.Run("Input order is preserved", func(t *testing.T) {
		dates := []time.Time{day(2024, 2, 20), day(2024, 2, 15)}
		_, err := NextExpiry(dates, now)
		require.NoError(t, err)
		assert.Equal(t, day(2024, 2, 20), dates[0])
	})

	t.Run("Idempotent under shuffling", func(t *testing.T) {
		dates := []time.Time{day(2024, 2, 13), day(2024, 2, 17), day(2024, 2, 21), day(2024, 2, 26), day(2024, 3, 2)}
		want, err := NextExpiry(dates, now)
		require.NoError(t, err)

		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 20; i++ {
			shuffled := append([]time.Time(nil), dates...)
			rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
			got, err := NextExpiry(shuffled, now)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("Partial days round up", func(t *testing.T) {
		morning := now.Add(9 * time.Hour)
		info, err := NextExpiry([]time.Time{day(2024, 2, 17)}, morning)
		require.NoError(t, err)
		assert.Equal(t, 4, info.DaysUntil)
		assert.False(t, info.IsUrgent)
	})

	t.Run("Urgency boundary", func(t *testing.T) {
		info, err := NextExpiry([]time.Time{day(2024, 2, 16)}, now)
		require.NoError(t, err)
		assert.Equal(t, 3, info.DaysUntil)
		assert.True(t, info.IsUrgent)
	})

	t.Run("Already expired", func(t *testing.T) {
		info, err := NextExpiry([]time.Time{day(2024, 2, 10)}, now)
		require.NoError(t, err)
		assert.Equal(t, -3, info.DaysUntil)
		assert.True(t, info.IsUrgent)
	})

	t.Run("Empty input", func(t *testing.T) {
		_, err := NextExpiry(nil, now)
		assert.Error(t, err)
		assert.True(t, IsEmptyInput(err))
	})
}

func TestBloodInventoryValidate(t *testing.T) {
	inv := BloodInventory{BloodType: BloodTypeOPos, UnitsAvailable: 3, UnitsReserved: 1}
	assert.NoError(t, inv.Validate())

	inv.UnitsAvailable = -1
	assert.True(t, IsValidation(inv.Validate()))

	inv.UnitsAvailable, inv.UnitsReserved = 1, -2
	assert.True(t, IsValidation(inv.Validate()))

	inv.UnitsReserved, inv.BloodType = 0, "C+"
	assert.True(t, IsValidation(inv.Validate()))
}

func TestSummarize(t *testing.T) {
	records := []BloodInventory{
		{BloodType: BloodTypeAPos, UnitsAvailable: 25, UnitsReserved: 5},
		{BloodType: BloodTypeABNeg, UnitsAvailable: 3, UnitsReserved: 1},
		{BloodType: BloodTypeONeg, UnitsAvailable: 6, UnitsReserved: 2},
		{BloodType: BloodTypeBNeg, UnitsAvailable: 5, UnitsReserved: 0},
	}

	s := Summarize(records)
	assert.Equal(t, 39, s.Available)
	assert.Equal(t, 8, s.Reserved)
	assert.Equal(t, 47, s.TotalUnits)
	assert.Equal(t, 2, s.CriticalCount)
	assert.Equal(t, InventorySummary{}, Summarize(nil))
}
