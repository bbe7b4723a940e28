package utils

import (
	"testing"
	"time"

	"bloodbank-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestParseDate(t *testing.T) {
	t.Run("Valid date", func(t *testing.T) {
		date, err := ParseDate("2024-01-15")
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), date)
	})

	t.Run("Invalid format", func(t *testing.T) {
		_, err := ParseDate("2024/01/15")
		assert.Error(t, err)
		assert.True(t, domain.IsValidation(err))
		assert.Contains(t, err.Error(), "invalid date format")
	})

	t.Run("Invalid month", func(t *testing.T) {
		_, err := ParseDate("2024-13-15")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "month must be between 1 and 12")
	})

	t.Run("Day past end of month", func(t *testing.T) {
		_, err := ParseDate("2023-02-29")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "day must be between 1 and 28")
	})
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year     int
		month    int
		expected int
	}{
		{2024, 1, 31},
		{2024, 2, 29},
		{2023, 2, 28},
		{2024, 4, 30},
		{2000, 2, 29},
		{1900, 2, 28},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DaysInMonth(tt.year, tt.month), "%d-%02d", tt.year, tt.month)
	}
}

func TestAge(t *testing.T) {
	tests := []struct {
		name  string
		dob   string
		today string
		want  int
	}{
		{"Day before birthday", "2000-06-15", "2024-06-14", 23},
		{"On birthday", "2000-06-15", "2024-06-15", 24},
		{"Earlier month", "1985-03-15", "2024-01-20", 38},
		{"Leap day birthday before Mar 1", "2004-02-29", "2023-02-28", 18},
		{"Leap day birthday on Mar 1", "2004-02-29", "2023-03-01", 19},
		{"Born today", "2024-05-05", "2024-05-05", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Age(mustDate(t, tt.dob), mustDate(t, tt.today))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("Birth after today", func(t *testing.T) {
		_, err := Age(mustDate(t, "2030-01-01"), mustDate(t, "2024-01-01"))
		assert.True(t, domain.IsValidation(err))
	})
}

func TestNextEligibleDonation(t *testing.T) {
	assert.Equal(t, "2023-12-10", FormatDate(NextEligibleDonation(mustDate(t, "2023-10-15"))))
	assert.Equal(t, "2024-03-11", FormatDate(NextEligibleDonation(mustDate(t, "2024-01-15"))))

	// Time of day is ignored.
	last := time.Date(2023, time.October, 15, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "2023-12-10", FormatDate(NextEligibleDonation(last)))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, time.March, 1, 0, 0, 1, 0, time.UTC)
	b := time.Date(2024, time.March, 1, 23, 59, 0, 0, time.UTC)
	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, b.AddDate(0, 0, 1)))
}
