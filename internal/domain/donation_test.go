package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDonationTransition(t *testing.T) {
	assert.NoError(t, ValidateDonationTransition(DonationStatusScheduled, DonationStatusCompleted))
	assert.NoError(t, ValidateDonationTransition(DonationStatusScheduled, DonationStatusCancelled))

	for _, from := range []DonationStatus{DonationStatusCompleted, DonationStatusCancelled} {
		for _, to := range []DonationStatus{DonationStatusScheduled, DonationStatusCompleted, DonationStatusCancelled} {
			assert.True(t, IsInvalidTransition(ValidateDonationTransition(from, to)), "%s -> %s", from, to)
		}
	}
	assert.True(t, IsInvalidTransition(ValidateDonationTransition(DonationStatusScheduled, DonationStatusScheduled)))
}

func TestLatestCompleted(t *testing.T) {
	history := []DonationRecord{
		{ID: "1", DonationDate: day(2023, 7, 10), Status: DonationStatusCompleted},
		{ID: "2", DonationDate: day(2024, 1, 20), Status: DonationStatusScheduled},
		{ID: "3", DonationDate: day(2023, 10, 15), Status: DonationStatusCompleted},
		{ID: "4", DonationDate: day(2023, 12, 1), Status: DonationStatusCancelled},
	}

	latest, err := LatestCompleted(history)
	require.NoError(t, err)
	assert.Equal(t, "3", latest.ID)

	_, err = LatestCompleted(history[1:2])
	assert.True(t, IsEmptyInput(err))

	_, err = LatestCompleted(nil)
	assert.True(t, IsEmptyInput(err))
}

func TestDonationRecordValidate(t *testing.T) {
	today := day(2024, 1, 15)
	d := DonationRecord{
		BloodType:      BloodTypeOPos,
		UnitsCollected: 1,
		DonationDate:   day(2024, 1, 20),
		Location:       "City Medical Center - 123 Healthcare Ave",
	}
	assert.NoError(t, d.Validate(today))

	past := d
	past.DonationDate = day(2024, 1, 10)
	assert.True(t, IsValidation(past.Validate(today)))

	noLocation := d
	noLocation.Location = ""
	assert.True(t, IsValidation(noLocation.Validate(today)))

	negative := d
	negative.UnitsCollected = -1
	assert.True(t, IsValidation(negative.Validate(today)))
}
