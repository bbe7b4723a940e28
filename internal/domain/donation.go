package domain

import (
	"strings"
	"time"
)

type DonationStatus string

const (
	DonationStatusScheduled DonationStatus = "scheduled"
	DonationStatusCompleted DonationStatus = "completed"
	DonationStatusCancelled DonationStatus = "cancelled"
)

func (s DonationStatus) Valid() bool {
	switch s {
	case DonationStatusScheduled, DonationStatusCompleted, DonationStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether s -> next is allowed. Only scheduled
// donations move; completed and cancelled are terminal.
func (s DonationStatus) CanTransitionTo(next DonationStatus) bool {
	return s == DonationStatusScheduled &&
		(next == DonationStatusCompleted || next == DonationStatusCancelled)
}

func ValidateDonationTransition(from, to DonationStatus) error {
	if !from.CanTransitionTo(to) {
		return &InvalidTransitionError{Entity: "donation", From: string(from), To: string(to)}
	}
	return nil
}

const (
	// MinDonationIntervalDays is the minimum gap between whole blood donations.
	MinDonationIntervalDays = 56

	MinDonorAge = 17

	// LivesPerDonation approximates the lives one donation helps.
	LivesPerDonation = 3
)

type DonationRecord struct {
	ID               string         `json:"id"`
	DonorID          string         `json:"donor_id"`
	DonorName        string         `json:"donor_name"`
	BloodType        BloodType      `json:"blood_type"`
	UnitsCollected   int            `json:"units_collected"`
	DonationDate     time.Time      `json:"donation_date"`
	Location         string         `json:"location"`
	Status           DonationStatus `json:"status"`
	NextEligibleDate time.Time      `json:"next_eligible_date"`
	HealthChecked    bool           `json:"health_checked"`
	Notes            string         `json:"notes,omitempty"`
}

// Validate checks a donation booking form against today's date.
func (d *DonationRecord) Validate(today time.Time) error {
	if !d.BloodType.Valid() {
		return newValidationError("blood_type", "%q is not a blood type", d.BloodType)
	}
	if d.UnitsCollected < 0 {
		return newValidationError("units_collected", "must not be negative, got %d", d.UnitsCollected)
	}
	if strings.TrimSpace(d.Location) == "" {
		return newValidationError("location", "is required")
	}
	if d.DonationDate.IsZero() {
		return newValidationError("donation_date", "is required")
	}
	if dateOnly(d.DonationDate).Before(dateOnly(today)) {
		return newValidationError("donation_date", "must not be in the past")
	}
	return nil
}

// LatestCompleted returns the most recent completed donation in history.
func LatestCompleted(history []DonationRecord) (DonationRecord, error) {
	var latest DonationRecord
	found := false
	for _, d := range history {
		if d.Status != DonationStatusCompleted {
			continue
		}
		if !found || d.DonationDate.After(latest.DonationDate) {
			latest = d
			found = true
		}
	}
	if !found {
		return DonationRecord{}, &EmptyInputError{Input: "completed donations"}
	}
	return latest, nil
}
