package domain

import (
	"sort"
	"strings"
	"time"
)

type RequestUrgency string

const (
	RequestUrgencyLow      RequestUrgency = "low"
	RequestUrgencyMedium   RequestUrgency = "medium"
	RequestUrgencyHigh     RequestUrgency = "high"
	RequestUrgencyCritical RequestUrgency = "critical"
)

func (u RequestUrgency) Valid() bool {
	return UrgencyRank(u) > 0
}

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusFulfilled RequestStatus = "fulfilled"
	RequestStatusRejected  RequestStatus = "rejected"
)

// AllRequestStatuses lists the statuses in admin tab order.
var AllRequestStatuses = []RequestStatus{
	RequestStatusPending,
	RequestStatusApproved,
	RequestStatusFulfilled,
	RequestStatusRejected,
}

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusFulfilled, RequestStatusRejected:
		return true
	}
	return false
}

var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:  {RequestStatusApproved, RequestStatusRejected},
	RequestStatusApproved: {RequestStatusFulfilled},
}

// CanTransitionTo reports whether the request lifecycle allows s -> next.
// Fulfilled and rejected are terminal.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func ValidateRequestTransition(from, to RequestStatus) error {
	if !from.CanTransitionTo(to) {
		return &InvalidTransitionError{Entity: "blood request", From: string(from), To: string(to)}
	}
	return nil
}

type BloodRequest struct {
	ID              string         `json:"id"`
	RecipientID     string         `json:"recipient_id"`
	RecipientName   string         `json:"recipient_name"`
	BloodType       BloodType      `json:"blood_type"`
	UnitsNeeded     int            `json:"units_needed"`
	Urgency         RequestUrgency `json:"urgency"`
	HospitalName    string         `json:"hospital_name"`
	HospitalAddress string         `json:"hospital_address"`
	ContactNumber   string         `json:"contact_number"`
	MedicalReason   string         `json:"medical_reason"`
	Status          RequestStatus  `json:"status"`
	RequestDate     time.Time      `json:"request_date"`
	RequiredBy      time.Time      `json:"required_by"`
	Notes           string         `json:"notes,omitempty"`
}

// Validate checks a submitted request form. RequiredBy may not fall on a
// day before today.
func (r *BloodRequest) Validate(today time.Time) error {
	if !r.BloodType.Valid() {
		return newValidationError("blood_type", "%q is not a blood type", r.BloodType)
	}
	if r.UnitsNeeded <= 0 {
		return newValidationError("units_needed", "must be a positive number, got %d", r.UnitsNeeded)
	}
	if !r.Urgency.Valid() {
		return newValidationError("urgency", "%q is not an urgency", r.Urgency)
	}
	if strings.TrimSpace(r.HospitalName) == "" {
		return newValidationError("hospital_name", "is required")
	}
	if strings.TrimSpace(r.ContactNumber) == "" {
		return newValidationError("contact_number", "is required")
	}
	if strings.TrimSpace(r.MedicalReason) == "" {
		return newValidationError("medical_reason", "is required")
	}
	if r.RequiredBy.IsZero() {
		return newValidationError("required_by", "is required")
	}
	if dateOnly(r.RequiredBy).Before(dateOnly(today)) {
		return newValidationError("required_by", "must not be in the past")
	}
	return nil
}

// UrgencyRank orders urgencies for triage: critical > high > medium > low.
// Unknown values rank 0.
func UrgencyRank(u RequestUrgency) int {
	switch u {
	case RequestUrgencyLow:
		return 1
	case RequestUrgencyMedium:
		return 2
	case RequestUrgencyHigh:
		return 3
	case RequestUrgencyCritical:
		return 4
	}
	return 0
}

func IsCriticalAlert(r BloodRequest) bool {
	return r.Urgency == RequestUrgencyCritical
}

// SortForTriage orders requests most urgent first, then by the earliest
// RequiredBy. Equal requests keep their input order.
func SortForTriage(reqs []BloodRequest) {
	sort.SliceStable(reqs, func(i, j int) bool {
		ri, rj := UrgencyRank(reqs[i].Urgency), UrgencyRank(reqs[j].Urgency)
		if ri != rj {
			return ri > rj
		}
		return reqs[i].RequiredBy.Before(reqs[j].RequiredBy)
	})
}

func CountByStatus(reqs []BloodRequest) map[RequestStatus]int {
	counts := make(map[RequestStatus]int, len(AllRequestStatuses))
	for _, s := range AllRequestStatuses {
		counts[s] = 0
	}
	for _, r := range reqs {
		counts[r.Status]++
	}
	return counts
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
