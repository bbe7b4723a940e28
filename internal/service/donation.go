package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/logger"
	"bloodbank-backend/internal/repository"
	"bloodbank-backend/internal/utils"
)

// Eligibility describes when a donor may next give blood. LastDonation and
// NextEligibleDate are nil for donors with no completed donation.
type Eligibility struct {
	LastDonation     *time.Time `json:"last_donation,omitempty"`
	NextEligibleDate *time.Time `json:"next_eligible_date,omitempty"`
	Eligible         bool       `json:"eligible"`
	DaysRemaining    int        `json:"days_remaining"`
}

type donationService struct {
	donationRepo repository.DonationRepository
	userRepo     repository.UserRepository
	notifier     NotificationService
	clock        Clock
}

func NewDonationService(donationRepo repository.DonationRepository, userRepo repository.UserRepository, notifier NotificationService, clock Clock) DonationService {
	return &donationService{donationRepo: donationRepo, userRepo: userRepo, notifier: notifier, clock: clock}
}

// EligibilityFrom derives eligibility from a donor's history as of today.
func EligibilityFrom(history []domain.DonationRecord, today time.Time) Eligibility {
	latest, err := domain.LatestCompleted(history)
	if err != nil {
		return Eligibility{Eligible: true}
	}
	last := utils.StartOfDay(latest.DonationDate)
	next := utils.NextEligibleDonation(last)
	remaining := int(next.Sub(utils.StartOfDay(today)).Hours() / 24)
	if remaining < 0 {
		remaining = 0
	}
	return Eligibility{
		LastDonation:     &last,
		NextEligibleDate: &next,
		Eligible:         remaining == 0,
		DaysRemaining:    remaining,
	}
}

func (s *donationService) Schedule(ctx context.Context, session domain.Session, d *domain.DonationRecord) (*domain.DonationRecord, error) {
	logger.EnterMethod("donationService.Schedule", "userID", session.UserID(), "date", d.DonationDate)

	if !session.Capabilities().ScheduleDonations {
		return nil, ErrForbidden
	}
	today := s.clock.now()

	donor, err := s.userRepo.GetByID(ctx, session.UserID())
	if err != nil {
		return nil, fmt.Errorf("failed to load donor: %w", err)
	}
	if d.BloodType == "" {
		d.BloodType = donor.BloodType
	}
	if err := d.Validate(today); err != nil {
		return nil, err
	}

	if donor.DateOfBirth == nil {
		return nil, &domain.ValidationError{Field: "date_of_birth", Message: "is required before scheduling a donation"}
	}
	age, err := utils.Age(*donor.DateOfBirth, d.DonationDate)
	if err != nil {
		return nil, err
	}
	if age < domain.MinDonorAge {
		return nil, &domain.ValidationError{Field: "date_of_birth", Message: fmt.Sprintf("donors must be at least %d years old", domain.MinDonorAge)}
	}

	history, err := s.donationRepo.List(ctx, repository.DonationFilter{DonorID: donor.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to load donation history: %w", err)
	}
	if err := checkDonationInterval(history, d.DonationDate); err != nil {
		return nil, err
	}

	d.ID = ""
	d.DonorID = donor.ID
	d.DonorName = donor.Name
	d.DonationDate = utils.StartOfDay(d.DonationDate)
	d.Status = domain.DonationStatusScheduled
	d.NextEligibleDate = utils.NextEligibleDonation(d.DonationDate)
	if d.UnitsCollected == 0 {
		d.UnitsCollected = 1
	}

	if err := s.donationRepo.Create(ctx, d); err != nil {
		logger.ExitMethodWithError("donationService.Schedule", err, "userID", donor.ID)
		return nil, fmt.Errorf("failed to schedule donation: %w", err)
	}

	logger.ExitMethod("donationService.Schedule", "donationID", d.ID)
	return d, nil
}

// checkDonationInterval rejects a booking on date that falls within the
// minimum donation interval of any scheduled or completed donation, before
// or after it.
func checkDonationInterval(history []domain.DonationRecord, date time.Time) error {
	date = utils.StartOfDay(date)
	for _, h := range history {
		if h.Status == domain.DonationStatusCancelled {
			continue
		}
		other := utils.StartOfDay(h.DonationDate)
		if utils.SameDay(other, date) {
			return &domain.ValidationError{Field: "donation_date", Message: "a donation is already " + string(h.Status) + " on this day"}
		}
		if other.Before(date) {
			if next := utils.NextEligibleDonation(other); date.Before(next) {
				return &domain.ValidationError{
					Field:   "donation_date",
					Message: "donor is not eligible until " + utils.FormatDate(next),
				}
			}
			continue
		}
		if utils.NextEligibleDonation(date).After(other) {
			return &domain.ValidationError{
				Field: "donation_date",
				Message: fmt.Sprintf("must be at least %d days before the donation %s on %s",
					domain.MinDonationIntervalDays, h.Status, utils.FormatDate(other)),
			}
		}
	}
	return nil
}

// Complete records a donation that has taken place. Bookings dated after
// today cannot be completed yet.
func (s *donationService) Complete(ctx context.Context, id string) (*domain.DonationRecord, error) {
	d, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load donation %s: %w", id, err)
	}
	if utils.StartOfDay(d.DonationDate).After(utils.StartOfDay(s.clock.now())) {
		return nil, &domain.ValidationError{
			Field:   "donation_date",
			Message: "donation on " + utils.FormatDate(d.DonationDate) + " has not taken place yet",
		}
	}
	if err := s.donationRepo.UpdateStatus(ctx, id, d.Status, domain.DonationStatusCompleted); err != nil {
		return nil, err
	}
	d.Status = domain.DonationStatusCompleted

	msg := fmt.Sprintf("Thank you for donating at %s. You can donate again from %s.",
		d.Location, utils.FormatDate(d.NextEligibleDate))
	if err := s.notifier.Notify(ctx, d.DonorID, "Donation completed", msg, domain.NotificationTypeSuccess); err != nil {
		logger.Error("Failed to notify donor", "donationID", id, "error", err)
	}
	return d, nil
}

// Cancel is open to the donor who booked the donation and to staff.
func (s *donationService) Cancel(ctx context.Context, session domain.Session, id string) (*domain.DonationRecord, error) {
	d, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load donation %s: %w", id, err)
	}
	if d.DonorID != session.UserID() && !session.Capabilities().ManageDonations {
		return nil, ErrForbidden
	}
	if err := s.donationRepo.UpdateStatus(ctx, id, d.Status, domain.DonationStatusCancelled); err != nil {
		return nil, err
	}
	d.Status = domain.DonationStatusCancelled
	return d, nil
}

func (s *donationService) ListFor(ctx context.Context, session domain.Session, status domain.DonationStatus) ([]domain.DonationRecord, error) {
	if status != "" && !status.Valid() {
		return nil, &domain.ValidationError{Field: "status", Message: fmt.Sprintf("%q is not a donation status", status)}
	}

	filter := repository.DonationFilter{Status: status}
	switch caps := session.Capabilities(); {
	case caps.ManageDonations:
	case caps.ScheduleDonations:
		filter.DonorID = session.UserID()
	default:
		return nil, ErrForbidden
	}

	out, err := s.donationRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *donationService) History(ctx context.Context, donorID string) ([]domain.DonationRecord, error) {
	out, err := s.donationRepo.List(ctx, repository.DonationFilter{DonorID: donorID})
	if err != nil {
		return nil, fmt.Errorf("failed to load donation history: %w", err)
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *donationService) Eligibility(ctx context.Context, donorID string) (*Eligibility, error) {
	if _, err := s.userRepo.GetByID(ctx, donorID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load donor: %w", err)
	}
	history, err := s.History(ctx, donorID)
	if err != nil {
		return nil, err
	}
	e := EligibilityFrom(history, s.clock.now())
	return &e, nil
}

func sortNewestFirst(ds []domain.DonationRecord) {
	sort.SliceStable(ds, func(i, j int) bool {
		return ds[i].DonationDate.After(ds[j].DonationDate)
	})
}
