package service

import (
	"context"
	"fmt"

	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/logger"
	"bloodbank-backend/internal/repository"
)

type requestService struct {
	reqRepo  repository.BloodRequestRepository
	userRepo repository.UserRepository
	notifier NotificationService
	clock    Clock
}

func NewRequestService(reqRepo repository.BloodRequestRepository, userRepo repository.UserRepository, notifier NotificationService, clock Clock) RequestService {
	return &requestService{reqRepo: reqRepo, userRepo: userRepo, notifier: notifier, clock: clock}
}

func (s *requestService) Create(ctx context.Context, session domain.Session, req *domain.BloodRequest) (*domain.BloodRequest, error) {
	logger.EnterMethod("requestService.Create", "userID", session.UserID(), "bloodType", req.BloodType, "urgency", req.Urgency)

	if !session.Capabilities().RequestBlood {
		return nil, ErrForbidden
	}
	now := s.clock.now()
	if err := req.Validate(now); err != nil {
		return nil, err
	}

	recipient, err := s.userRepo.GetByID(ctx, session.UserID())
	if err != nil {
		return nil, fmt.Errorf("failed to load recipient: %w", err)
	}

	req.ID = ""
	req.RecipientID = recipient.ID
	req.RecipientName = recipient.Name
	req.Status = domain.RequestStatusPending
	req.RequestDate = now

	if err := s.reqRepo.Create(ctx, req); err != nil {
		logger.ExitMethodWithError("requestService.Create", err, "userID", session.UserID())
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if domain.IsCriticalAlert(*req) {
		msg := fmt.Sprintf("%s needs %d unit(s) of %s at %s", req.RecipientName, req.UnitsNeeded, req.BloodType, req.HospitalName)
		if _, err := s.notifier.NotifyRole(ctx, domain.UserRoleAdmin, "Critical blood request", msg, domain.NotificationTypeError); err != nil {
			logger.Error("Failed to alert admins", "requestID", req.ID, "error", err)
		}
	}

	logger.ExitMethod("requestService.Create", "requestID", req.ID)
	return req, nil
}

func (s *requestService) ListFor(ctx context.Context, session domain.Session, status domain.RequestStatus) ([]domain.BloodRequest, error) {
	if status != "" && !status.Valid() {
		return nil, &domain.ValidationError{Field: "status", Message: fmt.Sprintf("%q is not a request status", status)}
	}

	filter := repository.RequestFilter{Status: status}
	switch caps := session.Capabilities(); {
	case caps.ReviewRequests:
	case caps.RequestBlood:
		filter.RecipientID = session.UserID()
	default:
		return nil, ErrForbidden
	}

	reqs, err := s.reqRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	domain.SortForTriage(reqs)
	return reqs, nil
}

func (s *requestService) Approve(ctx context.Context, id string) (*domain.BloodRequest, error) {
	return s.transition(ctx, id, domain.RequestStatusApproved)
}

func (s *requestService) Reject(ctx context.Context, id string) (*domain.BloodRequest, error) {
	return s.transition(ctx, id, domain.RequestStatusRejected)
}

func (s *requestService) Fulfill(ctx context.Context, id string) (*domain.BloodRequest, error) {
	return s.transition(ctx, id, domain.RequestStatusFulfilled)
}

var requestStatusNotices = map[domain.RequestStatus]struct {
	title string
	kind  domain.NotificationType
}{
	domain.RequestStatusApproved:  {"Blood request approved", domain.NotificationTypeSuccess},
	domain.RequestStatusRejected:  {"Blood request rejected", domain.NotificationTypeWarning},
	domain.RequestStatusFulfilled: {"Blood request fulfilled", domain.NotificationTypeInfo},
}

func (s *requestService) transition(ctx context.Context, id string, to domain.RequestStatus) (*domain.BloodRequest, error) {
	logger.EnterMethod("requestService.transition", "requestID", id, "to", to)

	req, err := s.reqRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load request %s: %w", id, err)
	}
	if err := s.reqRepo.UpdateStatus(ctx, id, req.Status, to); err != nil {
		logger.ExitMethodWithError("requestService.transition", err, "requestID", id, "from", req.Status, "to", to)
		return nil, err
	}
	req.Status = to

	notice := requestStatusNotices[to]
	msg := fmt.Sprintf("Your request for %d unit(s) of %s at %s is now %s.", req.UnitsNeeded, req.BloodType, req.HospitalName, to)
	if err := s.notifier.Notify(ctx, req.RecipientID, notice.title, msg, notice.kind); err != nil {
		logger.Error("Failed to notify recipient", "requestID", id, "error", err)
	}

	logger.ExitMethod("requestService.transition", "requestID", id, "status", to)
	return req, nil
}

func (s *requestService) Counts(ctx context.Context) (map[domain.RequestStatus]int, error) {
	reqs, err := s.reqRepo.List(ctx, repository.RequestFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return domain.CountByStatus(reqs), nil
}

// CriticalAlerts returns pending critical requests, earliest deadline first.
func (s *requestService) CriticalAlerts(ctx context.Context) ([]domain.BloodRequest, error) {
	pending, err := s.reqRepo.List(ctx, repository.RequestFilter{Status: domain.RequestStatusPending})
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	alerts := []domain.BloodRequest{}
	for _, r := range pending {
		if domain.IsCriticalAlert(r) {
			alerts = append(alerts, r)
		}
	}
	domain.SortForTriage(alerts)
	return alerts, nil
}
