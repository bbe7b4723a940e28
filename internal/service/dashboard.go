package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/logger"
)

// Dashboard is one of DonorDashboard, RecipientDashboard or AdminDashboard.
type Dashboard interface {
	DashboardRole() domain.UserRole
}

type DonorDashboard struct {
	Role           domain.UserRole         `json:"role"`
	Profile        *UserProfile            `json:"profile"`
	History        []domain.DonationRecord `json:"history"`
	Upcoming       []domain.DonationRecord `json:"upcoming"`
	TotalDonations int                     `json:"total_donations"`
	LivesImpacted  int                     `json:"lives_impacted"`
	Eligibility    Eligibility             `json:"eligibility"`
}

func (DonorDashboard) DashboardRole() domain.UserRole { return domain.UserRoleDonor }

type RecipientDashboard struct {
	Role          domain.UserRole              `json:"role"`
	Profile       *UserProfile                 `json:"profile"`
	Requests      []domain.BloodRequest        `json:"requests"`
	Counts        map[domain.RequestStatus]int `json:"counts"`
	Notifications []domain.Notification        `json:"notifications"`
	Unread        int                          `json:"unread"`
}

func (RecipientDashboard) DashboardRole() domain.UserRole { return domain.UserRoleRecipient }

type AdminDashboard struct {
	Role           domain.UserRole              `json:"role"`
	Inventory      domain.InventorySummary      `json:"inventory"`
	RequestCounts  map[domain.RequestStatus]int `json:"request_counts"`
	CriticalAlerts []domain.BloodRequest        `json:"critical_alerts"`
	UserCounts     map[domain.UserRole]int      `json:"user_counts"`
}

func (AdminDashboard) DashboardRole() domain.UserRole { return domain.UserRoleAdmin }

type dashboardService struct {
	inventory     InventoryService
	requests      RequestService
	donations     DonationService
	users         UserService
	notifications NotificationService
	clock         Clock
}

func NewDashboardService(inventory InventoryService, requests RequestService, donations DonationService, users UserService, notifications NotificationService, clock Clock) DashboardService {
	return &dashboardService{
		inventory:     inventory,
		requests:      requests,
		donations:     donations,
		users:         users,
		notifications: notifications,
		clock:         clock,
	}
}

// Build dispatches on the session's role variant.
func (s *dashboardService) Build(ctx context.Context, session domain.Session) (Dashboard, error) {
	logger.EnterMethod("dashboardService.Build", "userID", session.UserID(), "role", session.Role())

	var (
		d   Dashboard
		err error
	)
	switch sess := session.(type) {
	case domain.DonorSession:
		d, err = s.donor(ctx, sess)
	case domain.RecipientSession:
		d, err = s.recipient(ctx, sess)
	case domain.AdminSession:
		d, err = s.admin(ctx)
	default:
		err = fmt.Errorf("no dashboard for role %q", session.Role())
	}
	if err != nil {
		logger.ExitMethodWithError("dashboardService.Build", err, "userID", session.UserID())
		return nil, err
	}
	logger.ExitMethod("dashboardService.Build", "userID", session.UserID())
	return d, nil
}

func (s *dashboardService) donor(ctx context.Context, sess domain.DonorSession) (*DonorDashboard, error) {
	profile, err := s.users.Profile(ctx, sess.UserID())
	if err != nil {
		return nil, err
	}
	history, err := s.donations.History(ctx, sess.UserID())
	if err != nil {
		return nil, err
	}

	d := &DonorDashboard{
		Role:        domain.UserRoleDonor,
		Profile:     profile,
		History:     []domain.DonationRecord{},
		Upcoming:    []domain.DonationRecord{},
		Eligibility: EligibilityFrom(history, s.clock.now()),
	}
	for _, h := range history {
		switch h.Status {
		case domain.DonationStatusCompleted:
			d.History = append(d.History, h)
			d.TotalDonations++
		case domain.DonationStatusScheduled:
			d.Upcoming = append(d.Upcoming, h)
		}
	}
	d.LivesImpacted = d.TotalDonations * domain.LivesPerDonation
	// History is newest first; upcoming reads better soonest first.
	for i, j := 0, len(d.Upcoming)-1; i < j; i, j = i+1, j-1 {
		d.Upcoming[i], d.Upcoming[j] = d.Upcoming[j], d.Upcoming[i]
	}
	return d, nil
}

func (s *dashboardService) recipient(ctx context.Context, sess domain.RecipientSession) (*RecipientDashboard, error) {
	d := &RecipientDashboard{
		Role:          domain.UserRoleRecipient,
		Requests:      []domain.BloodRequest{},
		Notifications: []domain.Notification{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.users.Profile(gctx, sess.UserID())
		d.Profile = p
		return err
	})
	g.Go(func() error {
		reqs, err := s.requests.ListFor(gctx, sess, "")
		if len(reqs) > 0 {
			d.Requests = reqs
		}
		return err
	})
	g.Go(func() error {
		notes, err := s.notifications.List(gctx, sess.UserID())
		if len(notes) > 0 {
			d.Notifications = notes
		}
		return err
	})
	g.Go(func() error {
		unread, err := s.notifications.UnreadCount(gctx, sess.UserID())
		d.Unread = unread
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d.Counts = domain.CountByStatus(d.Requests)
	return d, nil
}

func (s *dashboardService) admin(ctx context.Context) (*AdminDashboard, error) {
	d := &AdminDashboard{Role: domain.UserRoleAdmin}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sum, err := s.inventory.Summary(gctx)
		d.Inventory = sum
		return err
	})
	g.Go(func() error {
		counts, err := s.requests.Counts(gctx)
		d.RequestCounts = counts
		return err
	})
	g.Go(func() error {
		alerts, err := s.requests.CriticalAlerts(gctx)
		d.CriticalAlerts = alerts
		return err
	})
	g.Go(func() error {
		counts, err := s.users.RoleCounts(gctx)
		d.UserCounts = counts
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}
