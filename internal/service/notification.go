package service

import (
	"context"
	"fmt"

	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/logger"
	"bloodbank-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
	userRepo repository.UserRepository
	clock    Clock
}

func NewNotificationService(noteRepo repository.NotificationRepository, userRepo repository.UserRepository, clock Clock) NotificationService {
	return &notificationService{noteRepo: noteRepo, userRepo: userRepo, clock: clock}
}

func (s *notificationService) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.noteRepo.List(ctx, userID)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, id string) error {
	return s.noteRepo.MarkAsRead(ctx, id, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	notes, err := s.noteRepo.List(ctx, userID)
	if err != nil {
		return 0, err
	}
	unread := 0
	for _, n := range notes {
		if !n.Read {
			unread++
		}
	}
	return unread, nil
}

func (s *notificationService) hasUnread(ctx context.Context, userID, title, message string) (bool, error) {
	notes, err := s.noteRepo.List(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, n := range notes {
		if !n.Read && n.Title == title && n.Message == message {
			return true, nil
		}
	}
	return false, nil
}

func (s *notificationService) Notify(ctx context.Context, userID, title, message string, kind domain.NotificationType) error {
	n := &domain.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      kind,
		CreatedAt: s.clock.now(),
	}
	if err := s.noteRepo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to notify user %s: %w", userID, err)
	}
	return nil
}

// NotifyRole sends the same notification to every user holding role and
// returns how many were created.
func (s *notificationService) NotifyRole(ctx context.Context, role domain.UserRole, title, message string, kind domain.NotificationType) (int, error) {
	return s.notifyRole(ctx, role, title, message, kind, false)
}

func (s *notificationService) NotifyRoleOnce(ctx context.Context, role domain.UserRole, title, message string, kind domain.NotificationType) (int, error) {
	return s.notifyRole(ctx, role, title, message, kind, true)
}

func (s *notificationService) notifyRole(ctx context.Context, role domain.UserRole, title, message string, kind domain.NotificationType, once bool) (int, error) {
	users, err := s.userRepo.List(ctx, role)
	if err != nil {
		return 0, fmt.Errorf("failed to list %s users: %w", role, err)
	}
	sent := 0
	for _, u := range users {
		if once {
			pending, err := s.hasUnread(ctx, u.ID, title, message)
			if err != nil {
				logger.Error("Failed to check notifications", "userID", u.ID, "error", err)
				continue
			}
			if pending {
				continue
			}
		}
		if err := s.Notify(ctx, u.ID, title, message, kind); err != nil {
			logger.Error("Failed to notify user", "userID", u.ID, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}
