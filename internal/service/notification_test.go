package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/service"
)

func TestNotificationService(t *testing.T) {
	store := seededStore(t)
	clock := fixedClock(2024, time.January, 15)
	svc := service.NewNotificationService(store.Notifications(), store.Users(), clock)
	ctx := context.Background()

	sent, err := svc.NotifyRole(ctx, domain.UserRoleRecipient, "Drive", "Blood drive on Saturday", domain.NotificationTypeInfo)
	require.NoError(t, err)
	assert.Equal(t, 3, sent)

	require.NoError(t, svc.Notify(ctx, "2", "Approved", "Your request was approved", domain.NotificationTypeSuccess))

	notes, err := svc.List(ctx, "2")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "Approved", notes[0].Title)
	assert.Equal(t, clock(), notes[0].CreatedAt)

	unread, err := svc.UnreadCount(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	assert.ErrorIs(t, svc.MarkAsRead(ctx, "4", notes[0].ID), domain.ErrNotFound)
	require.NoError(t, svc.MarkAsRead(ctx, "2", notes[0].ID))

	unread, err = svc.UnreadCount(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	none, err := svc.List(ctx, "demo-admin")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNotificationService_NotifyRoleOnce(t *testing.T) {
	store := seededStore(t)
	svc := service.NewNotificationService(store.Notifications(), store.Users(), fixedClock(2024, time.January, 15))
	ctx := context.Background()

	sent, err := svc.NotifyRoleOnce(ctx, domain.UserRoleRecipient, "Drive", "Blood drive on Saturday", domain.NotificationTypeInfo)
	require.NoError(t, err)
	assert.Equal(t, 3, sent)

	sent, err = svc.NotifyRoleOnce(ctx, domain.UserRoleRecipient, "Drive", "Blood drive on Saturday", domain.NotificationTypeInfo)
	require.NoError(t, err)
	assert.Equal(t, 0, sent, "everyone still has it unread")

	notes, err := svc.List(ctx, "2")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.NoError(t, svc.MarkAsRead(ctx, "2", notes[0].ID))

	sent, err = svc.NotifyRoleOnce(ctx, domain.UserRoleRecipient, "Drive", "Blood drive on Saturday", domain.NotificationTypeInfo)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	sent, err = svc.NotifyRoleOnce(ctx, domain.UserRoleRecipient, "Drive", "Blood drive on Sunday", domain.NotificationTypeInfo)
	require.NoError(t, err)
	assert.Equal(t, 3, sent)
}
