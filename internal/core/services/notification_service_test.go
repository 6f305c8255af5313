package services

import (
	"context"
	"testing"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/repositories"
	"github.com/LEGENDANISH/UMS/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNotificationService(t *testing.T) (*NotificationService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewNotificationService(
		repositories.NewNotificationRepository(db),
		repositories.NewUserRepository(db),
	), db
}

func TestSendNotification(t *testing.T) {
	svc, db := newNotificationService(t)
	ctx := context.Background()

	user, _ := createTestStudent(t, db, "inbox@ums.com", "CS2024100")

	notification, err := svc.Send(ctx, &NotificationInput{
		UserID:  user.ID,
		Title:   "Fee payment due",
		Message: "Your semester fee is due in 3 days",
		Type:    "FEE",
	})
	require.NoError(t, err)
	assert.False(t, notification.IsRead)
	assert.Equal(t, "FEE", notification.Type)

	// Missing type falls back to GENERAL
	general, err := svc.Send(ctx, &NotificationInput{UserID: user.ID, Title: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, "GENERAL", general.Type)

	_, err = svc.Send(ctx, &NotificationInput{UserID: 999, Title: "Nobody"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestNotificationsScopedToOwner(t *testing.T) {
	svc, db := newNotificationService(t)
	ctx := context.Background()

	ownerUser, owner := createTestStudent(t, db, "mine@ums.com", "CS2024101")
	otherUser, other := createTestStudent(t, db, "theirs@ums.com", "CS2024102")

	notification, err := svc.Send(ctx, &NotificationInput{UserID: ownerUser.ID, Title: "For you"})
	require.NoError(t, err)

	// The other user cannot see, read or delete it
	list, total, err := svc.ListMine(ctx, studentIdentity(otherUser, other), nil, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)

	err = svc.MarkRead(ctx, notification.ID, studentIdentity(otherUser, other))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.Delete(ctx, notification.ID, studentIdentity(otherUser, other))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The owner can
	err = svc.MarkRead(ctx, notification.ID, studentIdentity(ownerUser, owner))
	require.NoError(t, err)

	read := true
	list, total, err = svc.ListMine(ctx, studentIdentity(ownerUser, owner), &read, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsRead)
}

func TestMarkAllRead(t *testing.T) {
	svc, db := newNotificationService(t)
	ctx := context.Background()

	user, student := createTestStudent(t, db, "bulk@ums.com", "CS2024103")
	actor := studentIdentity(user, student)

	for _, title := range []string{"One", "Two", "Three"} {
		_, err := svc.Send(ctx, &NotificationInput{UserID: user.ID, Title: title})
		require.NoError(t, err)
	}

	require.NoError(t, svc.MarkAllRead(ctx, actor))

	unread := false
	_, total, err := svc.ListMine(ctx, actor, &unread, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}
