package services

import (
	"context"
	"testing"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/repositories"
	"github.com/LEGENDANISH/UMS/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewUserService(repositories.NewUserRepository(db), newTestAudit(t, db)), db
}

func TestListUsersFiltered(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	active, _ := createTestStudent(t, db, "active@ums.com", "CS2024110")
	inactive, _ := createTestStudent(t, db, "inactive@ums.com", "CS2024111")
	require.NoError(t, repositories.NewUserRepository(db).SetActive(ctx, inactive.ID, false))

	isActive := true
	users, total, err := svc.List(ctx, domain.RoleStudent.String(), &isActive, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, active.ID, users[0].ID)

	_, total, err = svc.List(ctx, "", nil, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestDeactivateUser(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	user, _ := createTestStudent(t, db, "bye@ums.com", "CS2024112")

	require.NoError(t, svc.Deactivate(ctx, user.ID, adminIdentity(), "127.0.0.1"))

	got, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	err = svc.Deactivate(ctx, 999, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateStudentOwnership(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	ownerUser, owner := createTestStudent(t, db, "profile@ums.com", "CS2024113")
	otherUser, other := createTestStudent(t, db, "peer@ums.com", "CS2024114")

	patch := &models.Student{Phone: "9876543210"}
	_, err := svc.UpdateStudent(ctx, owner.ID, patch, studentIdentity(otherUser, other))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := svc.UpdateStudent(ctx, owner.ID, patch, studentIdentity(ownerUser, owner))
	require.NoError(t, err)
	assert.Equal(t, "9876543210", updated.Phone)

	updated, err = svc.UpdateStudent(ctx, owner.ID, &models.Student{Address: "Hostel A"}, adminIdentity())
	require.NoError(t, err)
	assert.Equal(t, "Hostel A", updated.Address)
}
