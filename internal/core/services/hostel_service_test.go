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

func newHostelService(t *testing.T) (*HostelService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewHostelService(
		repositories.NewHostelRepository(db),
		repositories.NewUserRepository(db),
		newTestAudit(t, db),
	)
	return svc, db
}

func createTestRoom(t *testing.T, svc *HostelService, capacity int) *models.HostelRoom {
	t.Helper()
	ctx := context.Background()

	hostel, err := svc.CreateHostel(ctx, &HostelInput{
		Name:       "North Block",
		Type:       "BOYS",
		TotalRooms: 50,
	}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	room, err := svc.CreateRoom(ctx, &RoomInput{
		HostelID:       hostel.ID,
		RoomNumber:     "A-101",
		Capacity:       capacity,
		FeePerSemester: 15000,
	}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)
	return room
}

func TestCreateRoomValidation(t *testing.T) {
	svc, _ := newHostelService(t)
	ctx := context.Background()

	_, err := svc.CreateRoom(ctx, &RoomInput{HostelID: 1, RoomNumber: "A-1", Capacity: 0}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateRoom(ctx, &RoomInput{HostelID: 999, RoomNumber: "A-1", Capacity: 2}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAllocateFillsRoom(t *testing.T) {
	svc, db := newHostelService(t)
	ctx := context.Background()

	room := createTestRoom(t, svc, 2)
	_, first := createTestStudent(t, db, "bed1@ums.com", "CS2024040")
	_, second := createTestStudent(t, db, "bed2@ums.com", "CS2024041")
	_, third := createTestStudent(t, db, "bed3@ums.com", "CS2024042")

	_, err := svc.Allocate(ctx, &AllocateInput{RoomID: room.ID, StudentID: first.ID}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)
	_, err = svc.Allocate(ctx, &AllocateInput{RoomID: room.ID, StudentID: second.ID}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	_, err = svc.Allocate(ctx, &AllocateInput{RoomID: room.ID, StudentID: third.ID}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrRoomFull)
}

func TestAllocateSecondActiveRejected(t *testing.T) {
	svc, db := newHostelService(t)
	ctx := context.Background()

	room := createTestRoom(t, svc, 4)
	_, student := createTestStudent(t, db, "double@ums.com", "CS2024043")

	_, err := svc.Allocate(ctx, &AllocateInput{RoomID: room.ID, StudentID: student.ID}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	_, err = svc.Allocate(ctx, &AllocateInput{RoomID: room.ID, StudentID: student.ID}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrActiveAllocation)

	// The rejected allocation must not consume a bed
	hostelRepo := repositories.NewHostelRepository(db)
	after, err := hostelRepo.GetRoomByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.Occupied)
}

func TestVacateFreesBed(t *testing.T) {
	svc, db := newHostelService(t)
	ctx := context.Background()

	room := createTestRoom(t, svc, 1)
	_, student := createTestStudent(t, db, "mover@ums.com", "CS2024044")
	_, next := createTestStudent(t, db, "next@ums.com", "CS2024045")

	allocation, err := svc.Allocate(ctx, &AllocateInput{RoomID: room.ID, StudentID: student.ID}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	vacated, err := svc.Vacate(ctx, allocation.ID, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)
	assert.NotNil(t, vacated.VacatedDate)

	_, err = svc.Vacate(ctx, allocation.ID, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrAllocationNotFound)

	// The freed bed can be reallocated, and the student may move back in
	_, err = svc.Allocate(ctx, &AllocateInput{RoomID: room.ID, StudentID: next.ID}, adminIdentity(), "127.0.0.1")
	assert.NoError(t, err)
}

func TestListAllocationsByStudentAccess(t *testing.T) {
	svc, db := newHostelService(t)
	ctx := context.Background()

	ownerUser, owner := createTestStudent(t, db, "resident@ums.com", "CS2024046")
	_, other := createTestStudent(t, db, "visitor@ums.com", "CS2024047")

	_, err := svc.ListAllocationsByStudent(ctx, other.ID, studentIdentity(ownerUser, owner))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.ListAllocationsByStudent(ctx, owner.ID, studentIdentity(ownerUser, owner))
	assert.NoError(t, err)
}
