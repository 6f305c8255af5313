package services

import (
	"context"
	"testing"
	"time"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/repositories"
	"github.com/LEGENDANISH/UMS/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLeaveService(t *testing.T) (*LeaveService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewLeaveService(repositories.NewLeaveRepository(db), newTestAudit(t, db)), db
}

func TestApplyLeave(t *testing.T) {
	svc, db := newLeaveService(t)
	ctx := context.Background()

	user, student := createTestStudent(t, db, "leaver@ums.com", "CS2024070")

	leave, err := svc.Apply(ctx, &LeaveInput{
		StudentID: student.ID,
		StartDate: time.Now().AddDate(0, 0, 1),
		EndDate:   time.Now().AddDate(0, 0, 3),
		Reason:    "Family function",
	}, studentIdentity(user, student), "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, models.LeavePending, leave.Status)
}

func TestApplyLeaveInvalidRange(t *testing.T) {
	svc, db := newLeaveService(t)

	user, student := createTestStudent(t, db, "range@ums.com", "CS2024071")

	_, err := svc.Apply(context.Background(), &LeaveInput{
		StudentID: student.ID,
		StartDate: time.Now().AddDate(0, 0, 3),
		EndDate:   time.Now().AddDate(0, 0, 1),
		Reason:    "Backwards",
	}, studentIdentity(user, student), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestApplyLeaveForAnotherStudent(t *testing.T) {
	svc, db := newLeaveService(t)

	actorUser, actor := createTestStudent(t, db, "applicant@ums.com", "CS2024072")
	_, other := createTestStudent(t, db, "target@ums.com", "CS2024073")

	_, err := svc.Apply(context.Background(), &LeaveInput{
		StudentID: other.ID,
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 0, 1),
		Reason:    "Not mine",
	}, studentIdentity(actorUser, actor), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestReviewLeaveOnce(t *testing.T) {
	svc, db := newLeaveService(t)
	ctx := context.Background()

	user, student := createTestStudent(t, db, "reviewed@ums.com", "CS2024074")

	leave, err := svc.Apply(ctx, &LeaveInput{
		StudentID: student.ID,
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 0, 2),
		Reason:    "Medical",
	}, studentIdentity(user, student), "127.0.0.1")
	require.NoError(t, err)

	reviewer := adminIdentity()
	approved, err := svc.Review(ctx, leave.ID, &ReviewInput{Approve: true, Remarks: "Get well soon"}, reviewer, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, models.LeaveApproved, approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, reviewer.UserID, *approved.ReviewedBy)
	assert.NotNil(t, approved.ReviewedAt)

	_, err = svc.Review(ctx, leave.ID, &ReviewInput{Approve: false}, reviewer, "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrLeaveAlreadyReviewed)
}

func TestReviewReject(t *testing.T) {
	svc, db := newLeaveService(t)
	ctx := context.Background()

	user, student := createTestStudent(t, db, "rejected@ums.com", "CS2024075")

	leave, err := svc.Apply(ctx, &LeaveInput{
		StudentID: student.ID,
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 0, 10),
		Reason:    "Long trip",
	}, studentIdentity(user, student), "127.0.0.1")
	require.NoError(t, err)

	rejected, err := svc.Review(ctx, leave.ID, &ReviewInput{Approve: false, Remarks: "Mid-semester"}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, models.LeaveRejected, rejected.Status)
	assert.Equal(t, "Mid-semester", rejected.Remarks)
}

func TestGetLeaveAccess(t *testing.T) {
	svc, db := newLeaveService(t)
	ctx := context.Background()

	ownerUser, owner := createTestStudent(t, db, "lowner@ums.com", "CS2024076")
	otherUser, other := createTestStudent(t, db, "lother@ums.com", "CS2024077")

	leave, err := svc.Apply(ctx, &LeaveInput{
		StudentID: owner.ID,
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 0, 1),
		Reason:    "Private",
	}, studentIdentity(ownerUser, owner), "127.0.0.1")
	require.NoError(t, err)

	_, err = svc.Get(ctx, leave.ID, studentIdentity(otherUser, other))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Get(ctx, leave.ID, studentIdentity(ownerUser, owner))
	assert.NoError(t, err)
}
