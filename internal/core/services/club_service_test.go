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

func newClubService(t *testing.T) (*ClubService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewClubService(
		repositories.NewClubRepository(db),
		repositories.NewUserRepository(db),
		newTestAudit(t, db),
	)
	return svc, db
}

func createTestClub(t *testing.T, svc *ClubService, name string) *models.Club {
	t.Helper()
	club, err := svc.CreateClub(context.Background(), &ClubInput{Name: name}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)
	return club
}

func TestCreateClubUnknownCoordinator(t *testing.T) {
	svc, _ := newClubService(t)

	missing := uint(999)
	_, err := svc.CreateClub(context.Background(), &ClubInput{
		Name:          "Robotics",
		CoordinatorID: &missing,
	}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrTeacherNotFound)
}

func TestJoinClubPendingThenApproved(t *testing.T) {
	svc, db := newClubService(t)
	ctx := context.Background()

	club := createTestClub(t, svc, "Chess")
	user, student := createTestStudent(t, db, "member@ums.com", "CS2024080")

	membership, err := svc.Join(ctx, &JoinInput{ClubID: club.ID, StudentID: student.ID}, studentIdentity(user, student), "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, models.MembershipPending, membership.Status)
	assert.Equal(t, "MEMBER", membership.Role)

	approved, err := svc.ApproveMembership(ctx, membership.ID, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, models.MembershipActive, approved.Status)
}

func TestJoinClubDuplicate(t *testing.T) {
	svc, db := newClubService(t)
	ctx := context.Background()

	club := createTestClub(t, svc, "Drama")
	user, student := createTestStudent(t, db, "dup-member@ums.com", "CS2024081")
	actor := studentIdentity(user, student)

	_, err := svc.Join(ctx, &JoinInput{ClubID: club.ID, StudentID: student.ID}, actor, "127.0.0.1")
	require.NoError(t, err)

	_, err = svc.Join(ctx, &JoinInput{ClubID: club.ID, StudentID: student.ID}, actor, "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrDuplicateMembership)
}

func TestJoinClubForAnotherStudent(t *testing.T) {
	svc, db := newClubService(t)
	ctx := context.Background()

	club := createTestClub(t, svc, "Music")
	actorUser, actor := createTestStudent(t, db, "joiner@ums.com", "CS2024082")
	_, other := createTestStudent(t, db, "joined@ums.com", "CS2024083")

	_, err := svc.Join(ctx, &JoinInput{ClubID: club.ID, StudentID: other.ID}, studentIdentity(actorUser, actor), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLeaveClubOwnershipEnforced(t *testing.T) {
	svc, db := newClubService(t)
	ctx := context.Background()

	club := createTestClub(t, svc, "Photography")
	ownerUser, owner := createTestStudent(t, db, "leaving@ums.com", "CS2024084")
	otherUser, other := createTestStudent(t, db, "staying@ums.com", "CS2024085")

	membership, err := svc.Join(ctx, &JoinInput{ClubID: club.ID, StudentID: owner.ID}, studentIdentity(ownerUser, owner), "127.0.0.1")
	require.NoError(t, err)

	err = svc.Leave(ctx, membership.ID, studentIdentity(otherUser, other), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = svc.Leave(ctx, membership.ID, studentIdentity(ownerUser, owner), "127.0.0.1")
	require.NoError(t, err)

	// Leaving clears the pair for a future rejoin
	_, err = svc.Join(ctx, &JoinInput{ClubID: club.ID, StudentID: owner.ID}, studentIdentity(ownerUser, owner), "127.0.0.1")
	assert.NoError(t, err)
}
