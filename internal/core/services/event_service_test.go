package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/repositories"
	"github.com/LEGENDANISH/UMS/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEventService(t *testing.T) (*EventService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewEventService(
		repositories.NewEventRepository(db),
		repositories.NewClubRepository(db),
		repositories.NewUserRepository(db),
		newTestAudit(t, db),
	)
	return svc, db
}

func createTestEvent(t *testing.T, svc *EventService, input *EventInput) *models.Event {
	t.Helper()
	if input.Title == "" {
		input.Title = "Tech Fest"
	}
	if input.EventDate.IsZero() {
		input.EventDate = time.Now().AddDate(0, 0, 7)
	}
	event, err := svc.CreateEvent(context.Background(), input, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)
	return event
}

func TestCreateEventValidation(t *testing.T) {
	svc, _ := newEventService(t)
	ctx := context.Background()

	_, err := svc.CreateEvent(ctx, &EventInput{
		Title:           "Bad",
		EventDate:       time.Now(),
		MaxParticipants: -1,
	}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	unknownClub := uint(999)
	_, err = svc.CreateEvent(ctx, &EventInput{
		Title:     "Orphan",
		EventDate: time.Now(),
		ClubID:    &unknownClub,
	}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrClubNotFound)
}

func TestRegisterFillsEvent(t *testing.T) {
	svc, db := newEventService(t)
	ctx := context.Background()

	event := createTestEvent(t, svc, &EventInput{MaxParticipants: 2})
	_, first := createTestStudent(t, db, "seat1@ums.com", "CS2024050")
	_, second := createTestStudent(t, db, "seat2@ums.com", "CS2024051")
	_, third := createTestStudent(t, db, "seat3@ums.com", "CS2024052")

	_, err := svc.Register(ctx, &SignupInput{EventID: event.ID, StudentID: first.ID}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)
	_, err = svc.Register(ctx, &SignupInput{EventID: event.ID, StudentID: second.ID}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, &SignupInput{EventID: event.ID, StudentID: third.ID}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrEventFull)

	after, err := svc.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, after.RegisteredCount)
}

func TestRegisterUnlimitedCapacity(t *testing.T) {
	svc, db := newEventService(t)
	ctx := context.Background()

	event := createTestEvent(t, svc, &EventInput{MaxParticipants: 0})
	for i, email := range []string{"open1@ums.com", "open2@ums.com", "open3@ums.com"} {
		_, student := createTestStudent(t, db, email, fmt.Sprintf("CS20240%d", 61+i))
		_, err := svc.Register(ctx, &SignupInput{EventID: event.ID, StudentID: student.ID}, adminIdentity(), "127.0.0.1")
		require.NoError(t, err)
	}
}

func TestRegisterDuplicateSignup(t *testing.T) {
	svc, db := newEventService(t)
	ctx := context.Background()

	event := createTestEvent(t, svc, &EventInput{MaxParticipants: 10})
	_, student := createTestStudent(t, db, "again@ums.com", "CS2024053")

	input := &SignupInput{EventID: event.ID, StudentID: student.ID}
	_, err := svc.Register(ctx, input, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, input, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrDuplicateSignup)

	// The rejected signup must not hold a seat
	after, err := svc.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.RegisteredCount)
}

func TestRegisterAfterDeadline(t *testing.T) {
	svc, db := newEventService(t)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	event := createTestEvent(t, svc, &EventInput{RegistrationDeadline: &past})
	_, student := createTestStudent(t, db, "tardy@ums.com", "CS2024054")

	_, err := svc.Register(ctx, &SignupInput{EventID: event.ID, StudentID: student.ID}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrDeadlinePassed)
}

func TestRegisterStudentSelfOnly(t *testing.T) {
	svc, db := newEventService(t)
	ctx := context.Background()

	event := createTestEvent(t, svc, &EventInput{})
	actorUser, actor := createTestStudent(t, db, "selfreg@ums.com", "CS2024055")
	_, other := createTestStudent(t, db, "otherreg@ums.com", "CS2024056")

	_, err := svc.Register(ctx, &SignupInput{EventID: event.ID, StudentID: other.ID}, studentIdentity(actorUser, actor), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Register(ctx, &SignupInput{EventID: event.ID, StudentID: actor.ID}, studentIdentity(actorUser, actor), "127.0.0.1")
	assert.NoError(t, err)
}

func TestUpdateEventCapacityFloor(t *testing.T) {
	svc, db := newEventService(t)
	ctx := context.Background()

	event := createTestEvent(t, svc, &EventInput{MaxParticipants: 5})
	_, first := createTestStudent(t, db, "cap1@ums.com", "CS2024057")
	_, second := createTestStudent(t, db, "cap2@ums.com", "CS2024058")

	_, err := svc.Register(ctx, &SignupInput{EventID: event.ID, StudentID: first.ID}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)
	_, err = svc.Register(ctx, &SignupInput{EventID: event.ID, StudentID: second.ID}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	one := 1
	_, err = svc.UpdateEvent(ctx, event.ID, &EventUpdateInput{MaxParticipants: &one}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	two := 2
	updated, err := svc.UpdateEvent(ctx, event.ID, &EventUpdateInput{MaxParticipants: &two}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 2, updated.MaxParticipants)
}

func TestRegisterClosedEvent(t *testing.T) {
	svc, db := newEventService(t)
	ctx := context.Background()

	event := createTestEvent(t, svc, &EventInput{})
	cancelled := models.EventCancelled
	_, err := svc.UpdateEvent(ctx, event.ID, &EventUpdateInput{Status: &cancelled}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	_, student := createTestStudent(t, db, "closed@ums.com", "CS2024059")
	_, err = svc.Register(ctx, &SignupInput{EventID: event.ID, StudentID: student.ID}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMarkAttended(t *testing.T) {
	svc, db := newEventService(t)
	ctx := context.Background()

	event := createTestEvent(t, svc, &EventInput{})
	_, student := createTestStudent(t, db, "present@ums.com", "CS2024060")

	participation, err := svc.Register(ctx, &SignupInput{EventID: event.ID, StudentID: student.ID}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	marked, err := svc.MarkAttended(ctx, participation.ID, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)
	assert.True(t, marked.Attended)

	_, err = svc.MarkAttended(ctx, 999, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
