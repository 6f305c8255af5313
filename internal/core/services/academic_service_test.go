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

func newAcademicService(t *testing.T) (*AcademicService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewAcademicService(
		repositories.NewAcademicRepository(db),
		repositories.NewUserRepository(db),
		newTestAudit(t, db),
	)
	return svc, db
}

func createTestCourse(t *testing.T, svc *AcademicService, code string) *models.Course {
	t.Helper()
	ctx := context.Background()

	dept, err := svc.CreateDepartment(ctx, &DepartmentInput{Name: "Computer Science", Code: "CSE-" + code}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	course, err := svc.CreateCourse(ctx, &CourseInput{
		Name:         "Data Structures",
		Code:         code,
		Credits:      4,
		DepartmentID: dept.ID,
		Semester:     3,
	}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)
	return course
}

func TestCreateCourseUnknownDepartment(t *testing.T) {
	svc, _ := newAcademicService(t)

	_, err := svc.CreateCourse(context.Background(), &CourseInput{
		Name:         "Orphan",
		Code:         "X101",
		Credits:      3,
		DepartmentID: 999,
	}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)
}

func TestEnrollOncePerTerm(t *testing.T) {
	svc, db := newAcademicService(t)
	ctx := context.Background()

	course := createTestCourse(t, svc, "CS301")
	_, student := createTestStudent(t, db, "enrollee@ums.com", "CS2024090")

	input := &EnrollmentInput{StudentID: student.ID, CourseID: course.ID, Semester: 3, Year: 2026}
	_, err := svc.Enroll(ctx, input, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	_, err = svc.Enroll(ctx, input, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrDuplicateEnrollment)
}

func TestEnrollSelfOnly(t *testing.T) {
	svc, db := newAcademicService(t)
	ctx := context.Background()

	course := createTestCourse(t, svc, "CS302")
	actorUser, actor := createTestStudent(t, db, "self@ums.com", "CS2024091")
	_, other := createTestStudent(t, db, "notself@ums.com", "CS2024092")

	_, err := svc.Enroll(ctx, &EnrollmentInput{StudentID: other.ID, CourseID: course.ID, Semester: 3, Year: 2026},
		studentIdentity(actorUser, actor), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Enroll(ctx, &EnrollmentInput{StudentID: actor.ID, CourseID: course.ID, Semester: 3, Year: 2026},
		studentIdentity(actorUser, actor), "127.0.0.1")
	assert.NoError(t, err)
}

func TestMarkAttendanceOncePerDay(t *testing.T) {
	svc, db := newAcademicService(t)
	ctx := context.Background()

	course := createTestCourse(t, svc, "CS303")
	_, student := createTestStudent(t, db, "attends@ums.com", "CS2024093")

	teacher := adminIdentity()
	input := &AttendanceInput{
		StudentID: student.ID,
		CourseID:  course.ID,
		Date:      time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		Status:    models.AttendancePresent,
	}
	mark, err := svc.MarkAttendance(ctx, input, teacher)
	require.NoError(t, err)
	assert.Equal(t, teacher.UserID, mark.MarkedBy)

	// Same day again, even hours later
	input.Date = time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	input.Status = models.AttendanceAbsent
	_, err = svc.MarkAttendance(ctx, input, teacher)
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)
}

func TestMarkAttendanceBadStatus(t *testing.T) {
	svc, _ := newAcademicService(t)

	_, err := svc.MarkAttendance(context.Background(), &AttendanceInput{
		StudentID: 1,
		CourseID:  1,
		Date:      time.Now(),
		Status:    "MAYBE",
	}, adminIdentity())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubmitGradeReplaces(t *testing.T) {
	svc, db := newAcademicService(t)
	ctx := context.Background()

	course := createTestCourse(t, svc, "CS304")
	_, student := createTestStudent(t, db, "graded@ums.com", "CS2024094")

	enrollment, err := svc.Enroll(ctx, &EnrollmentInput{StudentID: student.ID, CourseID: course.ID, Semester: 3, Year: 2026},
		adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	_, err = svc.SubmitGrade(ctx, &GradeInput{EnrollmentID: enrollment.ID, Marks: 72, GradeLetter: "B"}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	// Resubmission replaces rather than duplicates
	_, err = svc.SubmitGrade(ctx, &GradeInput{EnrollmentID: enrollment.ID, Marks: 85, GradeLetter: "A"}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	grades, err := svc.ListGradesByStudent(ctx, student.ID, adminIdentity())
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, float64(85), grades[0].Marks)
	assert.Equal(t, "A", grades[0].GradeLetter)
}

func TestSubmitGradeBounds(t *testing.T) {
	svc, _ := newAcademicService(t)

	_, err := svc.SubmitGrade(context.Background(), &GradeInput{EnrollmentID: 1, Marks: 101}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.SubmitGrade(context.Background(), &GradeInput{EnrollmentID: 1, Marks: -1}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUnenrollOwnership(t *testing.T) {
	svc, db := newAcademicService(t)
	ctx := context.Background()

	course := createTestCourse(t, svc, "CS305")
	ownerUser, owner := createTestStudent(t, db, "dropper@ums.com", "CS2024095")
	otherUser, other := createTestStudent(t, db, "bystander@ums.com", "CS2024096")

	enrollment, err := svc.Enroll(ctx, &EnrollmentInput{StudentID: owner.ID, CourseID: course.ID, Semester: 3, Year: 2026},
		studentIdentity(ownerUser, owner), "127.0.0.1")
	require.NoError(t, err)

	err = svc.Unenroll(ctx, enrollment.ID, studentIdentity(otherUser, other), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = svc.Unenroll(ctx, enrollment.ID, studentIdentity(ownerUser, owner), "127.0.0.1")
	require.NoError(t, err)

	err = svc.Unenroll(ctx, enrollment.ID, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrEnrollmentNotFound)
}
