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

func newAssignmentService(t *testing.T) (*AssignmentService, *AcademicService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	academicRepo := repositories.NewAcademicRepository(db)
	userRepo := repositories.NewUserRepository(db)
	audit := newTestAudit(t, db)
	return NewAssignmentService(academicRepo, userRepo, audit),
		NewAcademicService(academicRepo, userRepo, audit),
		db
}

// createTaughtCourse provisions a course assigned to the given teacher
func createTaughtCourse(t *testing.T, academic *AcademicService, code string, teacherID uint) *models.Course {
	t.Helper()
	ctx := context.Background()

	dept, err := academic.CreateDepartment(ctx, &DepartmentInput{Name: "Computer Science", Code: "CSE-" + code}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	course, err := academic.CreateCourse(ctx, &CourseInput{
		Name:         "Operating Systems",
		Code:         code,
		Credits:      4,
		DepartmentID: dept.ID,
		TeacherID:    &teacherID,
		Semester:     4,
	}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)
	return course
}

func TestCreateAssignmentOwnCourseOnly(t *testing.T) {
	svc, academic, db := newAssignmentService(t)
	ctx := context.Background()

	ownerUser, owner := createTestTeacher(t, db, "owner-teacher@ums.com", "EMP3001")
	otherUser, other := createTestTeacher(t, db, "other-teacher@ums.com", "EMP3002")
	course := createTaughtCourse(t, academic, "CS401", owner.ID)

	input := &AssignmentInput{
		Title:      "Scheduling lab",
		CourseID:   course.ID,
		DueDate:    time.Now().AddDate(0, 0, 7),
		TotalMarks: 100,
	}

	_, err := svc.CreateAssignment(ctx, input, teacherIdentity(otherUser, other), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrNotCourseTeacher)

	// An identity without a teacher profile cannot post at all
	_, err = svc.CreateAssignment(ctx, input, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assignment, err := svc.CreateAssignment(ctx, input, teacherIdentity(ownerUser, owner), "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, assignment.TeacherID)
	assert.Equal(t, course.ID, assignment.CourseID)
}

func TestUpdateAssignmentOwnershipEnforced(t *testing.T) {
	svc, academic, db := newAssignmentService(t)
	ctx := context.Background()

	ownerUser, owner := createTestTeacher(t, db, "upd-owner@ums.com", "EMP3003")
	otherUser, other := createTestTeacher(t, db, "upd-other@ums.com", "EMP3004")
	course := createTaughtCourse(t, academic, "CS402", owner.ID)

	assignment, err := svc.CreateAssignment(ctx, &AssignmentInput{
		Title:    "Memory lab",
		CourseID: course.ID,
		DueDate:  time.Now().AddDate(0, 0, 7),
	}, teacherIdentity(ownerUser, owner), "127.0.0.1")
	require.NoError(t, err)

	_, err = svc.UpdateAssignment(ctx, assignment.ID, &AssignmentUpdateInput{Title: "Hijacked"}, teacherIdentity(otherUser, other), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrNotCourseTeacher)

	err = svc.DeleteAssignment(ctx, assignment.ID, teacherIdentity(otherUser, other), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrNotCourseTeacher)

	updated, err := svc.UpdateAssignment(ctx, assignment.ID, &AssignmentUpdateInput{Title: "Memory lab v2"}, teacherIdentity(ownerUser, owner), "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "Memory lab v2", updated.Title)

	require.NoError(t, svc.DeleteAssignment(ctx, assignment.ID, teacherIdentity(ownerUser, owner), "127.0.0.1"))
	_, err = svc.GetAssignment(ctx, assignment.ID)
	assert.ErrorIs(t, err, domain.ErrAssignmentNotFound)
}

func TestSubmitAssignmentOnce(t *testing.T) {
	svc, academic, db := newAssignmentService(t)
	ctx := context.Background()

	teacherUser, teacher := createTestTeacher(t, db, "sub-teacher@ums.com", "EMP3005")
	studentUser, student := createTestStudent(t, db, "submitter@ums.com", "CS2024100")
	course := createTaughtCourse(t, academic, "CS403", teacher.ID)

	assignment, err := svc.CreateAssignment(ctx, &AssignmentInput{
		Title:    "Filesystem lab",
		CourseID: course.ID,
		DueDate:  time.Now().AddDate(0, 0, 7),
	}, teacherIdentity(teacherUser, teacher), "127.0.0.1")
	require.NoError(t, err)

	input := &SubmissionInput{AssignmentID: assignment.ID, Remarks: "First attempt"}

	// Only students submit
	_, err = svc.Submit(ctx, input, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	submission, err := svc.Submit(ctx, input, studentIdentity(studentUser, student), "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, student.ID, submission.StudentID)
	assert.Nil(t, submission.MarksObtained)

	_, err = svc.Submit(ctx, input, studentIdentity(studentUser, student), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrDuplicateSubmission)
}

func TestGradeSubmissionOwnCourseOnly(t *testing.T) {
	svc, academic, db := newAssignmentService(t)
	ctx := context.Background()

	ownerUser, owner := createTestTeacher(t, db, "grade-owner@ums.com", "EMP3006")
	otherUser, other := createTestTeacher(t, db, "grade-other@ums.com", "EMP3007")
	studentUser, student := createTestStudent(t, db, "graded@ums.com", "CS2024101")
	course := createTaughtCourse(t, academic, "CS404", owner.ID)

	assignment, err := svc.CreateAssignment(ctx, &AssignmentInput{
		Title:      "Concurrency lab",
		CourseID:   course.ID,
		DueDate:    time.Now().AddDate(0, 0, 7),
		TotalMarks: 50,
	}, teacherIdentity(ownerUser, owner), "127.0.0.1")
	require.NoError(t, err)

	submission, err := svc.Submit(ctx, &SubmissionInput{AssignmentID: assignment.ID}, studentIdentity(studentUser, student), "127.0.0.1")
	require.NoError(t, err)

	marks := 42.0
	_, err = svc.Grade(ctx, submission.ID, &SubmissionGradeInput{MarksObtained: &marks}, teacherIdentity(otherUser, other), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrNotCourseTeacher)

	over := 60.0
	_, err = svc.Grade(ctx, submission.ID, &SubmissionGradeInput{MarksObtained: &over}, teacherIdentity(ownerUser, owner), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	graded, err := svc.Grade(ctx, submission.ID, &SubmissionGradeInput{MarksObtained: &marks, Feedback: "Solid work"}, teacherIdentity(ownerUser, owner), "127.0.0.1")
	require.NoError(t, err)
	require.NotNil(t, graded.MarksObtained)
	assert.Equal(t, 42.0, *graded.MarksObtained)
	assert.Equal(t, "Solid work", graded.Feedback)
}

func TestListSubmissionsByStudentAccess(t *testing.T) {
	svc, academic, db := newAssignmentService(t)
	ctx := context.Background()

	teacherUser, teacher := createTestTeacher(t, db, "list-teacher@ums.com", "EMP3008")
	ownerUser, owner := createTestStudent(t, db, "sub-owner@ums.com", "CS2024102")
	peerUser, peer := createTestStudent(t, db, "sub-peer@ums.com", "CS2024103")
	course := createTaughtCourse(t, academic, "CS405", teacher.ID)

	assignment, err := svc.CreateAssignment(ctx, &AssignmentInput{
		Title:    "Networking lab",
		CourseID: course.ID,
		DueDate:  time.Now().AddDate(0, 0, 7),
	}, teacherIdentity(teacherUser, teacher), "127.0.0.1")
	require.NoError(t, err)

	_, err = svc.Submit(ctx, &SubmissionInput{AssignmentID: assignment.ID}, studentIdentity(ownerUser, owner), "127.0.0.1")
	require.NoError(t, err)

	// A classmate cannot read someone else's submissions
	_, err = svc.ListSubmissionsByStudent(ctx, owner.ID, studentIdentity(peerUser, peer))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	mine, err := svc.ListSubmissionsByStudent(ctx, owner.ID, studentIdentity(ownerUser, owner))
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := svc.ListSubmissionsByAssignment(ctx, assignment.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
