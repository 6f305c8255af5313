package services

import (
	"context"
	"errors"
	"time"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/repositories"
	"github.com/LEGENDANISH/UMS/internal/core/domain"

	"gorm.io/gorm"
)

// AssignmentService handles coursework and submissions. Every write on
// an assignment is restricted to the teacher who teaches its course.
type AssignmentService struct {
	academicRepo repositories.AcademicRepository
	userRepo     repositories.UserRepository
	audit        *AuditService
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(academicRepo repositories.AcademicRepository, userRepo repositories.UserRepository, audit *AuditService) *AssignmentService {
	return &AssignmentService{
		academicRepo: academicRepo,
		userRepo:     userRepo,
		audit:        audit,
	}
}

// AssignmentInput represents assignment create input
type AssignmentInput struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description,omitempty"`
	CourseID    uint      `json:"course_id" validate:"required"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	TotalMarks  float64   `json:"total_marks"`
	Attachments []string  `json:"attachments,omitempty"`
}

// ownsCourse checks that the actor is the teacher assigned to the course
func (s *AssignmentService) ownsCourse(ctx context.Context, courseID uint, actor *domain.Identity) (*models.Course, error) {
	if actor.TeacherID == nil {
		return nil, domain.ErrForbidden
	}

	course, err := s.academicRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	if course.TeacherID == nil || *course.TeacherID != *actor.TeacherID {
		return nil, domain.ErrNotCourseTeacher
	}
	return course, nil
}

// CreateAssignment posts coursework for a course the actor teaches
func (s *AssignmentService) CreateAssignment(ctx context.Context, input *AssignmentInput, actor *domain.Identity, sourceIP string) (*models.Assignment, error) {
	if input.TotalMarks < 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.ownsCourse(ctx, input.CourseID, actor); err != nil {
		return nil, err
	}

	assignment := &models.Assignment{
		Title:       input.Title,
		Description: input.Description,
		CourseID:    input.CourseID,
		TeacherID:   *actor.TeacherID,
		DueDate:     input.DueDate,
		TotalMarks:  input.TotalMarks,
		Attachments: input.Attachments,
	}
	if err := s.academicRepo.CreateAssignment(ctx, assignment); err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, &actor.UserID, ActionCreate, "Assignment", assignment.ID,
		map[string]uint{"course_id": input.CourseID}, sourceIP); err != nil {
		return nil, err
	}
	return assignment, nil
}

// GetAssignment gets an assignment by ID
func (s *AssignmentService) GetAssignment(ctx context.Context, id uint) (*models.Assignment, error) {
	assignment, err := s.academicRepo.GetAssignmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment, nil
}

// ListAssignments lists assignments, optionally for one course
func (s *AssignmentService) ListAssignments(ctx context.Context, courseID *uint, offset, limit int) ([]*models.Assignment, int64, error) {
	return s.academicRepo.ListAssignments(ctx, courseID, offset, limit)
}

// AssignmentUpdateInput represents assignment update input
type AssignmentUpdateInput struct {
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	TotalMarks  *float64   `json:"total_marks,omitempty"`
	Attachments []string   `json:"attachments,omitempty"`
}

// UpdateAssignment patches an assignment the actor posted
func (s *AssignmentService) UpdateAssignment(ctx context.Context, id uint, input *AssignmentUpdateInput, actor *domain.Identity, sourceIP string) (*models.Assignment, error) {
	assignment, err := s.GetAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.TeacherID == nil || assignment.TeacherID != *actor.TeacherID {
		return nil, domain.ErrNotCourseTeacher
	}

	if input.Title != "" {
		assignment.Title = input.Title
	}
	if input.Description != "" {
		assignment.Description = input.Description
	}
	if input.DueDate != nil {
		assignment.DueDate = *input.DueDate
	}
	if input.TotalMarks != nil {
		if *input.TotalMarks < 0 {
			return nil, domain.ErrInvalidInput
		}
		assignment.TotalMarks = *input.TotalMarks
	}
	if input.Attachments != nil {
		assignment.Attachments = input.Attachments
	}

	if err := s.academicRepo.UpdateAssignment(ctx, assignment); err != nil {
		return nil, err
	}
	if err := s.audit.Record(ctx, &actor.UserID, ActionUpdate, "Assignment", assignment.ID, input, sourceIP); err != nil {
		return nil, err
	}
	return assignment, nil
}

// DeleteAssignment removes an assignment the actor posted
func (s *AssignmentService) DeleteAssignment(ctx context.Context, id uint, actor *domain.Identity, sourceIP string) error {
	assignment, err := s.GetAssignment(ctx, id)
	if err != nil {
		return err
	}
	if actor.TeacherID == nil || assignment.TeacherID != *actor.TeacherID {
		return domain.ErrNotCourseTeacher
	}

	if err := s.academicRepo.DeleteAssignment(ctx, id); err != nil {
		return err
	}
	return s.audit.Record(ctx, &actor.UserID, ActionDelete, "Assignment", id, nil, sourceIP)
}

// SubmissionInput represents a student's answer
type SubmissionInput struct {
	AssignmentID uint     `json:"assignment_id" validate:"required"`
	Attachments  []string `json:"attachments,omitempty"`
	Remarks      string   `json:"remarks,omitempty"`
}

// Submit records the actor's answer to an assignment. Only students
// submit, and only once per assignment; late submissions are accepted
// and left to the grader's judgement.
func (s *AssignmentService) Submit(ctx context.Context, input *SubmissionInput, actor *domain.Identity, sourceIP string) (*models.AssignmentSubmission, error) {
	if !actor.IsStudent() {
		return nil, domain.ErrForbidden
	}
	if _, err := s.GetAssignment(ctx, input.AssignmentID); err != nil {
		return nil, err
	}

	submission := &models.AssignmentSubmission{
		AssignmentID: input.AssignmentID,
		StudentID:    *actor.StudentID,
		Attachments:  input.Attachments,
		Remarks:      input.Remarks,
	}
	if err := s.academicRepo.CreateSubmission(ctx, submission); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateSubmission
		}
		return nil, err
	}

	if err := s.audit.Record(ctx, &actor.UserID, ActionCreate, "AssignmentSubmission", submission.ID,
		map[string]uint{"assignment_id": input.AssignmentID}, sourceIP); err != nil {
		return nil, err
	}
	return submission, nil
}

// SubmissionGradeInput represents grading input
type SubmissionGradeInput struct {
	MarksObtained *float64 `json:"marks_obtained,omitempty"`
	Feedback      string   `json:"feedback,omitempty"`
}

// Grade scores a submission. Only the teacher who teaches the
// assignment's course may grade it, and marks cannot exceed the
// assignment's total.
func (s *AssignmentService) Grade(ctx context.Context, id uint, input *SubmissionGradeInput, actor *domain.Identity, sourceIP string) (*models.AssignmentSubmission, error) {
	submission, err := s.academicRepo.GetSubmissionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, err
	}

	assignment, err := s.GetAssignment(ctx, submission.AssignmentID)
	if err != nil {
		return nil, err
	}
	if actor.TeacherID == nil || assignment.TeacherID != *actor.TeacherID {
		return nil, domain.ErrNotCourseTeacher
	}

	if input.MarksObtained != nil {
		if *input.MarksObtained < 0 || (assignment.TotalMarks > 0 && *input.MarksObtained > assignment.TotalMarks) {
			return nil, domain.ErrInvalidInput
		}
		submission.MarksObtained = input.MarksObtained
	}
	if input.Feedback != "" {
		submission.Feedback = input.Feedback
	}

	if err := s.academicRepo.UpdateSubmission(ctx, submission); err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, &actor.UserID, ActionUpdate, "AssignmentSubmission", submission.ID, input, sourceIP); err != nil {
		return nil, err
	}
	return submission, nil
}

// ListSubmissionsByAssignment lists every answer to one assignment
func (s *AssignmentService) ListSubmissionsByAssignment(ctx context.Context, assignmentID uint) ([]*models.AssignmentSubmission, error) {
	if _, err := s.GetAssignment(ctx, assignmentID); err != nil {
		return nil, err
	}
	return s.academicRepo.ListSubmissionsByAssignment(ctx, assignmentID)
}

// ListSubmissionsByStudent lists a student's submissions. Staff who
// grade (admins, management, teachers) and the student itself may read
// them.
func (s *AssignmentService) ListSubmissionsByStudent(ctx context.Context, studentID uint, actor *domain.Identity) ([]*models.AssignmentSubmission, error) {
	if !actor.Role.In(domain.RoleAdmin, domain.RoleManagement, domain.RoleTeacher) && !actor.OwnsStudent(studentID) {
		return nil, domain.ErrForbidden
	}
	return s.academicRepo.ListSubmissionsByStudent(ctx, studentID)
}
