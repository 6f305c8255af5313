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

// AcademicService handles departments, courses, enrollments, attendance
// and grades
type AcademicService struct {
	academicRepo repositories.AcademicRepository
	userRepo     repositories.UserRepository
	audit        *AuditService
}

// NewAcademicService creates a new academic service
func NewAcademicService(academicRepo repositories.AcademicRepository, userRepo repositories.UserRepository, audit *AuditService) *AcademicService {
	return &AcademicService{
		academicRepo: academicRepo,
		userRepo:     userRepo,
		audit:        audit,
	}
}

// DepartmentInput represents department create/update input
type DepartmentInput struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code" validate:"required"`
}

// CreateDepartment registers a department
func (s *AcademicService) CreateDepartment(ctx context.Context, input *DepartmentInput, actor *domain.Identity, sourceIP string) (*models.Department, error) {
	dept := &models.Department{Name: input.Name, Code: input.Code}
	if err := s.academicRepo.CreateDepartment(ctx, dept); err != nil {
		return nil, err
	}
	if err := s.audit.Record(ctx, &actor.UserID, ActionCreate, "Department", dept.ID, nil, sourceIP); err != nil {
		return nil, err
	}
	return dept, nil
}

// GetDepartment gets a department by ID
func (s *AcademicService) GetDepartment(ctx context.Context, id uint) (*models.Department, error) {
	dept, err := s.academicRepo.GetDepartmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDepartmentNotFound
		}
		return nil, err
	}
	return dept, nil
}

// ListDepartments lists all departments
func (s *AcademicService) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	return s.academicRepo.ListDepartments(ctx)
}

// UpdateDepartment patches a department
func (s *AcademicService) UpdateDepartment(ctx context.Context, id uint, input *DepartmentInput, actor *domain.Identity, sourceIP string) (*models.Department, error) {
	dept, err := s.GetDepartment(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		dept.Name = input.Name
	}
	if input.Code != "" {
		dept.Code = input.Code
	}
	if err := s.academicRepo.UpdateDepartment(ctx, dept); err != nil {
		return nil, err
	}
	if err := s.audit.Record(ctx, &actor.UserID, ActionUpdate, "Department", dept.ID, input, sourceIP); err != nil {
		return nil, err
	}
	return dept, nil
}

// DeleteDepartment removes a department
func (s *AcademicService) DeleteDepartment(ctx context.Context, id uint, actor *domain.Identity, sourceIP string) error {
	if err := s.academicRepo.DeleteDepartment(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDepartmentNotFound
		}
		return err
	}
	return s.audit.Record(ctx, &actor.UserID, ActionDelete, "Department", id, nil, sourceIP)
}

// CourseInput represents course create input
type CourseInput struct {
	Name         string `json:"name" validate:"required"`
	Code         string `json:"code" validate:"required"`
	Credits      int    `json:"credits" validate:"required,min=1"`
	Description  string `json:"description,omitempty"`
	DepartmentID uint   `json:"department_id" validate:"required"`
	TeacherID    *uint  `json:"teacher_id,omitempty"`
	Semester     int    `json:"semester"`
}

// CreateCourse registers a course under a department
func (s *AcademicService) CreateCourse(ctx context.Context, input *CourseInput, actor *domain.Identity, sourceIP string) (*models.Course, error) {
	if _, err := s.GetDepartment(ctx, input.DepartmentID); err != nil {
		return nil, err
	}
	if input.TeacherID != nil {
		if _, err := s.userRepo.GetTeacherByID(ctx, *input.TeacherID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrTeacherNotFound
			}
			return nil, err
		}
	}

	course := &models.Course{
		Name:         input.Name,
		Code:         input.Code,
		Credits:      input.Credits,
		Description:  input.Description,
		DepartmentID: input.DepartmentID,
		TeacherID:    input.TeacherID,
		Semester:     input.Semester,
	}
	if err := s.academicRepo.CreateCourse(ctx, course); err != nil {
		return nil, err
	}
	if err := s.audit.Record(ctx, &actor.UserID, ActionCreate, "Course", course.ID, nil, sourceIP); err != nil {
		return nil, err
	}
	return course, nil
}

// GetCourse gets a course by ID
func (s *AcademicService) GetCourse(ctx context.Context, id uint) (*models.Course, error) {
	course, err := s.academicRepo.GetCourseByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// ListCourses lists courses with pagination
func (s *AcademicService) ListCourses(ctx context.Context, offset, limit int) ([]*models.Course, int64, error) {
	return s.academicRepo.ListCourses(ctx, offset, limit)
}

// CourseUpdateInput represents course update input
type CourseUpdateInput struct {
	Name        string `json:"name,omitempty"`
	Credits     *int   `json:"credits,omitempty"`
	Description string `json:"description,omitempty"`
	TeacherID   *uint  `json:"teacher_id,omitempty"`
	Semester    *int   `json:"semester,omitempty"`
}

// UpdateCourse patches a course
func (s *AcademicService) UpdateCourse(ctx context.Context, id uint, input *CourseUpdateInput, actor *domain.Identity, sourceIP string) (*models.Course, error) {
	course, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		course.Name = input.Name
	}
	if input.Credits != nil {
		course.Credits = *input.Credits
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.TeacherID != nil {
		if _, err := s.userRepo.GetTeacherByID(ctx, *input.TeacherID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrTeacherNotFound
			}
			return nil, err
		}
		course.TeacherID = input.TeacherID
	}
	if input.Semester != nil {
		course.Semester = *input.Semester
	}

	if err := s.academicRepo.UpdateCourse(ctx, course); err != nil {
		return nil, err
	}
	if err := s.audit.Record(ctx, &actor.UserID, ActionUpdate, "Course", course.ID, input, sourceIP); err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse removes a course
func (s *AcademicService) DeleteCourse(ctx context.Context, id uint, actor *domain.Identity, sourceIP string) error {
	if err := s.academicRepo.DeleteCourse(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCourseNotFound
		}
		return err
	}
	return s.audit.Record(ctx, &actor.UserID, ActionDelete, "Course", id, nil, sourceIP)
}

// EnrollmentInput represents an enrollment request
type EnrollmentInput struct {
	StudentID uint `json:"student_id" validate:"required"`
	CourseID  uint `json:"course_id" validate:"required"`
	Semester  int  `json:"semester" validate:"required"`
	Year      int  `json:"year" validate:"required"`
}

// Enroll enrolls a student in a course for one term. Students may only
// enroll themselves.
func (s *AcademicService) Enroll(ctx context.Context, input *EnrollmentInput, actor *domain.Identity, sourceIP string) (*models.Enrollment, error) {
	if actor.Role == domain.RoleStudent && !actor.OwnsStudent(input.StudentID) {
		return nil, domain.ErrForbidden
	}
	if _, err := s.userRepo.GetStudentByID(ctx, input.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}
	if _, err := s.GetCourse(ctx, input.CourseID); err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{
		StudentID: input.StudentID,
		CourseID:  input.CourseID,
		Semester:  input.Semester,
		Year:      input.Year,
	}
	if err := s.academicRepo.CreateEnrollment(ctx, enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateEnrollment
		}
		return nil, err
	}

	if err := s.audit.Record(ctx, &actor.UserID, ActionCreate, "Enrollment", enrollment.ID,
		map[string]uint{"student_id": input.StudentID, "course_id": input.CourseID}, sourceIP); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// GetEnrollment gets an enrollment by ID
func (s *AcademicService) GetEnrollment(ctx context.Context, id uint) (*models.Enrollment, error) {
	enrollment, err := s.academicRepo.GetEnrollmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, err
	}
	return enrollment, nil
}

// ListEnrollments lists all enrollments
func (s *AcademicService) ListEnrollments(ctx context.Context, offset, limit int) ([]*models.Enrollment, int64, error) {
	return s.academicRepo.ListEnrollments(ctx, offset, limit)
}

// ListEnrollmentsByStudent lists a student's enrollments
func (s *AcademicService) ListEnrollmentsByStudent(ctx context.Context, studentID uint, actor *domain.Identity) ([]*models.Enrollment, error) {
	if !actor.CanAccessStudent(studentID) {
		return nil, domain.ErrForbidden
	}
	return s.academicRepo.ListEnrollmentsByStudent(ctx, studentID)
}

// Unenroll drops an enrollment
func (s *AcademicService) Unenroll(ctx context.Context, id uint, actor *domain.Identity, sourceIP string) error {
	enrollment, err := s.GetEnrollment(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role == domain.RoleStudent && !actor.OwnsStudent(enrollment.StudentID) {
		return domain.ErrForbidden
	}

	if err := s.academicRepo.DeleteEnrollment(ctx, id); err != nil {
		return err
	}
	return s.audit.Record(ctx, &actor.UserID, ActionDelete, "Enrollment", id, nil, sourceIP)
}

// AttendanceInput represents one attendance mark
type AttendanceInput struct {
	StudentID uint      `json:"student_id" validate:"required"`
	CourseID  uint      `json:"course_id" validate:"required"`
	Date      time.Time `json:"date" validate:"required"`
	Status    string    `json:"status" validate:"required"`
}

// MarkAttendance records one student's attendance for one course day.
// One mark per student, course and day.
func (s *AcademicService) MarkAttendance(ctx context.Context, input *AttendanceInput, actor *domain.Identity) (*models.Attendance, error) {
	switch input.Status {
	case models.AttendancePresent, models.AttendanceAbsent, models.AttendanceLate:
	default:
		return nil, domain.ErrInvalidInput
	}

	att := &models.Attendance{
		StudentID: input.StudentID,
		CourseID:  input.CourseID,
		Date:      input.Date.Truncate(24 * time.Hour),
		Status:    input.Status,
		MarkedBy:  actor.UserID,
	}
	if err := s.academicRepo.CreateAttendance(ctx, att); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateEntry
		}
		return nil, err
	}
	return att, nil
}

// ListAttendanceByStudent lists a student's attendance marks
func (s *AcademicService) ListAttendanceByStudent(ctx context.Context, studentID uint, actor *domain.Identity) ([]*models.Attendance, error) {
	if !actor.CanAccessStudent(studentID) {
		return nil, domain.ErrForbidden
	}
	return s.academicRepo.ListAttendanceByStudent(ctx, studentID)
}

// ListAttendanceByCourse lists a course's attendance marks, optionally for
// one day
func (s *AcademicService) ListAttendanceByCourse(ctx context.Context, courseID uint, date *time.Time) ([]*models.Attendance, error) {
	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	return s.academicRepo.ListAttendanceByCourse(ctx, courseID, date)
}

// GradeInput represents a grade submission
type GradeInput struct {
	EnrollmentID uint    `json:"enrollment_id" validate:"required"`
	Marks        float64 `json:"marks" validate:"min=0,max=100"`
	GradeLetter  string  `json:"grade_letter"`
}

// SubmitGrade records or replaces the grade for an enrollment
func (s *AcademicService) SubmitGrade(ctx context.Context, input *GradeInput, actor *domain.Identity, sourceIP string) (*models.Grade, error) {
	if input.Marks < 0 || input.Marks > 100 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.GetEnrollment(ctx, input.EnrollmentID); err != nil {
		return nil, err
	}

	grade := &models.Grade{
		EnrollmentID: input.EnrollmentID,
		Marks:        input.Marks,
		GradeLetter:  input.GradeLetter,
		GradedBy:     actor.UserID,
	}
	if err := s.academicRepo.UpsertGrade(ctx, grade); err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, &actor.UserID, ActionUpdate, "Grade", grade.ID,
		map[string]interface{}{"enrollment_id": input.EnrollmentID, "marks": input.Marks}, sourceIP); err != nil {
		return nil, err
	}
	return grade, nil
}

// ListGradesByStudent lists a student's grades
func (s *AcademicService) ListGradesByStudent(ctx context.Context, studentID uint, actor *domain.Identity) ([]*models.Grade, error) {
	if !actor.CanAccessStudent(studentID) {
		return nil, domain.ErrForbidden
	}
	return s.academicRepo.ListGradesByStudent(ctx, studentID)
}

// TimetableInput represents one weekly slot
type TimetableInput struct {
	CourseID   uint   `json:"course_id" validate:"required"`
	DayOfWeek  int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime  string `json:"start_time" validate:"required"`
	EndTime    string `json:"end_time" validate:"required"`
	RoomNumber string `json:"room_number,omitempty"`
}

func validSlotTime(value string) bool {
	_, err := time.Parse("15:04", value)
	return err == nil
}

// CreateTimetable adds a weekly slot for a course
func (s *AcademicService) CreateTimetable(ctx context.Context, input *TimetableInput, actor *domain.Identity, sourceIP string) (*models.Timetable, error) {
	if input.DayOfWeek < 0 || input.DayOfWeek > 6 {
		return nil, domain.ErrInvalidInput
	}
	if !validSlotTime(input.StartTime) || !validSlotTime(input.EndTime) {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.GetCourse(ctx, input.CourseID); err != nil {
		return nil, err
	}

	entry := &models.Timetable{
		CourseID:   input.CourseID,
		DayOfWeek:  input.DayOfWeek,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		RoomNumber: input.RoomNumber,
	}
	if err := s.academicRepo.CreateTimetable(ctx, entry); err != nil {
		return nil, err
	}
	if err := s.audit.Record(ctx, &actor.UserID, ActionCreate, "Timetable", entry.ID,
		map[string]uint{"course_id": input.CourseID}, sourceIP); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetTimetable gets one slot by ID
func (s *AcademicService) GetTimetable(ctx context.Context, id uint) (*models.Timetable, error) {
	entry, err := s.academicRepo.GetTimetableByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTimetableNotFound
		}
		return nil, err
	}
	return entry, nil
}

// ListTimetables lists every slot ordered by day and start time
func (s *AcademicService) ListTimetables(ctx context.Context) ([]*models.Timetable, error) {
	return s.academicRepo.ListTimetables(ctx)
}

// ListTimetablesByCourse lists a course's slots
func (s *AcademicService) ListTimetablesByCourse(ctx context.Context, courseID uint) ([]*models.Timetable, error) {
	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	return s.academicRepo.ListTimetablesByCourse(ctx, courseID)
}

// ListTimetablesByDay lists one weekday's slots
func (s *AcademicService) ListTimetablesByDay(ctx context.Context, dayOfWeek int) ([]*models.Timetable, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, domain.ErrInvalidInput
	}
	return s.academicRepo.ListTimetablesByDay(ctx, dayOfWeek)
}

// TimetableUpdateInput represents a slot patch
type TimetableUpdateInput struct {
	CourseID   *uint  `json:"course_id,omitempty"`
	DayOfWeek  *int   `json:"day_of_week,omitempty"`
	StartTime  string `json:"start_time,omitempty"`
	EndTime    string `json:"end_time,omitempty"`
	RoomNumber string `json:"room_number,omitempty"`
}

// UpdateTimetable patches a slot
func (s *AcademicService) UpdateTimetable(ctx context.Context, id uint, input *TimetableUpdateInput, actor *domain.Identity, sourceIP string) (*models.Timetable, error) {
	entry, err := s.GetTimetable(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CourseID != nil {
		if _, err := s.GetCourse(ctx, *input.CourseID); err != nil {
			return nil, err
		}
		entry.CourseID = *input.CourseID
	}
	if input.DayOfWeek != nil {
		if *input.DayOfWeek < 0 || *input.DayOfWeek > 6 {
			return nil, domain.ErrInvalidInput
		}
		entry.DayOfWeek = *input.DayOfWeek
	}
	if input.StartTime != "" {
		if !validSlotTime(input.StartTime) {
			return nil, domain.ErrInvalidInput
		}
		entry.StartTime = input.StartTime
	}
	if input.EndTime != "" {
		if !validSlotTime(input.EndTime) {
			return nil, domain.ErrInvalidInput
		}
		entry.EndTime = input.EndTime
	}
	if input.RoomNumber != "" {
		entry.RoomNumber = input.RoomNumber
	}

	entry.Course = nil
	if err := s.academicRepo.UpdateTimetable(ctx, entry); err != nil {
		return nil, err
	}
	if err := s.audit.Record(ctx, &actor.UserID, ActionUpdate, "Timetable", entry.ID, input, sourceIP); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteTimetable removes a slot
func (s *AcademicService) DeleteTimetable(ctx context.Context, id uint, actor *domain.Identity, sourceIP string) error {
	if err := s.academicRepo.DeleteTimetable(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTimetableNotFound
		}
		return err
	}
	return s.audit.Record(ctx, &actor.UserID, ActionDelete, "Timetable", id, nil, sourceIP)
}
