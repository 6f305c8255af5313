package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// academicRepository implements AcademicRepository interface
type academicRepository struct {
	db *gorm.DB
}

// NewAcademicRepository creates a new academic repository
func NewAcademicRepository(db *gorm.DB) AcademicRepository {
	return &academicRepository{db: db}
}

// CreateDepartment creates a department
func (r *academicRepository) CreateDepartment(ctx context.Context, dept *models.Department) error {
	err := r.db.WithContext(ctx).Create(dept).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateEntry
	}
	return err
}

func (r *academicRepository) GetDepartmentByID(ctx context.Context, id uint) (*models.Department, error) {
	var dept models.Department
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *academicRepository) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	var depts []*models.Department
	err := r.db.WithContext(ctx).Order("name ASC").Find(&depts).Error
	return depts, err
}

func (r *academicRepository) UpdateDepartment(ctx context.Context, dept *models.Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

func (r *academicRepository) DeleteDepartment(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Department{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateCourse creates a course
func (r *academicRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	err := r.db.WithContext(ctx).Create(course).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateEntry
	}
	return err
}

func (r *academicRepository) GetCourseByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).
		Preload("Department").
		Preload("Teacher").
		Where("id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *academicRepository) ListCourses(ctx context.Context, offset, limit int) ([]*models.Course, int64, error) {
	var courses []*models.Course
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Course{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Department").
		Preload("Teacher").
		Order("code ASC").
		Offset(offset).Limit(limit).
		Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

func (r *academicRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *academicRepository) DeleteCourse(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Course{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateEnrollment enrolls a student; the term unique index rejects a
// duplicate enrollment as a conflict.
func (r *academicRepository) CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	err := r.db.WithContext(ctx).Create(enrollment).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateEnrollment
	}
	return err
}

func (r *academicRepository) GetEnrollmentByID(ctx context.Context, id uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Course").
		Where("id = ?", id).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *academicRepository) ListEnrollments(ctx context.Context, offset, limit int) ([]*models.Enrollment, int64, error) {
	var enrollments []*models.Enrollment
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Enrollment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Course").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&enrollments).Error
	if err != nil {
		return nil, 0, err
	}

	return enrollments, total, nil
}

func (r *academicRepository) ListEnrollmentsByStudent(ctx context.Context, studentID uint) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("student_id = ?", studentID).
		Find(&enrollments).Error
	return enrollments, err
}

func (r *academicRepository) DeleteEnrollment(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Enrollment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateAttendance marks attendance; one record per student, course and day
func (r *academicRepository) CreateAttendance(ctx context.Context, att *models.Attendance) error {
	err := r.db.WithContext(ctx).Create(att).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateEntry
	}
	return err
}

func (r *academicRepository) ListAttendanceByStudent(ctx context.Context, studentID uint) ([]*models.Attendance, error) {
	var records []*models.Attendance
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date DESC").
		Find(&records).Error
	return records, err
}

func (r *academicRepository) ListAttendanceByCourse(ctx context.Context, courseID uint, date *time.Time) ([]*models.Attendance, error) {
	var records []*models.Attendance
	query := r.db.WithContext(ctx).Where("course_id = ?", courseID)
	if date != nil {
		query = query.Where("date = ?", *date)
	}
	err := query.Order("date DESC").Find(&records).Error
	return records, err
}

// UpsertGrade creates or replaces the grade for an enrollment
func (r *academicRepository) UpsertGrade(ctx context.Context, grade *models.Grade) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "enrollment_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"marks", "grade_letter", "graded_by", "updated_at"}),
	}).Create(grade).Error
}

func (r *academicRepository) ListGradesByStudent(ctx context.Context, studentID uint) ([]*models.Grade, error) {
	var grades []*models.Grade
	err := r.db.WithContext(ctx).
		Joins("JOIN enrollments ON enrollments.id = grades.enrollment_id").
		Where("enrollments.student_id = ?", studentID).
		Preload("Enrollment").
		Preload("Enrollment.Course").
		Find(&grades).Error
	return grades, err
}

// CreateAssignment creates an assignment
func (r *academicRepository) CreateAssignment(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *academicRepository) GetAssignmentByID(ctx context.Context, id uint) (*models.Assignment, error) {
	var assignment models.Assignment
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Teacher").
		Where("id = ?", id).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *academicRepository) ListAssignments(ctx context.Context, courseID *uint, offset, limit int) ([]*models.Assignment, int64, error) {
	var assignments []*models.Assignment
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Assignment{})
	if courseID != nil {
		query = query.Where("course_id = ?", *courseID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Course").
		Preload("Teacher").
		Order("due_date ASC").
		Offset(offset).Limit(limit).
		Find(&assignments).Error
	if err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}

func (r *academicRepository) UpdateAssignment(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *academicRepository) DeleteAssignment(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Assignment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateSubmission records a student's answer; the unique index on
// (assignment_id, student_id) turns a re-submit into a conflict.
func (r *academicRepository) CreateSubmission(ctx context.Context, submission *models.AssignmentSubmission) error {
	err := r.db.WithContext(ctx).Create(submission).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateSubmission
	}
	return err
}

func (r *academicRepository) GetSubmissionByID(ctx context.Context, id uint) (*models.AssignmentSubmission, error) {
	var submission models.AssignmentSubmission
	err := r.db.WithContext(ctx).
		Preload("Assignment").
		Preload("Student").
		Where("id = ?", id).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *academicRepository) UpdateSubmission(ctx context.Context, submission *models.AssignmentSubmission) error {
	return r.db.WithContext(ctx).Model(&models.AssignmentSubmission{}).
		Where("id = ?", submission.ID).
		Updates(map[string]interface{}{
			"marks_obtained": submission.MarksObtained,
			"feedback":       submission.Feedback,
		}).Error
}

func (r *academicRepository) ListSubmissionsByAssignment(ctx context.Context, assignmentID uint) ([]*models.AssignmentSubmission, error) {
	var submissions []*models.AssignmentSubmission
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("assignment_id = ?", assignmentID).
		Order("submitted_at ASC").
		Find(&submissions).Error
	return submissions, err
}

func (r *academicRepository) ListSubmissionsByStudent(ctx context.Context, studentID uint) ([]*models.AssignmentSubmission, error) {
	var submissions []*models.AssignmentSubmission
	err := r.db.WithContext(ctx).
		Preload("Assignment").
		Preload("Assignment.Course").
		Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	return submissions, err
}

// CreateTimetable creates a weekly slot
func (r *academicRepository) CreateTimetable(ctx context.Context, entry *models.Timetable) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *academicRepository) GetTimetableByID(ctx context.Context, id uint) (*models.Timetable, error) {
	var entry models.Timetable
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *academicRepository) ListTimetables(ctx context.Context) ([]*models.Timetable, error) {
	var entries []*models.Timetable
	err := r.db.WithContext(ctx).
		Preload("Course").
		Order("day_of_week ASC, start_time ASC").
		Find(&entries).Error
	return entries, err
}

func (r *academicRepository) ListTimetablesByCourse(ctx context.Context, courseID uint) ([]*models.Timetable, error) {
	var entries []*models.Timetable
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("day_of_week ASC, start_time ASC").
		Find(&entries).Error
	return entries, err
}

func (r *academicRepository) ListTimetablesByDay(ctx context.Context, dayOfWeek int) ([]*models.Timetable, error) {
	var entries []*models.Timetable
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("day_of_week = ?", dayOfWeek).
		Order("start_time ASC").
		Find(&entries).Error
	return entries, err
}

func (r *academicRepository) UpdateTimetable(ctx context.Context, entry *models.Timetable) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *academicRepository) DeleteTimetable(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Timetable{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
