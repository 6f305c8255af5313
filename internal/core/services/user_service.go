package services

import (
	"context"
	"errors"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/repositories"
	"github.com/LEGENDANISH/UMS/internal/core/domain"

	"gorm.io/gorm"
)

// UserService handles user and profile management
type UserService struct {
	userRepo repositories.UserRepository
	audit    *AuditService
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, audit *AuditService) *UserService {
	return &UserService{userRepo: userRepo, audit: audit}
}

// List lists users filtered by role and active flag
func (s *UserService) List(ctx context.Context, role string, isActive *bool, offset, limit int) ([]*models.UserResponse, int64, error) {
	users, total, err := s.userRepo.List(ctx, role, isActive, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, total, nil
}

// GetByID gets a user with its role profile
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateInput represents user update input
type UserUpdateInput struct {
	IsActive *bool `json:"is_active,omitempty"`
}

// Update updates a user's account flags
func (s *UserService) Update(ctx context.Context, id uint, input *UserUpdateInput, actor *domain.Identity, sourceIP string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if input.IsActive != nil {
		if err := s.userRepo.SetActive(ctx, id, *input.IsActive); err != nil {
			return nil, err
		}
		user.IsActive = *input.IsActive
	}

	if err := s.audit.Record(ctx, &actor.UserID, ActionUpdate, "User", id, input, sourceIP); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// Deactivate soft deletes a user by flipping the active flag, which locks
// the account out of authentication without destroying its records.
func (s *UserService) Deactivate(ctx context.Context, id uint, actor *domain.Identity, sourceIP string) error {
	if err := s.userRepo.SetActive(ctx, id, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return s.audit.Record(ctx, &actor.UserID, ActionDelete, "User", id, nil, sourceIP)
}

// GetStudent gets a student profile by ID
func (s *UserService) GetStudent(ctx context.Context, id uint) (*models.Student, error) {
	student, err := s.userRepo.GetStudentByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

// ListStudents lists student profiles
func (s *UserService) ListStudents(ctx context.Context, offset, limit int) ([]*models.Student, int64, error) {
	return s.userRepo.ListStudents(ctx, offset, limit)
}

// UpdateStudent patches a student profile. Students may only patch their
// own profile; staff may patch anyone's.
func (s *UserService) UpdateStudent(ctx context.Context, id uint, patch *models.Student, actor *domain.Identity) (*models.Student, error) {
	student, err := s.userRepo.GetStudentByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}

	if actor.Role == domain.RoleStudent && !actor.OwnsStudent(id) {
		return nil, domain.ErrForbidden
	}

	if patch.FirstName != "" {
		student.FirstName = patch.FirstName
	}
	if patch.LastName != "" {
		student.LastName = patch.LastName
	}
	if patch.Phone != "" {
		student.Phone = patch.Phone
	}
	if patch.Address != "" {
		student.Address = patch.Address
	}
	if patch.CurrentSemester != 0 {
		student.CurrentSemester = patch.CurrentSemester
	}
	if patch.CurrentYear != 0 {
		student.CurrentYear = patch.CurrentYear
	}
	if patch.DepartmentID != nil {
		student.DepartmentID = patch.DepartmentID
	}

	if err := s.userRepo.UpdateStudent(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// GetTeacher gets a teacher profile by ID
func (s *UserService) GetTeacher(ctx context.Context, id uint) (*models.Teacher, error) {
	teacher, err := s.userRepo.GetTeacherByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTeacherNotFound
		}
		return nil, err
	}
	return teacher, nil
}

// ListTeachers lists teacher profiles
func (s *UserService) ListTeachers(ctx context.Context, offset, limit int) ([]*models.Teacher, int64, error) {
	return s.userRepo.ListTeachers(ctx, offset, limit)
}

// UpdateTeacher patches a teacher profile
func (s *UserService) UpdateTeacher(ctx context.Context, id uint, patch *models.Teacher) (*models.Teacher, error) {
	teacher, err := s.userRepo.GetTeacherByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTeacherNotFound
		}
		return nil, err
	}

	if patch.FirstName != "" {
		teacher.FirstName = patch.FirstName
	}
	if patch.LastName != "" {
		teacher.LastName = patch.LastName
	}
	if patch.Phone != "" {
		teacher.Phone = patch.Phone
	}
	if patch.Qualification != "" {
		teacher.Qualification = patch.Qualification
	}
	if patch.Specialization != "" {
		teacher.Specialization = patch.Specialization
	}
	if patch.DepartmentID != nil {
		teacher.DepartmentID = patch.DepartmentID
	}

	if err := s.userRepo.UpdateTeacher(ctx, teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

// GetLibrarian gets a librarian profile by ID
func (s *UserService) GetLibrarian(ctx context.Context, id uint) (*models.Librarian, error) {
	librarian, err := s.userRepo.GetLibrarianByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLibrarianNotFound
		}
		return nil, err
	}
	return librarian, nil
}

// ListLibrarians lists librarian profiles
func (s *UserService) ListLibrarians(ctx context.Context, offset, limit int) ([]*models.Librarian, int64, error) {
	return s.userRepo.ListLibrarians(ctx, offset, limit)
}

// UpdateLibrarian patches a librarian profile. A reused employee ID is
// rejected as a conflict.
func (s *UserService) UpdateLibrarian(ctx context.Context, id uint, patch *models.Librarian, actor *domain.Identity, sourceIP string) (*models.Librarian, error) {
	librarian, err := s.GetLibrarian(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.FirstName != "" {
		librarian.FirstName = patch.FirstName
	}
	if patch.LastName != "" {
		librarian.LastName = patch.LastName
	}
	if patch.Phone != "" {
		librarian.Phone = patch.Phone
	}
	if patch.EmployeeID != "" {
		librarian.EmployeeID = patch.EmployeeID
	}

	if err := s.userRepo.UpdateLibrarian(ctx, librarian); err != nil {
		return nil, err
	}
	if err := s.audit.Record(ctx, &actor.UserID, ActionUpdate, "Librarian", librarian.ID, nil, sourceIP); err != nil {
		return nil, err
	}
	return librarian, nil
}
