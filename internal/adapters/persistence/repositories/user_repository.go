package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/core/domain"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateWithProfile creates a user and its role profile in one transaction.
// profile may be nil for profile-less accounts (e.g. the bootstrap admin).
func (r *userRepository) CreateWithProfile(ctx context.Context, user *models.User, profile interface{}) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		switch p := profile.(type) {
		case nil:
			return nil
		case *models.Student:
			p.UserID = user.ID
			return tx.Create(p).Error
		case *models.Teacher:
			p.UserID = user.ID
			return tx.Create(p).Error
		case *models.Admin:
			p.UserID = user.ID
			return tx.Create(p).Error
		case *models.Librarian:
			p.UserID = user.ID
			return tx.Create(p).Error
		default:
			return gorm.ErrInvalidData
		}
	})
}

// GetByID gets a user by ID with its role profile preloaded
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Teacher").
		Preload("Admin").
		Preload("Librarian").
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets a user by email with its role profile preloaded
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Teacher").
		Preload("Admin").
		Preload("Librarian").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail checks if email exists
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Update updates a user
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// UpdateLastLogin stamps the last successful login time
func (r *userRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("last_login", at).Error
}

// UpdatePassword replaces the stored password hash
func (r *userRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("password", hash).Error
}

// SetActive toggles the active flag
func (r *userRepository) SetActive(ctx context.Context, id uint, active bool) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List lists users filtered by role and active flag, with pagination
func (r *userRepository) List(ctx context.Context, role string, isActive *bool, offset, limit int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := r.db.WithContext(ctx).Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Student").
		Preload("Teacher").
		Preload("Admin").
		Preload("Librarian").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// GetStudentByID gets a student profile by ID
func (r *userRepository) GetStudentByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// GetStudentByUserID gets a student profile by its owning user ID
func (r *userRepository) GetStudentByUserID(ctx context.Context, userID uint) (*models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// ListStudents lists student profiles with pagination
func (r *userRepository) ListStudents(ctx context.Context, offset, limit int) ([]*models.Student, int64, error) {
	var students []*models.Student
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Student{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&students).Error
	if err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// UpdateStudent updates a student profile
func (r *userRepository) UpdateStudent(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

// GetTeacherByID gets a teacher profile by ID
func (r *userRepository) GetTeacherByID(ctx context.Context, id uint) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

// ListTeachers lists teacher profiles with pagination
func (r *userRepository) ListTeachers(ctx context.Context, offset, limit int) ([]*models.Teacher, int64, error) {
	var teachers []*models.Teacher
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Teacher{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&teachers).Error
	if err != nil {
		return nil, 0, err
	}

	return teachers, total, nil
}

// UpdateTeacher updates a teacher profile
func (r *userRepository) UpdateTeacher(ctx context.Context, teacher *models.Teacher) error {
	return r.db.WithContext(ctx).Save(teacher).Error
}

// GetLibrarianByID gets a librarian profile by ID
func (r *userRepository) GetLibrarianByID(ctx context.Context, id uint) (*models.Librarian, error) {
	var librarian models.Librarian
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&librarian).Error
	if err != nil {
		return nil, err
	}
	return &librarian, nil
}

// ListLibrarians lists librarian profiles with pagination
func (r *userRepository) ListLibrarians(ctx context.Context, offset, limit int) ([]*models.Librarian, int64, error) {
	var librarians []*models.Librarian
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Librarian{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&librarians).Error
	if err != nil {
		return nil, 0, err
	}

	return librarians, total, nil
}

// UpdateLibrarian updates a librarian profile. The unique index on
// employee_id turns a reused badge number into a conflict.
func (r *userRepository) UpdateLibrarian(ctx context.Context, librarian *models.Librarian) error {
	err := r.db.WithContext(ctx).Save(librarian).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateEmployeeID
	}
	return err
}
