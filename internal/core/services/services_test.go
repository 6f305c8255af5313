package services

import (
	"context"
	"testing"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/repositories"
	"github.com/LEGENDANISH/UMS/internal/config"
	"github.com/LEGENDANISH/UMS/internal/core/domain"
	"github.com/LEGENDANISH/UMS/internal/pkg/password"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT:     config.JWTConfig{Secret: "test-secret"},
		Bootstrap: config.BootstrapConfig{
			Enabled:  true,
			Email:    "anish@ums.com",
			Alias:    "anish",
			Password: "12345678",
		},
	}
}

func newTestAudit(t *testing.T, db *gorm.DB) *AuditService {
	t.Helper()
	return NewAuditService(repositories.NewAuditRepository(db), testConfig())
}

// createTestStudent provisions a STUDENT user with its profile and returns
// both records
func createTestStudent(t *testing.T, db *gorm.DB, email, rollNumber string) (*models.User, *models.Student) {
	t.Helper()

	hashed, err := password.Hash("password123")
	require.NoError(t, err)

	userRepo := repositories.NewUserRepository(db)
	user := &models.User{
		Email:    email,
		Password: hashed,
		Role:     domain.RoleStudent.String(),
		IsActive: true,
	}
	profile := &models.Student{
		FirstName:  "Test",
		LastName:   "Student",
		RollNumber: rollNumber,
	}
	require.NoError(t, userRepo.CreateWithProfile(context.Background(), user, profile))

	student, err := userRepo.GetStudentByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	return user, student
}

// createTestTeacher provisions a TEACHER user with its profile and
// returns both records
func createTestTeacher(t *testing.T, db *gorm.DB, email, employeeID string) (*models.User, *models.Teacher) {
	t.Helper()

	hashed, err := password.Hash("password123")
	require.NoError(t, err)

	userRepo := repositories.NewUserRepository(db)
	user := &models.User{
		Email:    email,
		Password: hashed,
		Role:     domain.RoleTeacher.String(),
		IsActive: true,
	}
	profile := &models.Teacher{
		FirstName:  "Test",
		LastName:   "Teacher",
		EmployeeID: employeeID,
	}
	require.NoError(t, userRepo.CreateWithProfile(context.Background(), user, profile))

	loaded, err := userRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	return user, loaded.Teacher
}

func adminIdentity() *domain.Identity {
	return &domain.Identity{UserID: 1, Email: "admin@ums.com", Role: domain.RoleAdmin}
}

func studentIdentity(user *models.User, student *models.Student) *domain.Identity {
	return &domain.Identity{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      domain.RoleStudent,
		StudentID: &student.ID,
	}
}

func teacherIdentity(user *models.User, teacher *models.Teacher) *domain.Identity {
	return &domain.Identity{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      domain.RoleTeacher,
		TeacherID: &teacher.ID,
	}
}
