package services

import (
	"context"
	"testing"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/repositories"
	"github.com/LEGENDANISH/UMS/internal/core/domain"
	"github.com/LEGENDANISH/UMS/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// createTestLibrarian provisions a LIBRARIAN user with its profile
func createTestLibrarian(t *testing.T, db *gorm.DB, email, employeeID string) *models.Librarian {
	t.Helper()

	hashed, err := password.Hash("password123")
	require.NoError(t, err)

	userRepo := repositories.NewUserRepository(db)
	user := &models.User{
		Email:    email,
		Password: hashed,
		Role:     domain.RoleLibrarian.String(),
		IsActive: true,
	}
	profile := &models.Librarian{
		FirstName:  "Test",
		LastName:   "Librarian",
		EmployeeID: employeeID,
	}
	require.NoError(t, userRepo.CreateWithProfile(context.Background(), user, profile))

	loaded, err := userRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	return loaded.Librarian
}

func TestGetAndListLibrarians(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	first := createTestLibrarian(t, db, "lib1@ums.com", "LIB1001")
	createTestLibrarian(t, db, "lib2@ums.com", "LIB1002")

	got, err := svc.GetLibrarian(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "LIB1001", got.EmployeeID)

	_, err = svc.GetLibrarian(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrLibrarianNotFound)

	librarians, total, err := svc.ListLibrarians(ctx, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, librarians, 2)
}

func TestUpdateLibrarianProfile(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	librarian := createTestLibrarian(t, db, "lib3@ums.com", "LIB1003")

	updated, err := svc.UpdateLibrarian(ctx, librarian.ID, &models.Librarian{
		FirstName: "Asha",
		Phone:     "9876543210",
	}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", updated.FirstName)
	assert.Equal(t, "Librarian", updated.LastName)
	assert.Equal(t, "9876543210", updated.Phone)
	assert.Equal(t, "LIB1003", updated.EmployeeID)
}

func TestUpdateLibrarianDuplicateEmployeeID(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	createTestLibrarian(t, db, "lib4@ums.com", "LIB1004")
	second := createTestLibrarian(t, db, "lib5@ums.com", "LIB1005")

	_, err := svc.UpdateLibrarian(ctx, second.ID, &models.Librarian{
		EmployeeID: "LIB1004",
	}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrDuplicateEmployeeID)

	// The failed update must not have clobbered the badge number
	kept, err := svc.GetLibrarian(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "LIB1005", kept.EmployeeID)
}
