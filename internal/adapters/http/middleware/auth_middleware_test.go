package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/repositories"
	"github.com/LEGENDANISH/UMS/internal/config"
	"github.com/LEGENDANISH/UMS/internal/core/domain"
	"github.com/LEGENDANISH/UMS/internal/core/services"
	"github.com/LEGENDANISH/UMS/internal/pkg/jwt"
	"github.com/LEGENDANISH/UMS/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "middleware-test-secret"

func setupProtectedApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	cfg := &config.Config{
		AppMode: "dev",
		JWT:     config.JWTConfig{Secret: testSecret},
	}
	userRepo := repositories.NewUserRepository(db)
	audit := services.NewAuditService(repositories.NewAuditRepository(db), cfg)
	authService := services.NewAuthService(userRepo, audit, cfg)

	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	auth := AuthMiddleware(cfg, authService)

	app.Get("/me", auth, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"email": GetIdentity(c).Email})
	})
	app.Get("/admin", auth, AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	return app, db, cfg
}

func createUser(t *testing.T, db *gorm.DB, email string, role domain.Role, active bool) *models.User {
	t.Helper()

	hashed, err := password.Hash("password123")
	require.NoError(t, err)

	user := &models.User{
		Email:    email,
		Password: hashed,
		Role:     role.String(),
		IsActive: active,
	}
	userRepo := repositories.NewUserRepository(db)
	require.NoError(t, userRepo.CreateWithProfile(context.Background(), user, nil))
	return user
}

func doRequest(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddlewareNoToken(t *testing.T) {
	app, _, _ := setupProtectedApp(t)

	resp := doRequest(t, app, "/me", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	app, _, _ := setupProtectedApp(t)

	resp := doRequest(t, app, "/me", "garbage")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	app, db, _ := setupProtectedApp(t)

	user := createUser(t, db, "expired@ums.com", domain.RoleStudent, true)
	token, err := jwt.Generate(user.ID, user.Role, testSecret, -time.Minute)
	require.NoError(t, err)

	resp := doRequest(t, app, "/me", token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	app, db, _ := setupProtectedApp(t)

	user := createUser(t, db, "valid@ums.com", domain.RoleStudent, true)
	token, err := jwt.Generate(user.ID, user.Role, testSecret, jwt.StudentTTL)
	require.NoError(t, err)

	resp := doRequest(t, app, "/me", token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareCookieToken(t *testing.T) {
	app, db, _ := setupProtectedApp(t)

	user := createUser(t, db, "cookie@ums.com", domain.RoleStudent, true)
	token, err := jwt.Generate(user.ID, user.Role, testSecret, jwt.StudentTTL)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// A deactivated account is rejected even while its token is still valid.
func TestAuthMiddlewareDeactivatedUser(t *testing.T) {
	app, db, _ := setupProtectedApp(t)

	user := createUser(t, db, "gone@ums.com", domain.RoleStudent, true)
	token, err := jwt.Generate(user.ID, user.Role, testSecret, jwt.StudentTTL)
	require.NoError(t, err)

	resp := doRequest(t, app, "/me", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	userRepo := repositories.NewUserRepository(db)
	require.NoError(t, userRepo.SetActive(context.Background(), user.ID, false))

	resp = doRequest(t, app, "/me", token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRolesGate(t *testing.T) {
	app, db, _ := setupProtectedApp(t)

	student := createUser(t, db, "student@ums.com", domain.RoleStudent, true)
	admin := createUser(t, db, "root@ums.com", domain.RoleAdmin, true)

	studentToken, err := jwt.Generate(student.ID, student.Role, testSecret, jwt.StudentTTL)
	require.NoError(t, err)
	adminToken, err := jwt.Generate(admin.ID, admin.Role, testSecret, jwt.DefaultTTL)
	require.NoError(t, err)

	resp := doRequest(t, app, "/admin", studentToken)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, app, "/admin", adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
