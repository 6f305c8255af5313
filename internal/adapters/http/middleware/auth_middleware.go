package middleware

import (
	"strings"

	"github.com/LEGENDANISH/UMS/internal/config"
	"github.com/LEGENDANISH/UMS/internal/core/domain"
	"github.com/LEGENDANISH/UMS/internal/core/services"
	"github.com/LEGENDANISH/UMS/internal/pkg/jwt"
	"github.com/LEGENDANISH/UMS/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// IdentityKey is the Locals key the resolved caller is stored under
const IdentityKey = "identity"

// AuthMiddleware creates authentication middleware. The token is
// validated, then the account is re-resolved from the database so that
// deactivation takes effect immediately, token validity aside.
func AuthMiddleware(cfg *config.Config, authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.Validate(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Resolve the account behind the token
		user, err := authService.GetUserByID(c.Context(), claims.UserID)
		if err != nil || !user.IsActive {
			return response.Unauthorized(c, "Invalid access token")
		}

		identity := &domain.Identity{
			UserID: user.ID,
			Email:  user.Email,
		}
		identity.Role, _ = domain.ParseRole(user.Role)
		if user.Student != nil {
			identity.StudentID = &user.Student.ID
		}
		if user.Teacher != nil {
			identity.TeacherID = &user.Teacher.ID
		}

		c.Locals(IdentityKey, identity)
		return c.Next()
	}
}

// GetIdentity returns the caller attached by AuthMiddleware
func GetIdentity(c *fiber.Ctx) *domain.Identity {
	identity, _ := c.Locals(IdentityKey).(*domain.Identity)
	return identity
}

// RequireRoles creates role-based authorization middleware
func RequireRoles(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := GetIdentity(c)
		if identity == nil {
			return response.Unauthorized(c, "Unauthorized")
		}

		if identity.Role.In(allowedRoles...) {
			return c.Next()
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only ADMIN role
func AdminOnly() fiber.Handler {
	return RequireRoles(domain.RoleAdmin)
}

// StaffOnly middleware allows ADMIN and MANAGEMENT roles
func StaffOnly() fiber.Handler {
	return RequireRoles(domain.RoleAdmin, domain.RoleManagement)
}
