package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/urokiislama/uroki-api/internal/models"
	"github.com/urokiislama/uroki-api/internal/repository"
	"github.com/urokiislama/uroki-api/internal/utils"
)

const adminLocalsKey = "current_admin"

// AdminProtected validates the bearer token and resolves the admin
// principal behind it. Every failure mode answers with the same generic
// 401 challenge so callers cannot probe which check failed.
func AdminProtected(secret string, admins repository.AdminUserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get(fiber.HeaderAuthorization)
		if authorization == "" {
			return utils.SendUnauthorized(c)
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendUnauthorized(c)
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendUnauthorized(c)
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendUnauthorized(c)
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendUnauthorized(c)
		}

		subject, _ := claims["sub"].(string)
		if subject == "" {
			return utils.SendUnauthorized(c)
		}

		admin, err := admins.FindByUsername(c.Context(), subject)
		if err != nil {
			// Unresolvable principals are indistinguishable from bad tokens.
			return utils.SendUnauthorized(c)
		}

		c.Locals(adminLocalsKey, admin)
		return c.Next()
	}
}

// RequireAdminRole gates a route to resolved principals holding an admin role.
func RequireAdminRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, ok := AdminFromContext(c)
		if !ok {
			return utils.SendUnauthorized(c)
		}

		if admin.Role != models.RoleAdmin && admin.Role != models.RoleSuperAdmin {
			return utils.SendError(c, fiber.StatusForbidden, "not enough permissions")
		}

		return c.Next()
	}
}

// AdminFromContext returns the principal resolved by AdminProtected.
func AdminFromContext(c *fiber.Ctx) (models.AdminUser, bool) {
	admin, ok := c.Locals(adminLocalsKey).(models.AdminUser)
	return admin, ok
}
