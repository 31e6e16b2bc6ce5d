package http_server

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type UserRole string

const (
	UserRoleCommuter UserRole = "commuter"
	UserRoleOperator UserRole = "operator"
	UserRoleAdmin    UserRole = "admin"
)

const (
	localUserID   = "account_userid"
	localUserRole = "account_role"
)

// Authenticate resolves the caller from the bearer token. Tokens are opaque
// platform identifiers; the role is carried in the token prefix.
func Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")

		if authHeader == "" {
			c.SendStatus(fiber.StatusUnauthorized)
			return c.JSON(fiber.Map{
				"message": "Authorization token required",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		c.Locals(localUserID, token)
		c.Locals(localUserRole, roleForToken(token))

		return c.Next()
	}
}

// RequireRole rejects callers whose role is not in the allowed set. It must
// run after Authenticate.
func RequireRole(roles ...UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerRole := Role(c)

		for _, role := range roles {
			if callerRole == role {
				return c.Next()
			}
		}

		names := make([]string, len(roles))
		for i, role := range roles {
			names[i] = string(role)
		}

		c.SendStatus(fiber.StatusForbidden)
		return c.JSON(fiber.Map{
			"message": fmt.Sprintf("Insufficient permissions. Required one of: %s", strings.Join(names, ", ")),
		})
	}
}

func Role(c *fiber.Ctx) UserRole {
	if role, ok := c.Locals(localUserRole).(UserRole); ok {
		return role
	}

	return UserRoleCommuter
}

func roleForToken(token string) UserRole {
	switch {
	case strings.HasPrefix(token, "op_"):
		return UserRoleOperator
	case strings.HasPrefix(token, "admin_"):
		return UserRoleAdmin
	default:
		return UserRoleCommuter
	}
}
