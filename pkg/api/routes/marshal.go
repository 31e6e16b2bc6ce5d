package routes

import (
	"github.com/busmitra/busmitra/pkg/http_server"
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
)

// marshalForRole reduces a response to the field groups the caller may see.
// Diagnostics fields tagged "internal" are only visible to operators and
// admins.
func marshalForRole(c *fiber.Ctx, data interface{}) (interface{}, error) {
	groups := []string{"basic"}

	switch http_server.Role(c) {
	case http_server.UserRoleOperator, http_server.UserRoleAdmin:
		groups = append(groups, "internal")
	}

	return sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, data)
}
