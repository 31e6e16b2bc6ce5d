package routes

import (
	"errors"

	"github.com/busmitra/busmitra/pkg/tracking"
	"github.com/gofiber/fiber/v2"
)

// renderError turns a typed core error into the matching HTTP response. The
// error kind is carried structurally, never parsed from message text.
func renderError(c *fiber.Ctx, fallbackMessage string, err error) error {
	var validationErr tracking.ValidationError
	var notFoundErr tracking.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": validationErr.Message,
		})
	case errors.As(err, &notFoundErr):
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": notFoundErr.Message,
		})
	default:
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"message": fallbackMessage,
			"error":   err.Error(),
		})
	}
}
