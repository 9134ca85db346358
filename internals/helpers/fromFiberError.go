package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// FromFiberError turns an error (usually *fiber.Error) into the standard
// JSON error envelope. Anything else falls back to 500.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}

// ErrorHandler is the fiber.Config ErrorHandler: errors returned by
// middlewares/handlers leave the app in the same envelope as JsonError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromFiberError(c, err)
}
