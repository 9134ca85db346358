package middlewares

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"emptrack_backend/internals/configs"
	"emptrack_backend/internals/helpers/dbtime"
)

const LocRequestID = "reqid"

// RequestContext sets X-Request-ID, bounds the handler with a timeout
// (aligned with the DB statement_timeout) and puts the business
// timezone in Locals for dbtime.
func RequestContext(timeout time.Duration) fiber.Handler {
	loc := configs.Location()

	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = utils.UUIDv4()
		}
		c.Set(fiber.HeaderXRequestID, id)
		c.Locals(LocRequestID, id)
		c.Locals(dbtime.LocAppLoc, loc)

		start := time.Now()
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)

		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	}
}
