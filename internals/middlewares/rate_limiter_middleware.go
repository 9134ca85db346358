package middlewares

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helpers "emptrack_backend/internals/helpers"
)

func ipKey(c *fiber.Ctx) string {
	return c.IP()
}

// userOrIPKey buckets by authenticated user; anonymous requests fall back to IP.
func userOrIPKey(c *fiber.Ctx) string {
	if id, ok := c.Locals(helpers.LocUserID).(string); ok && strings.TrimSpace(id) != "" {
		return "user:" + id
	}
	return "ip:" + c.IP()
}

func newIPLimiter(max int, window time.Duration, message string) fiber.Handler {
	return newLimiter(max, window, message, ipKey)
}

func newLimiter(max int, window time.Duration, message string, key func(*fiber.Ctx) string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          max,
		Expiration:   window,
		KeyGenerator: key,
		LimitReached: func(c *fiber.Ctx) error {
			return helpers.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter for every endpoint
func GlobalRateLimiter() fiber.Handler {
	return newIPLimiter(100, 1*time.Minute, "Too many requests. Please try again later.")
}

func LoginRateLimiter() fiber.Handler {
	return newIPLimiter(5, 1*time.Minute, "Too many login attempts. Try again in a moment.")
}

func RegisterRateLimiter() fiber.Handler {
	return newIPLimiter(3, 5*time.Minute, "Too many registration attempts. Wait a few minutes.")
}

// AttendanceRateLimiter guards POST /attendance against double taps, per user
// so a whole office behind one IP can check in at once. Mount after auth.
func AttendanceRateLimiter() fiber.Handler {
	return newLimiter(10, 1*time.Minute, "Too many attendance requests. Slow down.", userOrIPKey)
}
