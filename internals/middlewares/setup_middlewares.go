package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"emptrack_backend/internals/middlewares/logger"
)

// SetupMiddlewares registers the app-wide chain: recover, cors, access log, global limiter.
func SetupMiddlewares(app *fiber.App) {
	// === Global chain ===
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
