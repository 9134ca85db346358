package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "emptrack_backend/internals/features/users/auth/controller"
	rateLimiter "emptrack_backend/internals/middlewares"
)

// AuthPublicRoutes: /api/auth without a token
func AuthPublicRoutes(r fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	r.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	r.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	r.Post("/login-google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)
}

// AuthProtectedRoutes: /api/auth behind the JWT middleware
func AuthProtectedRoutes(r fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	r.Post("/logout", authController.Logout)
	r.Get("/me", authController.Me)
	r.Post("/change-password", authController.ChangePassword)
}
