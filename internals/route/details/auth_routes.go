package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "emptrack_backend/internals/features/users/auth/route"
)

// AuthPublicRoutes: /api/auth/{register,login,login-google}
func AuthPublicRoutes(api fiber.Router, db *gorm.DB) {
	authRoute.AuthPublicRoutes(api.Group("/auth"), db)
}

// AuthProtectedRoutes: /api/auth/{logout,me,change-password}
func AuthProtectedRoutes(protected fiber.Router, db *gorm.DB) {
	authRoute.AuthProtectedRoutes(protected.Group("/auth"), db)
}
