package route

import (
	userController "emptrack_backend/internals/features/users/user/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserRoutes: self-service profile (behind auth)
func UserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	r.Get("/users/me", ctrl.GetMe)
	r.Patch("/users/me", ctrl.UpdateMe)
}

// UserAdminRoutes: user directory (behind auth + admin role)
func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	r.Get("/users", ctrl.ListUsers)
}
