package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	performanceRoute "emptrack_backend/internals/features/performance/performance_reviews/route"
	userRoute "emptrack_backend/internals/features/users/user/route"
)

func UserRoutes(protected fiber.Router, admin fiber.Router, db *gorm.DB) {
	userRoute.UserRoutes(protected, db)
	userRoute.UserAdminRoutes(admin, db)

	performanceRoute.PerformanceRoutes(protected, db)
	performanceRoute.PerformanceAdminRoutes(admin, db)
}
