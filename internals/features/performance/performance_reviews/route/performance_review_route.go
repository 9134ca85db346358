package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"emptrack_backend/internals/features/performance/performance_reviews/controller"
)

// PerformanceRoutes: /api/performance (behind auth)
func PerformanceRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPerformanceReviewController(db)

	g := r.Group("/performance")
	g.Get("/", ctrl.List)
	g.Get("/summary", ctrl.Summary)
}

// PerformanceAdminRoutes: /api/admin/performance
func PerformanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPerformanceReviewController(db)

	g := r.Group("/performance")
	g.Get("/", ctrl.AdminList)
	g.Post("/", ctrl.Create)
}
