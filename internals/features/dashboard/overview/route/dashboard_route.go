package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceService "emptrack_backend/internals/features/attendance/attendance_records/service"
	"emptrack_backend/internals/features/dashboard/overview/controller"
)

// DashboardRoutes: /api/dashboard (behind auth)
func DashboardRoutes(r fiber.Router, db *gorm.DB, svc *attendanceService.Service) {
	ctrl := controller.NewDashboardController(db, svc)
	r.Get("/dashboard", ctrl.Get)
}
