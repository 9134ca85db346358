package route

import (
	"github.com/gofiber/fiber/v2"

	"emptrack_backend/internals/configs"
	"emptrack_backend/internals/features/attendance/attendance_records/controller"
	"emptrack_backend/internals/features/attendance/attendance_records/service"
	rateLimiter "emptrack_backend/internals/middlewares"
)

// AttendanceUserRoutes: /api/attendance (behind auth)
func AttendanceUserRoutes(r fiber.Router, svc *service.Service) {
	ctrl := controller.NewAttendanceController(svc, configs.WorkingDays)

	g := r.Group("/attendance")
	g.Get("/", ctrl.List)
	g.Post("/", rateLimiter.AttendanceRateLimiter(), ctrl.Record)
	g.Get("/today", ctrl.Today)
	g.Get("/summary", ctrl.Summary)
	g.Get("/export", ctrl.Export)
}

// AttendanceAdminRoutes: /api/admin/attendance (behind auth + admin)
func AttendanceAdminRoutes(r fiber.Router, svc *service.Service) {
	ctrl := controller.NewAttendanceController(svc, configs.WorkingDays)

	g := r.Group("/attendance")
	g.Get("/", ctrl.AdminList)
	g.Post("/", ctrl.AdminMark)
	g.Patch("/:id", ctrl.AdminPatch)
}
