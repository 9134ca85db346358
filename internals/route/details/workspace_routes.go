package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "emptrack_backend/internals/features/attendance/attendance_records/route"
	attendanceService "emptrack_backend/internals/features/attendance/attendance_records/service"
	dashboardRoute "emptrack_backend/internals/features/dashboard/overview/route"
	githubRoute "emptrack_backend/internals/features/github/github_activities/route"
	meetingRoute "emptrack_backend/internals/features/meetings/meetings/route"
	meetingService "emptrack_backend/internals/features/meetings/meetings/service"
)

// WorkspaceRoutes: attendance, meetings, GitHub activity and the dashboard.
func WorkspaceRoutes(protected fiber.Router, admin fiber.Router, db *gorm.DB, svc *attendanceService.Service, notifier meetingService.Notifier) {
	attendanceRoute.AttendanceUserRoutes(protected, svc)
	attendanceRoute.AttendanceAdminRoutes(admin, svc)

	meetingRoute.MeetingRoutes(protected, db, notifier)
	githubRoute.GithubRoutes(protected, db)
	dashboardRoute.DashboardRoutes(protected, db, svc)
}
