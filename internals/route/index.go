package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"emptrack_backend/internals/constants"
	attendanceService "emptrack_backend/internals/features/attendance/attendance_records/service"
	meetingService "emptrack_backend/internals/features/meetings/meetings/service"
	authMiddleware "emptrack_backend/internals/middlewares/auth"
	routeDetails "emptrack_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, attendance *attendanceService.Service, notifier meetingService.Notifier) {
	startTime = time.Now()

	BaseRoutes(app)

	// Group middleware is registered as Use on the prefix, so public routes
	// must be mounted before the protected group exists.
	log.Println("[INFO] Mounting PUBLIC auth routes...")
	routeDetails.AuthPublicRoutes(app.Group("/api"), db)

	log.Println("[INFO] Setting up PROTECTED group...")
	protected := app.Group("/api", authMiddleware.AuthMiddleware(db))

	log.Println("[INFO] Setting up ADMIN group (RoleCheck)...")
	admin := protected.Group("/admin",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("this resource"), constants.AdminOnly...),
	)

	log.Println("[INFO] Mounting Auth routes...")
	routeDetails.AuthProtectedRoutes(protected, db)

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserRoutes(protected, admin, db)

	log.Println("[INFO] Mounting Workspace routes...")
	routeDetails.WorkspaceRoutes(protected, admin, db, attendance, notifier)
}
