package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"emptrack_backend/internals/features/meetings/meetings/controller"
	"emptrack_backend/internals/features/meetings/meetings/service"
)

// MeetingRoutes: /api/meetings (behind auth)
func MeetingRoutes(r fiber.Router, db *gorm.DB, notifier service.Notifier) {
	ctrl := controller.NewMeetingController(db, notifier)

	g := r.Group("/meetings")
	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Create)
	g.Get("/:id", ctrl.Get)
	g.Patch("/:id/rsvp", ctrl.RSVP)
	g.Delete("/:id", ctrl.Delete)
}
