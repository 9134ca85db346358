package route

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"emptrack_backend/internals/configs"
	"emptrack_backend/internals/features/github/github_activities/controller"
	"emptrack_backend/internals/features/github/github_activities/service"
)

// GithubRoutes: /api/github (behind auth)
func GithubRoutes(r fiber.Router, db *gorm.DB) {
	client := service.NewClient(context.Background(), configs.GetEnv("GITHUB_API_URL", service.DefaultAPIURL), configs.GetEnv("GITHUB_TOKEN"))
	ctrl := controller.NewGithubActivityController(db, client)

	g := r.Group("/github")
	g.Get("/activities", ctrl.List)
	g.Get("/summary", ctrl.Summary)
	g.Post("/sync", ctrl.Sync)
}
