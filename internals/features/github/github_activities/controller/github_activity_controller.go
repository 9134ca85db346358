package controller

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"emptrack_backend/internals/features/github/github_activities/dto"
	"emptrack_backend/internals/features/github/github_activities/model"
	"emptrack_backend/internals/features/github/github_activities/service"
	userModel "emptrack_backend/internals/features/users/user/model"
	helper "emptrack_backend/internals/helpers"
)

type GithubActivityController struct {
	DB     *gorm.DB
	Client *service.Client
}

func NewGithubActivityController(db *gorm.DB, client *service.Client) *GithubActivityController {
	return &GithubActivityController{DB: db, Client: client}
}

// LatestActivities: newest first, shared with the dashboard.
func LatestActivities(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit int) ([]model.GithubActivityModel, error) {
	var rows []model.GithubActivityModel
	err := db.WithContext(ctx).
		Where("github_activity_user_id = ?", userID).
		Order("github_activity_occurred_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// GET /api/github/activities?limit=N
func (gc *GithubActivityController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := LatestActivities(c.UserContext(), gc.DB, userID, limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load GitHub activity")
	}
	return helper.JsonOK(c, "GitHub activity", dto.FromModels(rows))
}

// GET /api/github/summary?days=30
func (gc *GithubActivityController) Summary(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	days := c.QueryInt("days", 30)
	if days <= 0 || days > 365 {
		days = 30
	}

	var rows []model.GithubActivityModel
	if err := gc.DB.WithContext(c.UserContext()).
		Select("github_activity_type", "github_activity_repository", "github_activity_occurred_at").
		Where("github_activity_user_id = ? AND github_activity_occurred_at >= ?", userID, time.Now().UTC().AddDate(0, 0, -days)).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load GitHub activity")
	}
	return helper.JsonOK(c, "GitHub summary", fiber.Map{
		"days":    days,
		"summary": service.Summarize(rows),
	})
}

// POST /api/github/sync
func (gc *GithubActivityController) Sync(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var user userModel.UserModel
	if err := gc.DB.WithContext(c.UserContext()).Select("id", "github_username").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load user")
	}
	login := ""
	if user.GithubUsername != nil {
		login = *user.GithubUsername
	}

	// the GitHub call gets its own budget, longer than the request timeout
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	inserted, err := service.Sync(ctx, gc.DB, gc.Client, userID, login)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrNoGithubUsername):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrGithubUserNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "GitHub user "+login+" not found")
	case errors.Is(err, service.ErrGithubRateLimited):
		return helper.JsonError(c, fiber.StatusTooManyRequests, "GitHub rate limit reached, try again later")
	default:
		log.Printf("[ERROR] github sync user=%s login=%s: %v", userID, login, err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Failed to sync GitHub activity")
	}

	return helper.JsonOK(c, "GitHub activity synced", fiber.Map{"inserted": inserted, "github_username": login})
}
