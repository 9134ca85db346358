package controller

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"emptrack_backend/internals/configs"
	"emptrack_backend/internals/features/performance/performance_reviews/dto"
	"emptrack_backend/internals/features/performance/performance_reviews/model"
	"emptrack_backend/internals/features/performance/performance_reviews/service"
	userModel "emptrack_backend/internals/features/users/user/model"
	helper "emptrack_backend/internals/helpers"
)

type PerformanceReviewController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewPerformanceReviewController(db *gorm.DB) *PerformanceReviewController {
	return &PerformanceReviewController{DB: db, Validator: helper.NewValidator()}
}

// ReviewsForUser: newest first; limit <= 0 means all.
func ReviewsForUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit int) ([]model.PerformanceReviewModel, error) {
	q := db.WithContext(ctx).
		Where("performance_review_user_id = ?", userID).
		Order("performance_review_date DESC, performance_review_created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []model.PerformanceReviewModel
	err := q.Find(&rows).Error
	return rows, err
}

// GET /api/performance?limit=N
func (pc *PerformanceReviewController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	limit := c.QueryInt("limit", 10)
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	rows, err := ReviewsForUser(c.UserContext(), pc.DB, userID, limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load performance reviews")
	}
	return helper.JsonOK(c, "Performance reviews", dto.FromModels(rows))
}

// GET /api/performance/summary
func (pc *PerformanceReviewController) Summary(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	rows, err := ReviewsForUser(c.UserContext(), pc.DB, userID, 0)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load performance reviews")
	}
	var latest *dto.ReviewResponse
	if len(rows) > 0 {
		r := dto.FromModel(&rows[0])
		latest = &r
	}
	return helper.JsonOK(c, "Performance summary", fiber.Map{
		"summary": service.Summarize(rows),
		"latest":  latest,
	})
}

/* ===================== ADMIN ===================== */

// POST /api/admin/performance
func (pc *PerformanceReviewController) Create(c *fiber.Ctx) error {
	reviewerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.ReviewDate = strings.TrimSpace(req.ReviewDate)
	if err := pc.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	loc := configs.Location()
	reviewDate := time.Now().In(loc)
	if req.ReviewDate != "" {
		// already validated by the datetime tag
		reviewDate, _ = time.ParseInLocation("2006-01-02", req.ReviewDate, loc)
	}
	reviewDate = time.Date(reviewDate.Year(), reviewDate.Month(), reviewDate.Day(), 0, 0, 0, 0, time.UTC)

	ctx := c.UserContext()
	var employee userModel.UserModel
	if err := pc.DB.WithContext(ctx).Select("id").First(&employee, "id = ?", req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Employee not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load employee")
	}

	m := req.ToModel(reviewerID, reviewDate)
	if err := pc.DB.WithContext(ctx).Create(&m).Error; err != nil {
		log.Printf("[ERROR] create performance review user=%s: %v", req.UserID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save performance review")
	}
	return helper.JsonCreated(c, "Performance review created", dto.FromModel(&m))
}

// GET /api/admin/performance?user_id=&page=&per_page=
func (pc *PerformanceReviewController) AdminList(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := pc.DB.WithContext(c.UserContext()).Model(&model.PerformanceReviewModel{})
	if s := strings.TrimSpace(c.Query("user_id")); s != "" {
		uid, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "user_id is not a valid UUID")
		}
		q = q.Where("performance_review_user_id = ?", uid)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count performance reviews")
	}
	var rows []model.PerformanceReviewModel
	if err := q.Order("performance_review_date DESC, performance_review_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load performance reviews")
	}

	return helper.JsonList(c, "Performance reviews", dto.FromModels(rows), fiber.Map{
		"page":     p.Page,
		"per_page": p.PerPage,
		"total":    total,
	})
}
