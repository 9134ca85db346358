package controller

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"emptrack_backend/internals/configs"
	attendanceDTO "emptrack_backend/internals/features/attendance/attendance_records/dto"
	attendanceService "emptrack_backend/internals/features/attendance/attendance_records/service"
	"emptrack_backend/internals/features/dashboard/overview/service"
	githubController "emptrack_backend/internals/features/github/github_activities/controller"
	githubDTO "emptrack_backend/internals/features/github/github_activities/dto"
	githubModel "emptrack_backend/internals/features/github/github_activities/model"
	meetingController "emptrack_backend/internals/features/meetings/meetings/controller"
	meetingDTO "emptrack_backend/internals/features/meetings/meetings/dto"
	meetingModel "emptrack_backend/internals/features/meetings/meetings/model"
	performanceController "emptrack_backend/internals/features/performance/performance_reviews/controller"
	performanceDTO "emptrack_backend/internals/features/performance/performance_reviews/dto"
	performanceModel "emptrack_backend/internals/features/performance/performance_reviews/model"
	helper "emptrack_backend/internals/helpers"
)

type DashboardController struct {
	Sources service.Sources
}

func NewDashboardController(db *gorm.DB, svc *attendanceService.Service) *DashboardController {
	return &DashboardController{Sources: service.Sources{
		TodayRecord:   svc.TodayRecord,
		RecentRecords: svc.List,
		Upcoming: func(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]meetingModel.MeetingModel, error) {
			return meetingController.UpcomingMeetings(ctx, db, userID, now, limit)
		},
		Activities: func(ctx context.Context, userID uuid.UUID, limit int) ([]githubModel.GithubActivityModel, error) {
			return githubController.LatestActivities(ctx, db, userID, limit)
		},
		LatestReview: func(ctx context.Context, userID uuid.UUID) (*performanceModel.PerformanceReviewModel, error) {
			rows, err := performanceController.ReviewsForUser(ctx, db, userID, 1)
			if err != nil || len(rows) == 0 {
				return nil, err
			}
			return &rows[0], nil
		},
		WorkingDays: configs.WorkingDays,
		Loc:         svc.Loc,
		Now:         svc.Now,
	}}
}

// GET /api/dashboard
func (dc *DashboardController) Get(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	ov := service.Build(c.UserContext(), dc.Sources, userID)

	var today *attendanceDTO.AttendanceRecordResponse
	if ov.Today != nil {
		r := attendanceDTO.FromModel(ov.Today)
		today = &r
	}
	meetings := make([]meetingDTO.MeetingResponse, 0, len(ov.Upcoming))
	for i := range ov.Upcoming {
		meetings = append(meetings, meetingDTO.FromModel(&ov.Upcoming[i], userID, nil))
	}
	var review *performanceDTO.ReviewResponse
	if ov.LatestReview != nil {
		r := performanceDTO.FromModel(ov.LatestReview)
		review = &r
	}
	degraded := ov.Degraded
	if degraded == nil {
		degraded = []string{}
	}

	return helper.JsonOK(c, "Dashboard", fiber.Map{
		"today":             today,
		"checked_in":        today != nil && today.CheckIn != nil,
		"checked_out":       today != nil && today.CheckOut != nil,
		"attendance":        ov.Summary,
		"upcoming_meetings": meetings,
		"github_activities": githubDTO.FromModels(ov.Activities),
		"latest_review":     review,
		"degraded":          degraded,
	})
}
