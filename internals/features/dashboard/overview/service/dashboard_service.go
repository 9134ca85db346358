package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	attendanceModel "emptrack_backend/internals/features/attendance/attendance_records/model"
	attendanceService "emptrack_backend/internals/features/attendance/attendance_records/service"
	githubModel "emptrack_backend/internals/features/github/github_activities/model"
	meetingModel "emptrack_backend/internals/features/meetings/meetings/model"
	performanceModel "emptrack_backend/internals/features/performance/performance_reviews/model"
)

const (
	SummaryWindow = 30
	UpcomingLimit = 5
	ActivityLimit = 5
)

// Sources are the per-section loaders; a nil source leaves its section empty.
type Sources struct {
	TodayRecord   func(ctx context.Context, userID uuid.UUID) (*attendanceModel.AttendanceRecordModel, error)
	RecentRecords func(ctx context.Context, userID uuid.UUID, limit int) ([]attendanceModel.AttendanceRecordModel, error)
	Upcoming      func(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]meetingModel.MeetingModel, error)
	Activities    func(ctx context.Context, userID uuid.UUID, limit int) ([]githubModel.GithubActivityModel, error)
	LatestReview  func(ctx context.Context, userID uuid.UUID) (*performanceModel.PerformanceReviewModel, error)
	WorkingDays   int
	Loc           *time.Location
	Now           func() time.Time
}

type Overview struct {
	Today        *attendanceModel.AttendanceRecordModel
	Summary      attendanceService.Summary
	Upcoming     []meetingModel.MeetingModel
	Activities   []githubModel.GithubActivityModel
	LatestReview *performanceModel.PerformanceReviewModel
	// sections that failed to load
	Degraded []string
}

// Build loads every section. A failing section is logged and reported in
// Degraded; the rest of the overview is still returned.
func Build(ctx context.Context, src Sources, userID uuid.UUID) Overview {
	now := time.Now
	if src.Now != nil {
		now = src.Now
	}
	out := Overview{}
	fail := func(section string, err error) {
		log.Printf("[WARN] dashboard user=%s section=%s: %v", userID, section, err)
		out.Degraded = append(out.Degraded, section)
	}

	if src.TodayRecord != nil {
		rec, err := src.TodayRecord(ctx, userID)
		if err != nil {
			fail("today", err)
		}
		out.Today = rec
	}

	var recent []attendanceModel.AttendanceRecordModel
	if src.RecentRecords != nil {
		rows, err := src.RecentRecords(ctx, userID, SummaryWindow)
		if err != nil {
			fail("attendance_summary", err)
		}
		recent = rows
	}
	out.Summary = attendanceService.Summarize(recent, attendanceService.SummaryOptions{
		WorkingDays: src.WorkingDays,
		Limit:       SummaryWindow,
		Loc:         src.Loc,
	})

	if src.Upcoming != nil {
		rows, err := src.Upcoming(ctx, userID, now().UTC(), UpcomingLimit)
		if err != nil {
			fail("meetings", err)
		}
		out.Upcoming = rows
	}

	if src.Activities != nil {
		rows, err := src.Activities(ctx, userID, ActivityLimit)
		if err != nil {
			fail("github", err)
		}
		out.Activities = rows
	}

	if src.LatestReview != nil {
		rev, err := src.LatestReview(ctx, userID)
		if err != nil {
			fail("performance", err)
		}
		out.LatestReview = rev
	}
	return out
}
