package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	attendanceModel "emptrack_backend/internals/features/attendance/attendance_records/model"
	githubModel "emptrack_backend/internals/features/github/github_activities/model"
	meetingModel "emptrack_backend/internals/features/meetings/meetings/model"
	performanceModel "emptrack_backend/internals/features/performance/performance_reviews/model"
)

func TestBuildCollectsAllSections(t *testing.T) {
	uid := uuid.New()
	fixed := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	checkIn := time.Date(2026, 3, 2, 2, 0, 0, 0, time.UTC)
	var gotLimit, gotMeetingLimit int
	var gotNow time.Time

	src := Sources{
		TodayRecord: func(ctx context.Context, id uuid.UUID) (*attendanceModel.AttendanceRecordModel, error) {
			if id != uid {
				t.Fatalf("user id = %s", id)
			}
			return &attendanceModel.AttendanceRecordModel{UserID: id, Status: attendanceModel.StatusPresent, CheckIn: &checkIn}, nil
		},
		RecentRecords: func(ctx context.Context, id uuid.UUID, limit int) ([]attendanceModel.AttendanceRecordModel, error) {
			gotLimit = limit
			return []attendanceModel.AttendanceRecordModel{
				{Status: attendanceModel.StatusPresent, CheckIn: &checkIn},
				{Status: attendanceModel.StatusAbsent},
			}, nil
		},
		Upcoming: func(ctx context.Context, id uuid.UUID, now time.Time, limit int) ([]meetingModel.MeetingModel, error) {
			gotNow, gotMeetingLimit = now, limit
			return []meetingModel.MeetingModel{{Title: "Sprint planning"}}, nil
		},
		Activities: func(ctx context.Context, id uuid.UUID, limit int) ([]githubModel.GithubActivityModel, error) {
			return []githubModel.GithubActivityModel{{Title: "fix login"}}, nil
		},
		LatestReview: func(ctx context.Context, id uuid.UUID) (*performanceModel.PerformanceReviewModel, error) {
			return &performanceModel.PerformanceReviewModel{Rating: 4.5}, nil
		},
		WorkingDays: 20,
		Loc:         time.UTC,
		Now:         func() time.Time { return fixed },
	}

	ov := Build(context.Background(), src, uid)
	if len(ov.Degraded) != 0 {
		t.Fatalf("degraded = %v", ov.Degraded)
	}
	if ov.Today == nil || ov.Today.Status != attendanceModel.StatusPresent {
		t.Fatalf("today = %+v", ov.Today)
	}
	if gotLimit != SummaryWindow || gotMeetingLimit != UpcomingLimit || !gotNow.Equal(fixed) {
		t.Fatalf("limits = %d %d now=%s", gotLimit, gotMeetingLimit, gotNow)
	}
	if ov.Summary.Total != 2 || ov.Summary.AttendanceRate != 5 || ov.Summary.AverageCheckIn != "02:00" {
		t.Fatalf("summary = %+v", ov.Summary)
	}
	if len(ov.Upcoming) != 1 || len(ov.Activities) != 1 || ov.LatestReview == nil {
		t.Fatalf("overview = %+v", ov)
	}
}

func TestBuildReportsFailingSections(t *testing.T) {
	boom := errors.New("connection refused")
	src := Sources{
		TodayRecord: func(ctx context.Context, id uuid.UUID) (*attendanceModel.AttendanceRecordModel, error) {
			return nil, nil
		},
		Activities: func(ctx context.Context, id uuid.UUID, limit int) ([]githubModel.GithubActivityModel, error) {
			return nil, boom
		},
		LatestReview: func(ctx context.Context, id uuid.UUID) (*performanceModel.PerformanceReviewModel, error) {
			return nil, boom
		},
		WorkingDays: 20,
	}

	ov := Build(context.Background(), src, uuid.New())
	if ov.Today != nil {
		t.Fatalf("today = %+v", ov.Today)
	}
	if len(ov.Degraded) != 2 || ov.Degraded[0] != "github" || ov.Degraded[1] != "performance" {
		t.Fatalf("degraded = %v", ov.Degraded)
	}
	if ov.Summary.Total != 0 || ov.Summary.AttendanceRate != 0 {
		t.Fatalf("summary = %+v", ov.Summary)
	}
}
