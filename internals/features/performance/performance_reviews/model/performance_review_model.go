package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// PerformanceReviewModel represents `performance_reviews`
type PerformanceReviewModel struct {
	ID           uuid.UUID      `json:"performance_review_id" gorm:"column:performance_review_id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID      `json:"performance_review_user_id" gorm:"column:performance_review_user_id;type:uuid;not null;index:idx_performance_reviews_user_date,priority:1"`
	ReviewerID   uuid.UUID      `json:"performance_review_reviewer_id" gorm:"column:performance_review_reviewer_id;type:uuid;not null"`
	ReviewDate   datatypes.Date `json:"performance_review_date" gorm:"column:performance_review_date;type:date;not null;index:idx_performance_reviews_user_date,priority:2,sort:desc"`
	Rating       float64        `json:"performance_review_rating" gorm:"column:performance_review_rating;type:numeric(2,1);not null;check:chk_performance_review_rating,performance_review_rating >= 0 AND performance_review_rating <= 5"`
	Feedback     *string        `json:"performance_review_feedback" gorm:"column:performance_review_feedback;type:text"`
	Achievements *string        `json:"performance_review_achievements" gorm:"column:performance_review_achievements;type:text"`
	Goals        pq.StringArray `json:"performance_review_goals" gorm:"column:performance_review_goals;type:text[]"`
	CreatedAt    time.Time      `json:"performance_review_created_at" gorm:"column:performance_review_created_at;not null;autoCreateTime"`
	UpdatedAt    time.Time      `json:"performance_review_updated_at" gorm:"column:performance_review_updated_at;not null;autoUpdateTime"`
}

func (PerformanceReviewModel) TableName() string { return "performance_reviews" }
