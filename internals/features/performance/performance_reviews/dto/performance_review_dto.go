package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"emptrack_backend/internals/features/performance/performance_reviews/model"
)

type CreateReviewRequest struct {
	UserID       uuid.UUID `json:"user_id" validate:"required"`
	ReviewDate   string    `json:"review_date" validate:"omitempty,datetime=2006-01-02"`
	Rating       *float64  `json:"rating" validate:"required,gte=0,lte=5"`
	Feedback     *string   `json:"feedback" validate:"omitempty,max=5000"`
	Achievements *string   `json:"achievements" validate:"omitempty,max=5000"`
	Goals        []string  `json:"goals" validate:"max=20,dive,max=300"`
}

// ToModel: rating rounded to one decimal; blank goals dropped.
func (r *CreateReviewRequest) ToModel(reviewer uuid.UUID, reviewDate time.Time) model.PerformanceReviewModel {
	goals := make(pq.StringArray, 0, len(r.Goals))
	for _, g := range r.Goals {
		if g = strings.TrimSpace(g); g != "" {
			goals = append(goals, g)
		}
	}
	return model.PerformanceReviewModel{
		ID:           uuid.New(),
		UserID:       r.UserID,
		ReviewerID:   reviewer,
		ReviewDate:   datatypes.Date(reviewDate),
		Rating:       RoundRating(*r.Rating),
		Feedback:     trimOpt(r.Feedback),
		Achievements: trimOpt(r.Achievements),
		Goals:        goals,
	}
}

func RoundRating(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

type ReviewResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	ReviewerID   uuid.UUID `json:"reviewer_id"`
	ReviewDate   string    `json:"review_date"`
	Rating       float64   `json:"rating"`
	Feedback     *string   `json:"feedback,omitempty"`
	Achievements *string   `json:"achievements,omitempty"`
	Goals        []string  `json:"goals"`
}

func FromModel(m *model.PerformanceReviewModel) ReviewResponse {
	goals := []string(m.Goals)
	if goals == nil {
		goals = []string{}
	}
	return ReviewResponse{
		ID:           m.ID,
		UserID:       m.UserID,
		ReviewerID:   m.ReviewerID,
		ReviewDate:   time.Time(m.ReviewDate).Format("2006-01-02"),
		Rating:       m.Rating,
		Feedback:     m.Feedback,
		Achievements: m.Achievements,
		Goals:        goals,
	}
}

func FromModels(in []model.PerformanceReviewModel) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(in))
	for i := range in {
		out = append(out, FromModel(&in[i]))
	}
	return out
}

func trimOpt(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}
