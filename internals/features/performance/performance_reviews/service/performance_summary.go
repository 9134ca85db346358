package service

import (
	"math"
	"time"

	"emptrack_backend/internals/features/performance/performance_reviews/model"
)

type Summary struct {
	Count         int      `json:"count"`
	AverageRating float64  `json:"average_rating"`
	LatestRating  *float64 `json:"latest_rating"`
	LatestDate    string   `json:"latest_date,omitempty"`
	// positive when the latest review is better than the one before it
	Trend float64 `json:"trend"`
}

// Summarize expects reviews newest first.
func Summarize(reviews []model.PerformanceReviewModel) Summary {
	out := Summary{Count: len(reviews)}
	if len(reviews) == 0 {
		return out
	}
	sum := 0.0
	for _, r := range reviews {
		sum += r.Rating
	}
	out.AverageRating = math.Round(sum/float64(len(reviews))*10) / 10

	latest := reviews[0].Rating
	out.LatestRating = &latest
	out.LatestDate = time.Time(reviews[0].ReviewDate).Format("2006-01-02")
	if len(reviews) > 1 {
		out.Trend = math.Round((latest-reviews[1].Rating)*10) / 10
	}
	return out
}
