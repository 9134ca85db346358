package dto

import (
	"time"

	"github.com/google/uuid"

	"emptrack_backend/internals/features/github/github_activities/model"
)

type GithubActivityResponse struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	Repository string    `json:"repository"`
	Title      string    `json:"title"`
	URL        *string   `json:"url,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func FromModel(m *model.GithubActivityModel) GithubActivityResponse {
	return GithubActivityResponse{
		ID:         m.ID,
		Type:       m.Type,
		Repository: m.Repository,
		Title:      m.Title,
		URL:        m.URL,
		OccurredAt: m.OccurredAt,
	}
}

func FromModels(in []model.GithubActivityModel) []GithubActivityResponse {
	out := make([]GithubActivityResponse, 0, len(in))
	for i := range in {
		out = append(out, FromModel(&in[i]))
	}
	return out
}
